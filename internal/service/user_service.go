// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
)

// UserService 用户服务
// 处理个人资料的查询和修改
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile 获取用户个人资料
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - *model.User: 用户信息（不含密码哈希，序列化时已忽略）
//   - error: 用户不存在时返回 ErrUserNotFound
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfileRequest 修改资料请求
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,max=100"` // 姓名
	Phone string `json:"phone" binding:"omitempty,max=20"` // 手机号
}

// UpdateProfile 修改用户个人资料
// 只允许修改姓名和手机号，邮箱和角色不可自助修改
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - req: 修改请求
//
// 返回:
//   - *model.User: 修改后的用户信息
//   - error: 业务错误
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 只更新提供了的字段
	fields := make(map[string]interface{})
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if len(fields) == 0 {
		// 没有任何要更新的字段，直接返回当前资料
		return user, nil
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 重新读取，返回更新后的数据
	return s.GetProfile(ctx, userID)
}
