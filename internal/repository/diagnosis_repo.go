// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
)

// DiagnosisRepository 诊断记录数据访问层
// 负责诊断记录相关的所有数据库操作
// 诊断记录只插入、查询和删除，永远不更新
type DiagnosisRepository struct {
	db *gorm.DB
}

// NewDiagnosisRepository 创建 DiagnosisRepository 实例
func NewDiagnosisRepository(db *gorm.DB) *DiagnosisRepository {
	return &DiagnosisRepository{db: db}
}

// Create 创建诊断记录
// 每次调用插入一条新记录，没有幂等键
// 重复调用会产生重复记录，这是有意保留的行为
// 参数:
//   - ctx: 上下文
//   - diagnosis: 诊断对象，ID 和 DiagnosisDate 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *DiagnosisRepository) Create(ctx context.Context, diagnosis *model.Diagnosis) error {
	return r.db.WithContext(ctx).Create(diagnosis).Error
}

// GetByID 根据 ID 获取诊断记录
// 参数:
//   - ctx: 上下文
//   - id: 诊断记录ID
//
// 返回:
//   - *model.Diagnosis: 诊断对象，如果未找到返回 nil
//   - error: 数据库错误
func (r *DiagnosisRepository) GetByID(ctx context.Context, id int64) (*model.Diagnosis, error) {
	var diagnosis model.Diagnosis
	err := r.db.WithContext(ctx).First(&diagnosis, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diagnosis, nil
}

// ListByUserID 获取用户的全部诊断记录
// 按诊断时间倒序排列（最新的在前），用于历史页面展示
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Diagnosis: 诊断记录列表
//   - error: 数据库错误
func (r *DiagnosisRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Diagnosis, error) {
	var diagnoses []model.Diagnosis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("diagnosis_date DESC").
		Find(&diagnoses).Error
	return diagnoses, err
}

// Delete 删除诊断记录
// 显式删除路径，目前只在 API 上暴露，前端暂未接入
// 参数:
//   - ctx: 上下文
//   - id: 诊断记录ID
//
// 返回:
//   - error: 数据库错误
func (r *DiagnosisRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Diagnosis{}, id).Error
}
