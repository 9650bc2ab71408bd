// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dakshesh8090/Agri-All-round/internal/cache"
	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
	"github.com/Dakshesh8090/Agri-All-round/pkg/jwt"
	"github.com/Dakshesh8090/Agri-All-round/pkg/util"
)

// AuthService 认证服务
// 处理用户注册、登录、登出和 Token 刷新
type AuthService struct {
	userRepo   *repository.UserRepository // 用户数据访问层
	cache      *cache.RedisCache          // Redis 缓存（Token 黑名单）
	jwtService *jwt.JWTService            // JWT 服务
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	userRepo *repository.UserRepository,
	redisCache *cache.RedisCache,
	jwtService *jwt.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cache:      redisCache,
		jwtService: jwtService,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`   // 姓名
	Email    string `json:"email" binding:"required,email"`    // 邮箱（登录凭证）
	Password string `json:"password" binding:"required,min=6"` // 密码
	Phone    string `json:"phone" binding:"omitempty,max=20"`  // 手机号（可选）
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`  // 访问令牌
	RefreshToken string      `json:"refresh_token"` // 刷新令牌
	ExpiresIn    int64       `json:"expires_in"`    // 过期时间（秒）
	User         *model.User `json:"user"`          // 用户信息
}

// Register 用户注册
// 参数:
//   - ctx: 上下文
//   - req: 注册请求
//
// 返回:
//   - *AuthResponse: 注册成功直接返回登录态
//   - error: 注册失败返回错误（邮箱已存在等）
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// 1. 检查邮箱是否已被注册
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 2. 对密码进行哈希
	// 使用 bcrypt 算法，自动添加盐值
	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. 创建用户
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         model.UserRoleFarmer,
		Status:       1, // 正常状态
	}

	// 如果提供了手机号，设置手机号字段
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	// 保存到数据库
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 4. 注册成功后直接签发 Token，免去一次登录
	return s.issueTokens(user)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // 邮箱
	Password string `json:"password" binding:"required"` // 密码
}

// Login 用户登录
// 参数:
//   - ctx: 上下文
//   - req: 登录请求
//
// 返回:
//   - *AuthResponse: 登录成功返回 Token 和用户信息
//   - error: 登录失败返回错误（用户不存在/密码错误）
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	// 1. 根据邮箱查找用户
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 2. 验证密码
	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrPasswordWrong
	}

	// 3. 检查用户状态
	if user.Status != 1 {
		return nil, ErrUserDisabled
	}

	// 4. 签发 Token
	return s.issueTokens(user)
}

// Refresh 用 Refresh Token 换取新的 Access Token
// 参数:
//   - ctx: 上下文
//   - refreshToken: 刷新令牌
//
// 返回:
//   - *AuthResponse: 新的登录态
//   - error: 令牌无效或用户状态异常
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	// 确认用户仍然存在且未被禁用
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Status != 1 {
		return nil, ErrUserDisabled
	}

	return s.issueTokens(user)
}

// Logout 用户登出
// 将 Token 加入黑名单
// 参数:
//   - ctx: 上下文
//   - tokenHash: Token 的哈希值
//   - expireAt: Token 的过期时间
//
// 返回:
//   - error: 操作错误
func (s *AuthService) Logout(ctx context.Context, tokenHash string, expireAt time.Time) error {
	// 将 Token 加入 Redis 黑名单
	// TTL 设为 Token 的剩余有效期
	return s.cache.BlacklistToken(ctx, tokenHash, expireAt)
}

// GetCurrentUser 根据用户ID获取当前用户
// 认证中间件已经校验过 Token，这里补一次存在性检查
// 参数:
//   - ctx: 上下文
//   - userID: Token 中携带的用户ID
//
// 返回:
//   - *model.User: 用户信息
//   - error: 用户不存在时返回 ErrUnauthenticated
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// issueTokens 为用户签发 Access/Refresh Token
func (s *AuthService) issueTokens(user *model.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessExpire().Seconds()),
		User:         user,
	}, nil
}
