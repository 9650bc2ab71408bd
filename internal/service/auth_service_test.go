package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
	"github.com/Dakshesh8090/Agri-All-round/pkg/jwt"
)

func newAuthService(db *gorm.DB) *AuthService {
	jwtService := jwt.NewJWTService("test-secret-at-least-32-characters!!", time.Hour, 24*time.Hour)
	// 注册/登录/刷新不会用到 Redis，传 nil 即可
	return NewAuthService(repository.NewUserRepository(db), nil, jwtService)
}

func TestRegisterCreatesUser(t *testing.T) {
	db := newTestDB(t)
	s := newAuthService(db)

	resp, err := s.Register(context.Background(), &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Phone:    "13800000000",
	})
	require.NoError(t, err)

	// 注册成功直接返回登录态
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.EqualValues(t, 3600, resp.ExpiresIn)

	// 用户已落库，默认角色是 farmer
	require.NotNil(t, resp.User)
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, model.UserRoleFarmer, resp.User.Role)
	require.NotNil(t, resp.User.Phone)
	assert.Equal(t, "13800000000", *resp.User.Phone)

	// 密码以哈希存储，不等于明文
	assert.NotEqual(t, "secret123", resp.User.PasswordHash)
	assert.NotEmpty(t, resp.User.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	s := newAuthService(db)

	req := &RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"}
	_, err := s.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = s.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	s := newAuthService(db)

	_, err := s.Register(context.Background(), &RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	// 正确的凭证
	resp, err := s.Login(context.Background(), &LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// 错误的密码
	_, err = s.Login(context.Background(), &LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrPasswordWrong)

	// 不存在的用户
	_, err = s.Login(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginDisabledUser(t *testing.T) {
	db := newTestDB(t)
	s := newAuthService(db)

	resp, err := s.Register(context.Background(), &RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	// 禁用账号
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", resp.User.ID).Update("status", 0).Error)

	_, err = s.Login(context.Background(), &LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestRefresh(t *testing.T) {
	db := newTestDB(t)
	s := newAuthService(db)

	registered, err := s.Register(context.Background(), &RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	// 用 Refresh Token 换取新的登录态
	refreshed, err := s.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)

	// Access Token 不能用来刷新
	_, err = s.Refresh(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// 无效的 Token
	_, err = s.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetCurrentUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newAuthService(db)

	got, err := s.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = s.GetCurrentUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
