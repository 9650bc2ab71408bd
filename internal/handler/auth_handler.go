// Package handler 提供 HTTP 请求的处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Dakshesh8090/Agri-All-round/internal/middleware"
	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/pkg/response"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// POST /api/v1/auth/register
// 请求体: {"name": "...", "email": "...", "password": "...", "phone": "..."}
// 注册成功直接返回登录态
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, resp)
}

// Login 用户登录
// POST /api/v1/auth/login
// 请求体: {"email": "...", "password": "..."}
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 刷新令牌
}

// Refresh 刷新登录态
// POST /api/v1/auth/refresh
// 请求体: {"refresh_token": "..."}
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refresh_token is required")
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// Logout 用户登出
// POST /api/v1/auth/logout
// 需要认证。把当前 Token 加入黑名单，剩余有效期内不再可用
func (h *AuthHandler) Logout(c *gin.Context) {
	// 认证中间件已经把原始 Token 和过期时间存入上下文
	tokenValue, exists := c.Get("token")
	if !exists {
		response.Unauthorized(c, "authentication required")
		return
	}
	tokenString := tokenValue.(string)

	// 黑名单 TTL 设为 Token 的剩余有效期
	// 拿不到过期时间时按 24 小时兜底
	expireAt := time.Now().Add(24 * time.Hour)
	if expValue, ok := c.Get("token_exp"); ok {
		if numericDate, ok := expValue.(*jwt.NumericDate); ok && numericDate != nil {
			expireAt = numericDate.Time
		}
	}

	tokenHash := middleware.HashToken(tokenString)
	if err := h.authService.Logout(c.Request.Context(), tokenHash, expireAt); err != nil {
		response.InternalError(c, "logout failed")
		return
	}

	response.Success(c, gin.H{"message": "logged out"})
}

// Me 获取当前登录用户
// GET /api/v1/auth/me
// 需要认证
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, user)
}
