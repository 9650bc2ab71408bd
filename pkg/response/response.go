// Package response 提供统一的 HTTP 响应写出函数
// 成功时直接返回业务对象本身；失败时统一返回 {"error": message}
// 与前端约定保持一致，便于客户端统一处理
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
// 所有接口的失败响应都是这个形状
type ErrorBody struct {
	Error string `json:"error"` // 错误信息
}

// JSON 返回指定状态码的成功响应
// 参数:
//   - c: Gin 上下文
//   - status: HTTP 状态码
//   - data: 响应数据，直接序列化为响应体
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Success 返回 200 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 返回 204 无内容响应（用于删除操作）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 返回错误响应
// 参数:
//   - c: Gin 上下文
//   - status: HTTP 状态码
//   - message: 错误信息
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// BadRequest 返回 400 错误（请求参数错误）
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 返回 401 错误（未授权）
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 返回 403 错误（禁止访问）
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 返回 404 错误（资源不存在）
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// BadGateway 返回 502 错误（上游服务调用失败）
func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}
