// Package handler 提供 HTTP 请求的处理器
// 处理器只做参数绑定和响应写出，业务逻辑全部在 service 层
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/pkg/response"
)

// writeServiceError 把 service 层的业务错误映射为 HTTP 状态码
// 映射关系:
//   - ErrValidation            -> 400
//   - ErrUnauthenticated       -> 401
//   - ErrPasswordWrong         -> 401
//   - ErrUserDisabled          -> 403
//   - ErrNoPermission          -> 403
//   - ErrUserNotFound 等未找到 -> 404
//   - ErrEmailExists           -> 409
//   - ErrUpstream              -> 502
//   - 其他（含 ErrPersistence）-> 500
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		response.Unauthorized(c, "authentication required")
	case errors.Is(err, service.ErrPasswordWrong):
		response.Unauthorized(c, "incorrect email or password")
	case errors.Is(err, service.ErrUserDisabled):
		response.Forbidden(c, "account disabled")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, "permission denied")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, service.ErrCropNotFound):
		response.NotFound(c, "crop not found")
	case errors.Is(err, service.ErrDiagnosisNotFound):
		response.NotFound(c, "diagnosis not found")
	case errors.Is(err, service.ErrEmailExists):
		response.Error(c, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrUpstream):
		response.BadGateway(c, err.Error())
	default:
		// 持久化错误等内部错误，不把底层细节暴露给客户端
		response.InternalError(c, "internal server error")
	}
}
