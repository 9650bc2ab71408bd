// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository、Cache 和外部服务
package service

import (
	"errors"
)

// 定义业务错误
// Handler 层根据这些哨兵错误决定 HTTP 状态码:
//   - ErrValidation 及其细分 -> 400
//   - ErrUnauthenticated     -> 401
//   - ErrNoPermission        -> 403
//   - *NotFound              -> 404
//   - ErrUpstream            -> 502
//   - ErrPersistence 及其他   -> 500
var (
	// ErrValidation 请求参数缺失或非法
	ErrValidation = errors.New("invalid request")

	// ErrUnauthenticated 没有有效的登录态，或 userId 不是已知用户
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNoPermission 访问了不属于自己的资源
	ErrNoPermission = errors.New("no permission")

	// ErrUpstream 外部服务（天气、对象存储）调用失败
	ErrUpstream = errors.New("upstream service failed")

	// ErrPersistence 数据库读写失败
	ErrPersistence = errors.New("persistence failed")

	// ErrEmailExists 注册时邮箱已被占用
	ErrEmailExists = errors.New("email already registered")

	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")

	// ErrPasswordWrong 登录密码错误
	ErrPasswordWrong = errors.New("wrong password")

	// ErrUserDisabled 账号被禁用
	ErrUserDisabled = errors.New("account disabled")

	// ErrCropNotFound 作物记录不存在
	ErrCropNotFound = errors.New("crop not found")

	// ErrDiagnosisNotFound 诊断记录不存在
	ErrDiagnosisNotFound = errors.New("diagnosis not found")
)
