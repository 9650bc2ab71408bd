// Package util 提供通用工具函数
package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 使用 bcrypt 哈希密码
// bcrypt 是一种专门为密码哈希设计的算法，自动添加盐值
// 参数:
//   - password: 明文密码
//
// 返回:
//   - string: 密码哈希值
//   - error: 哈希错误
func HashPassword(password string) (string, error) {
	// bcrypt.DefaultCost 是默认的计算成本（10）
	// 成本越高，计算越慢，安全性越高
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword 验证密码是否匹配
// 参数:
//   - password: 用户输入的明文密码
//   - hash: 数据库中存储的哈希值
//
// 返回:
//   - bool: 是否匹配
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateUUID 生成 UUID
// 使用 Google 的 uuid 库生成 UUID v4
// 返回:
//   - string: UUID 字符串（标准格式，含连字符）
func GenerateUUID() string {
	return uuid.New().String()
}

// ObjectKey 为上传的图片生成对象存储中的 Key
// 形如 "<userID>/<毫秒时间戳>-<原始文件名>"
// 同一用户多次上传同名文件不会互相覆盖
// 参数:
//   - userID: 用户ID
//   - filename: 客户端上传的原始文件名
//
// 返回:
//   - string: 对象 Key
func ObjectKey(userID int64, filename string) string {
	// 去掉文件名中的路径分隔符，防止构造出越界的 Key
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	return fmt.Sprintf("%d/%d-%s", userID, time.Now().UnixMilli(), filename)
}

// FormatTimestamp 将时间格式化为 ISO-8601 (RFC 3339) 字符串
// 统一使用 UTC，与前端约定一致
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// StringPtr 返回字符串的指针
// 用于可选字段的赋值
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr 返回 int64 的指针
func Int64Ptr(i int64) *int64 {
	return &i
}
