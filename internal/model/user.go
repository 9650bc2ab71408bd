// Package model 定义了与数据库表对应的数据结构
// 这些结构体类似于 Java 中的 Entity 类
package model

import (
	"time"
)

// UserRole 用户角色常量
const (
	UserRoleFarmer = "farmer" // 普通农户
	UserRoleAdmin  = "admin"  // 管理员
)

// User 用户模型
// 对应数据库表 users
// 存储用户的基本信息，包括认证凭据
type User struct {
	// ID 用户唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Name 用户姓名，注册时填写
	Name string `gorm:"size:100;not null" json:"name"`

	// Email 用户邮箱，用于登录，全局唯一
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// PasswordHash 密码的 bcrypt 哈希值
	// 永远不要存储明文密码！
	PasswordHash string `gorm:"size:255;not null" json:"-"` // json:"-" 表示序列化时忽略此字段

	// Phone 手机号，可选
	// 使用指针类型表示可以为 NULL
	Phone *string `gorm:"size:20" json:"phone,omitempty"`

	// Role 用户角色
	// farmer: 普通农户
	// admin: 管理员
	Role string `gorm:"size:20;default:farmer" json:"role"`

	// Status 账号状态
	// 1: 正常
	// 0: 禁用
	Status int8 `gorm:"default:1" json:"status"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Crops 用户的作物记录（一对多关系）
	// 这是 GORM 的关联关系，不会在数据库中创建字段
	Crops []Crop `gorm:"foreignKey:UserID" json:"crops,omitempty"`

	// Diagnoses 用户的诊断记录（一对多关系）
	Diagnoses []Diagnosis `gorm:"foreignKey:UserID" json:"diagnoses,omitempty"`
}

// TableName 指定表名
// GORM 会使用这个方法返回的表名，而不是默认的复数形式
func (User) TableName() string {
	return "users"
}
