// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// QueryType 咨询类型常量
const (
	QueryTypeText  = "text"  // 文字咨询
	QueryTypeImage = "image" // 图片诊断
)

// Query 咨询日志模型
// 对应数据库表 queries
// 每一次问答交互都会追加一条记录，用于审计和历史查询
// 只插入，不更新
type Query struct {
	// ID 日志唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// QueryText 用户的原始提问内容
	// 图片诊断时记录图片文件名
	QueryText string `gorm:"type:text;not null" json:"query_text"`

	// QueryType 咨询类型，见 QueryType* 常量
	QueryType string `gorm:"size:20;not null" json:"query_type"`

	// ResponseText 助手返回的回答内容
	ResponseText string `gorm:"type:text;not null" json:"response_text"`

	// CreatedAt 记录创建时间
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// User 所属用户（多对一关系）
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Query) TableName() string {
	return "queries"
}
