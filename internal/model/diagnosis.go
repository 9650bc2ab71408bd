// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Diagnosis 病害诊断记录模型
// 对应数据库表 diagnoses
// 每次成功的图片分析会且仅会创建一条记录，创建后不再修改
type Diagnosis struct {
	// ID 诊断记录唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	// 每条诊断记录必须归属于一个有效用户
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// ImagePath 作物图片的访问 URL
	// 图片本体存放在对象存储中，这里只保存公开访问地址
	ImagePath string `gorm:"size:500;not null" json:"image_path"`

	// DiseaseDetected 检测出的病害名称
	// 例如: "Late Blight", "Powdery Mildew"
	DiseaseDetected string `gorm:"size:100;not null" json:"disease_detected"`

	// Solution 防治建议文本
	Solution string `gorm:"type:text;not null" json:"solution"`

	// Confidence 置信度，取值范围 [0, 1]
	Confidence float64 `gorm:"not null" json:"confidence"`

	// DiagnosisDate 诊断时间，由服务端生成
	DiagnosisDate time.Time `gorm:"autoCreateTime;index" json:"diagnosis_date"`

	// User 所属用户（多对一关系）
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Diagnosis) TableName() string {
	return "diagnoses"
}
