// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// GrowthStage 作物生长阶段常量
const (
	GrowthStageSeedling   = "seedling"   // 育苗期
	GrowthStageVegetative = "vegetative" // 营养生长期
	GrowthStageFlowering  = "flowering"  // 开花期
	GrowthStageFruiting   = "fruiting"   // 结果期
	GrowthStageHarvest    = "harvest"    // 收获期
)

// Crop 作物记录模型
// 对应数据库表 crops
// 表示用户登记的一块作物的种植信息
type Crop struct {
	// ID 作物记录唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Name 作物名称，用于用户识别
	// 例如: "北地块番茄", "大棚黄瓜"
	Name string `gorm:"size:100;not null" json:"name"`

	// Type 作物种类
	// 例如: "tomato", "wheat", "rice"
	Type string `gorm:"size:50;not null" json:"type"`

	// PlantingDate 播种/定植日期
	PlantingDate time.Time `json:"planting_date"`

	// ExpectedHarvest 预计收获日期
	ExpectedHarvest time.Time `json:"expected_harvest"`

	// SoilType 土壤类型
	// 例如: "loam", "clay", "sandy"
	SoilType string `gorm:"size:50" json:"soil_type"`

	// GrowthStage 当前生长阶段，见 GrowthStage* 常量
	GrowthStage string `gorm:"size:20;default:seedling" json:"growth_stage"`

	// CreatedAt 记录创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 最后更新时间
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// User 所属用户（多对一关系）
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Crop) TableName() string {
	return "crops"
}
