// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
)

// CropRepository 作物记录数据访问层
// 负责作物相关的所有数据库操作
type CropRepository struct {
	db *gorm.DB
}

// NewCropRepository 创建 CropRepository 实例
func NewCropRepository(db *gorm.DB) *CropRepository {
	return &CropRepository{db: db}
}

// Create 创建作物记录
// 参数:
//   - ctx: 上下文
//   - crop: 作物对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *CropRepository) Create(ctx context.Context, crop *model.Crop) error {
	return r.db.WithContext(ctx).Create(crop).Error
}

// GetByID 根据 ID 获取作物记录
// 参数:
//   - ctx: 上下文
//   - id: 作物记录ID
//
// 返回:
//   - *model.Crop: 作物对象，如果未找到返回 nil
//   - error: 数据库错误
func (r *CropRepository) GetByID(ctx context.Context, id int64) (*model.Crop, error) {
	var crop model.Crop
	err := r.db.WithContext(ctx).First(&crop, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &crop, nil
}

// ListByUserID 获取用户的全部作物记录
// 按创建时间倒序排列（最新的在前）
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Crop: 作物列表
//   - error: 数据库错误
func (r *CropRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Crop, error) {
	var crops []model.Crop
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&crops).Error
	return crops, err
}

// Update 更新作物记录
// Save 会更新所有字段
// 参数:
//   - ctx: 上下文
//   - crop: 包含要更新字段的作物对象，必须包含 ID
//
// 返回:
//   - error: 数据库错误
func (r *CropRepository) Update(ctx context.Context, crop *model.Crop) error {
	return r.db.WithContext(ctx).Save(crop).Error
}

// Delete 删除作物记录
// 参数:
//   - ctx: 上下文
//   - id: 作物记录ID
//
// 返回:
//   - error: 数据库错误
func (r *CropRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Crop{}, id).Error
}
