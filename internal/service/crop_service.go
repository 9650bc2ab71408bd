// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
)

// CropService 作物记录服务
// 提供作物档案的增删改查，所有操作都限定在记录所有者范围内
type CropService struct {
	cropRepo *repository.CropRepository
}

// NewCropService 创建 CropService 实例
func NewCropService(cropRepo *repository.CropRepository) *CropService {
	return &CropService{cropRepo: cropRepo}
}

// CropRequest 创建/修改作物记录的请求
type CropRequest struct {
	Name            string    `json:"name" binding:"required,max=100"`  // 作物名称
	Type            string    `json:"type" binding:"required,max=50"`   // 作物种类
	PlantingDate    time.Time `json:"planting_date" binding:"required"` // 播种日期
	ExpectedHarvest time.Time `json:"expected_harvest"`                 // 预计收获日期
	SoilType        string    `json:"soil_type" binding:"max=50"`       // 土壤类型
	GrowthStage     string    `json:"growth_stage" binding:"max=20"`    // 生长阶段
}

// List 获取用户的全部作物记录
func (s *CropService) List(ctx context.Context, userID int64) ([]model.Crop, error) {
	crops, err := s.cropRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return crops, nil
}

// Create 创建作物记录
// 参数:
//   - ctx: 上下文
//   - userID: 所属用户ID
//   - req: 创建请求
//
// 返回:
//   - *model.Crop: 创建后的记录（带服务端 ID）
//   - error: 业务错误
func (s *CropService) Create(ctx context.Context, userID int64, req *CropRequest) (*model.Crop, error) {
	crop := &model.Crop{
		UserID:          userID,
		Name:            req.Name,
		Type:            req.Type,
		PlantingDate:    req.PlantingDate,
		ExpectedHarvest: req.ExpectedHarvest,
		SoilType:        req.SoilType,
		GrowthStage:     req.GrowthStage,
	}
	if crop.GrowthStage == "" {
		crop.GrowthStage = model.GrowthStageSeedling
	}

	if err := s.cropRepo.Create(ctx, crop); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return crop, nil
}

// Update 修改作物记录
// 只有记录的所有者可以修改
// 参数:
//   - ctx: 上下文
//   - userID: 请求用户ID
//   - cropID: 作物记录ID
//   - req: 修改请求
//
// 返回:
//   - *model.Crop: 修改后的记录
//   - error: 业务错误
func (s *CropService) Update(ctx context.Context, userID, cropID int64, req *CropRequest) (*model.Crop, error) {
	crop, err := s.cropRepo.GetByID(ctx, cropID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if crop == nil {
		return nil, ErrCropNotFound
	}
	if crop.UserID != userID {
		return nil, ErrNoPermission
	}

	crop.Name = req.Name
	crop.Type = req.Type
	crop.PlantingDate = req.PlantingDate
	crop.ExpectedHarvest = req.ExpectedHarvest
	crop.SoilType = req.SoilType
	if req.GrowthStage != "" {
		crop.GrowthStage = req.GrowthStage
	}

	if err := s.cropRepo.Update(ctx, crop); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return crop, nil
}

// Delete 删除作物记录
// 只有记录的所有者可以删除
func (s *CropService) Delete(ctx context.Context, userID, cropID int64) error {
	crop, err := s.cropRepo.GetByID(ctx, cropID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if crop == nil {
		return ErrCropNotFound
	}
	if crop.UserID != userID {
		return ErrNoPermission
	}
	if err := s.cropRepo.Delete(ctx, cropID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
