package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
)

func cropRequest(name string) *CropRequest {
	return &CropRequest{
		Name:         name,
		Type:         "vegetable",
		PlantingDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SoilType:     "loam",
	}
}

func TestCropCreateAndList(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := NewCropService(repository.NewCropRepository(db))

	created, err := s.Create(context.Background(), user.ID, cropRequest("Tomato"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)
	// 未指定生长阶段时默认为苗期
	assert.Equal(t, model.GrowthStageSeedling, created.GrowthStage)

	_, err = s.Create(context.Background(), user.ID, cropRequest("Potato"))
	require.NoError(t, err)

	crops, err := s.List(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, crops, 2)

	// 其他用户的列表是空的
	crops, err = s.List(context.Background(), user.ID+1)
	require.NoError(t, err)
	assert.Empty(t, crops)
}

func TestCropUpdate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := NewCropService(repository.NewCropRepository(db))

	created, err := s.Create(context.Background(), user.ID, cropRequest("Tomato"))
	require.NoError(t, err)

	req := cropRequest("Cherry Tomato")
	req.GrowthStage = model.GrowthStageFlowering
	updated, err := s.Update(context.Background(), user.ID, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Cherry Tomato", updated.Name)
	assert.Equal(t, model.GrowthStageFlowering, updated.GrowthStage)

	// 其他用户不能修改
	_, err = s.Update(context.Background(), user.ID+1, created.ID, req)
	assert.ErrorIs(t, err, ErrNoPermission)

	// 不存在的记录
	_, err = s.Update(context.Background(), user.ID, 9999, req)
	assert.ErrorIs(t, err, ErrCropNotFound)
}

func TestCropDelete(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := NewCropService(repository.NewCropRepository(db))

	created, err := s.Create(context.Background(), user.ID, cropRequest("Tomato"))
	require.NoError(t, err)

	// 其他用户不能删除
	err = s.Delete(context.Background(), user.ID+1, created.ID)
	assert.ErrorIs(t, err, ErrNoPermission)

	require.NoError(t, s.Delete(context.Background(), user.ID, created.ID))

	err = s.Delete(context.Background(), user.ID, created.ID)
	assert.ErrorIs(t, err, ErrCropNotFound)
}
