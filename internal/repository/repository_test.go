package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Crop{},
		&model.Diagnosis{},
		&model.Query{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Name:         "Test Farmer",
		Email:        email,
		PasswordHash: "hash",
		Role:         model.UserRoleFarmer,
		Status:       1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         model.UserRoleFarmer,
		Status:       1,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// 按 ID 查询
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)

	// 按邮箱查询
	got, err = repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	// 不存在时返回 nil 而不是错误
	got, err = repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	// 邮箱存在性检查
	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	// 更新指定字段
	require.NoError(t, repo.UpdateFields(ctx, user.ID, map[string]interface{}{"name": "Alicia"}))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
}

func TestCropRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCropRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "farmer@example.com")
	other := seedUser(t, db, "other@example.com")

	first := &model.Crop{
		UserID:       user.ID,
		Name:         "Tomato",
		Type:         "vegetable",
		PlantingDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		GrowthStage:  model.GrowthStageSeedling,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.Crop{
		UserID:       user.ID,
		Name:         "Potato",
		Type:         "vegetable",
		PlantingDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		GrowthStage:  model.GrowthStageSeedling,
	}
	require.NoError(t, repo.Create(ctx, second))

	// 按用户隔离
	crops, err := repo.ListByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, crops, 2)

	crops, err = repo.ListByUserID(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, crops)

	// 更新
	first.GrowthStage = model.GrowthStageFlowering
	require.NoError(t, repo.Update(ctx, first))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GrowthStageFlowering, got.GrowthStage)

	// 删除
	require.NoError(t, repo.Delete(ctx, first.ID))
	got, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDiagnosisRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewDiagnosisRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "farmer@example.com")

	diagnosis := &model.Diagnosis{
		UserID:          user.ID,
		ImagePath:       "1/123-leaf.jpg",
		DiseaseDetected: "Late Blight",
		Solution:        "Apply copper-based fungicide",
		Confidence:      0.92,
	}
	require.NoError(t, repo.Create(ctx, diagnosis))
	assert.NotZero(t, diagnosis.ID)
	assert.False(t, diagnosis.DiagnosisDate.IsZero())

	list, err := repo.ListByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Late Blight", list[0].DiseaseDetected)

	require.NoError(t, repo.Delete(ctx, diagnosis.ID))
	list, err = repo.ListByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQueryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewQueryRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "farmer@example.com")

	for i := 0; i < 3; i++ {
		query := &model.Query{
			UserID:       user.ID,
			QueryText:    "how to water tomatoes",
			QueryType:    model.QueryTypeText,
			ResponseText: "water early in the morning",
		}
		require.NoError(t, repo.Create(ctx, query))
		assert.NotZero(t, query.ID)
	}

	// 不限制条数
	queries, err := repo.ListByUserID(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, queries, 3)

	// 限制条数
	queries, err = repo.ListByUserID(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, queries, 2)

	count, err := repo.CountByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
