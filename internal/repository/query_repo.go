// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
)

// QueryRepository 咨询日志数据访问层
// 日志表是追加写入的，只有 Create 和按用户查询两种操作
type QueryRepository struct {
	db *gorm.DB
}

// NewQueryRepository 创建 QueryRepository 实例
func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// Create 追加一条咨询日志
// 参数:
//   - ctx: 上下文
//   - query: 日志对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *QueryRepository) Create(ctx context.Context, query *model.Query) error {
	return r.db.WithContext(ctx).Create(query).Error
}

// ListByUserID 获取用户的咨询历史
// 按创建时间倒序排列
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - limit: 最多返回条数，0 表示不限制
//
// 返回:
//   - []model.Query: 日志列表
//   - error: 数据库错误
func (r *QueryRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Query, error) {
	var queries []model.Query
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&queries).Error
	return queries, err
}

// CountByUserID 统计用户的咨询次数
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - int64: 咨询次数
//   - error: 数据库错误
func (r *QueryRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Query{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
