package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-board/internal/model"
)

// ActivityLogRepository 审计日志数据访问接口（只追加）
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, offset, limit int) ([]model.ActivityLog, int64, error)
	ListAll(ctx context.Context) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepo) List(ctx context.Context, offset, limit int) ([]model.ActivityLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]model.ActivityLog, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *activityLogRepo) ListAll(ctx context.Context) ([]model.ActivityLog, error) {
	entries := make([]model.ActivityLog, 0)
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
