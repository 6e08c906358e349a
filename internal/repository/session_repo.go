package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-board/internal/model"
)

// SessionRepository 学年数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id uint) (*model.Session, error)
	GetCurrent(ctx context.Context) (*model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id uint) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id uint) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCurrent 返回 id 最小的当前学年
func (r *sessionRepo) GetCurrent(ctx context.Context) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("is_current = ?", true).
		Order("id ASC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]model.Session, error) {
	sessions := make([]model.Session, 0)
	err := r.db.WithContext(ctx).
		Order("name DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete 删除学年及其下所有学期
// 外键 ON DELETE CASCADE 之外再显式删除一次，不依赖存储引擎是否开启外键
func (r *sessionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.Semester{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, id).Error
	})
}
