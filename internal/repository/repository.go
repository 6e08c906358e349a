package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Post        PostRepository
	Session     SessionRepository
	Semester    SemesterRepository
	ActivityLog ActivityLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Post:        NewPostRepo(db),
		Session:     NewSessionRepo(db),
		Semester:    NewSemesterRepo(db),
		ActivityLog: NewActivityLogRepo(db),
	}
}

// BeginTx 开启事务
// 未绑定数据库（如单元测试中手工组装的聚合）时返回 nil 事务，调用方需判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 聚合，tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// escapeLike 转义 LIKE 通配符，配合 ESCAPE '\' 使用
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
