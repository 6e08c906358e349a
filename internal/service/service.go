package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campus-board/config"
	"campus-board/internal/model"
	"campus-board/internal/repository"
	"campus-board/internal/search"
	"campus-board/pkg/jwt"
)

// Cache Post 读缓存（pkg/redis.Client 实现）
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, keys ...string) error
}

// PostIndexer Post 全文检索镜像（internal/search.Elastic 实现）
type PostIndexer interface {
	IndexPost(ctx context.Context, p *model.Post) error
	DeletePost(ctx context.Context, id uint) error
	SearchPosts(ctx context.Context, query string, size int) ([]search.PostDocument, error)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Post        PostService
	Session     SessionService
	Semester    SemesterService
	ActivityLog ActivityLogService
	Calendar    CalendarService
	Export      ExportService
}

// NewService 创建 Service 聚合
// cache、indexer 可为 nil，对应功能降级
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache Cache,
	indexer PostIndexer,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(&cfg.Auth, jwtMgr, logger),
		Post:        NewPostService(repo, cache, indexer, logger),
		Session:     NewSessionService(repo, logger),
		Semester:    NewSemesterService(repo, logger),
		ActivityLog: NewActivityLogService(repo, logger),
		Calendar:    NewCalendarService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}

// runInTx 在事务中执行 fn，fn 返回错误或 panic 时回滚
// repo 未绑定数据库时直接在 repo 上执行
func runInTx(ctx context.Context, repo *repository.Repository, fn func(txRepo *repository.Repository) error) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	if tx == nil {
		return fn(repo)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

const timestampLayout = "2006-01-02T15:04:05Z07:00"

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
