package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"campus-board/internal/model"
)

// PostRepository 新闻/活动数据访问接口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	Search(ctx context.Context, query string) ([]model.Post, error)
	List(ctx context.Context, offset, limit int) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo 创建 PostRepository 实例
func NewPostRepo(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID 恰好命中一条时返回该记录，否则返回 nil（不视为错误）
func (r *postRepo) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(2).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) != 1 {
		return nil, nil
	}
	return &posts[0], nil
}

// Search 标题、摘要或发布类型包含 query（不区分大小写）的记录，去重
func (r *postRepo) Search(ctx context.Context, query string) ([]model.Post, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	posts := make([]model.Post, 0)
	err := r.db.WithContext(ctx).
		Distinct().
		Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(summary) LIKE ? ESCAPE '\' OR LOWER(posted_as) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) List(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]model.Post, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepo) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
