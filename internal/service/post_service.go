package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"campus-board/internal/dto"
	"campus-board/internal/model"
	"campus-board/internal/repository"
)

// ── 新闻/活动模块业务错误 ──

var (
	ErrPostNotFound      = errors.New("新闻/活动不存在")
	ErrPostKindInvalid   = errors.New("发布类型必须为 News 或 Event")
	ErrSearchUnavailable = errors.New("全文检索未启用")
)

const fullTextSearchSize = 50

// PostService 新闻/活动业务接口
type PostService interface {
	Search(ctx context.Context, query string) ([]dto.PostResponse, error)
	List(ctx context.Context, req *dto.PostListRequest) ([]dto.PostResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.PostResponse, error)
	Create(ctx context.Context, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, id uint) error
	FullTextSearch(ctx context.Context, query string) ([]dto.PostSearchHit, error)
}

type postService struct {
	repo    *repository.Repository
	cache   Cache
	indexer PostIndexer
	logger  *zap.Logger
}

// NewPostService 创建 PostService 实例
func NewPostService(repo *repository.Repository, cache Cache, indexer PostIndexer, logger *zap.Logger) PostService {
	return &postService{repo: repo, cache: cache, indexer: indexer, logger: logger}
}

// ────────────────────── Search ──────────────────────

func (s *postService) Search(ctx context.Context, query string) ([]dto.PostResponse, error) {
	posts, err := s.repo.Post.Search(ctx, query)
	if err != nil {
		s.logger.Error("检索新闻/活动失败", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return toPostResponses(posts), nil
}

// ────────────────────── List ──────────────────────

// List q 非空时按检索结果分页，否则分页列出全部
func (s *postService) List(ctx context.Context, req *dto.PostListRequest) ([]dto.PostResponse, int64, error) {
	if req.Q != "" {
		posts, err := s.repo.Post.Search(ctx, req.Q)
		if err != nil {
			s.logger.Error("检索新闻/活动失败", zap.String("query", req.Q), zap.Error(err))
			return nil, 0, err
		}
		total := int64(len(posts))
		start := req.GetOffset()
		if start > len(posts) {
			start = len(posts)
		}
		end := start + req.GetPageSize()
		if end > len(posts) {
			end = len(posts)
		}
		return toPostResponses(posts[start:end]), total, nil
	}

	posts, total, err := s.repo.Post.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出新闻/活动失败", zap.Error(err))
		return nil, 0, err
	}
	return toPostResponses(posts), total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *postService) GetByID(ctx context.Context, id uint) (*dto.PostResponse, error) {
	key := postCacheKey(id)

	if s.cache != nil {
		var cached model.Post
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("读取 Post 缓存失败", zap.Uint("id", id), zap.Error(err))
		} else if found {
			return toPostResponse(&cached), nil
		}
	}

	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("查询新闻/活动失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, post); err != nil {
			s.logger.Warn("写入 Post 缓存失败", zap.Uint("id", id), zap.Error(err))
		}
	}

	return toPostResponse(post), nil
}

// ────────────────────── Create ──────────────────────

func (s *postService) Create(ctx context.Context, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	kind := model.PostKind(req.PostedAs)
	if !kind.Valid() {
		return nil, ErrPostKindInvalid
	}

	post := &model.Post{
		Title:    req.Title,
		Summary:  req.Summary,
		PostedAs: kind,
	}

	err := runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Post.Create(ctx, post); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogSave(ctx, model.ModelNamePost, post, post.String(), true)
		return err
	})
	if err != nil {
		s.logger.Error("创建新闻/活动失败", zap.Error(err))
		return nil, err
	}

	s.afterWrite(ctx, post)
	return toPostResponse(post), nil
}

// ────────────────────── Update ──────────────────────

func (s *postService) Update(ctx context.Context, id uint, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("查询新闻/活动失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.Title != nil {
		post.Title = req.Title
	}
	if req.Summary != nil {
		post.Summary = req.Summary
	}
	if req.PostedAs != nil {
		kind := model.PostKind(*req.PostedAs)
		if !kind.Valid() {
			return nil, ErrPostKindInvalid
		}
		post.PostedAs = kind
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Post.Update(ctx, post); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogSave(ctx, model.ModelNamePost, post, post.String(), false)
		return err
	})
	if err != nil {
		s.logger.Error("更新新闻/活动失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, id)
	s.afterWrite(ctx, post)
	return toPostResponse(post), nil
}

// ────────────────────── Delete ──────────────────────

func (s *postService) Delete(ctx context.Context, id uint) error {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("查询新闻/活动失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Post.Delete(ctx, id); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogDelete(ctx, model.ModelNamePost, post, post.String())
		return err
	})
	if err != nil {
		s.logger.Error("删除新闻/活动失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx, id)
	if s.indexer != nil {
		if err := s.indexer.DeletePost(ctx, id); err != nil {
			s.logger.Warn("删除检索索引失败", zap.Uint("id", id), zap.Error(err))
		}
	}
	return nil
}

// ────────────────────── FullTextSearch ──────────────────────

func (s *postService) FullTextSearch(ctx context.Context, query string) ([]dto.PostSearchHit, error) {
	if s.indexer == nil {
		return nil, ErrSearchUnavailable
	}

	docs, err := s.indexer.SearchPosts(ctx, strings.TrimSpace(query), fullTextSearchSize)
	if err != nil {
		s.logger.Error("全文检索失败", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	hits := make([]dto.PostSearchHit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, dto.PostSearchHit{ID: d.ID, Title: d.Title, Summary: d.Summary, PostedAs: d.PostedAs})
	}
	return hits, nil
}

// ── 内部辅助方法 ──

// afterWrite 提交后同步检索镜像，失败只记录日志
func (s *postService) afterWrite(ctx context.Context, post *model.Post) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexPost(ctx, post); err != nil {
		s.logger.Warn("同步检索索引失败", zap.Uint("id", post.ID), zap.Error(err))
	}
}

func (s *postService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, postCacheKey(id)); err != nil {
		s.logger.Warn("清除 Post 缓存失败", zap.Uint("id", id), zap.Error(err))
	}
}

func postCacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func toPostResponse(post *model.Post) *dto.PostResponse {
	return &dto.PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Summary:   post.Summary,
		PostedAs:  string(post.PostedAs),
		CreatedAt: formatTimestamp(post.CreatedAt),
		UpdatedAt: formatTimestamp(post.UpdatedAt),
	}
}

func toPostResponses(posts []model.Post) []dto.PostResponse {
	result := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, *toPostResponse(&posts[i]))
	}
	return result
}
