package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-board/internal/dto"
	"campus-board/internal/service"
	"campus-board/pkg/response"
)

// PostHandler 新闻/活动模块 HTTP 处理器
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler 创建 PostHandler
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// ListPosts 分页列出 Post，q 非空时按标题、摘要或发布类型检索
// GET /api/v1/posts?q=&page=&page_size=
func (h *PostHandler) ListPosts(c *gin.Context) {
	var req dto.PostListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.postSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// SearchPosts 全文检索
// GET /api/v1/posts/search?q=
func (h *PostHandler) SearchPosts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, 10001, "q 不能为空")
		return
	}

	hits, err := h.postSvc.FullTextSearch(c.Request.Context(), q)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.OK(c, gin.H{"list": hits})
}

// GetPost 获取 Post 详情
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	post, err := h.postSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.OK(c, post)
}

// CreatePost 创建 Post
// POST /api/v1/admin/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	post, err := h.postSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.Created(c, post)
}

// UpdatePost 更新 Post
// PUT /api/v1/admin/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	post, err := h.postSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	response.OK(c, post)
}

// DeletePost 删除 Post
// DELETE /api/v1/admin/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	if err := h.postSvc.Delete(c.Request.Context(), id); err != nil {
		h.handlePostError(c, err)
		return
	}

	response.OK(c, nil)
}

// handlePostError 统一处理新闻/活动模块业务错误
func (h *PostHandler) handlePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, 12001, "新闻/活动不存在")
	case errors.Is(err, service.ErrSearchUnavailable):
		response.ServiceUnavailable(c, 12002, "全文检索未启用")
	case errors.Is(err, service.ErrPostKindInvalid):
		response.BadRequest(c, 12003, "发布类型必须为 News 或 Event")
	default:
		response.InternalError(c)
	}
}
