package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-board/internal/dto"
	"campus-board/internal/service"
	"campus-board/pkg/response"
)

// SessionHandler 学年模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListSessions 获取学年列表
// GET /api/v1/admin/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetSession 获取学年详情
// GET /api/v1/admin/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// GetCurrentSession 获取当前学年
// GET /api/v1/sessions/current
func (h *SessionHandler) GetCurrentSession(c *gin.Context) {
	session, err := h.sessionSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CreateSession 创建学年
// POST /api/v1/admin/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateSession 更新学年
// PUT /api/v1/admin/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession 删除学年及其下学期
// DELETE /api/v1/admin/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSessionError 统一处理学年模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "学年不存在")
	case errors.Is(err, service.ErrSessionNameTaken):
		response.Conflict(c, 13002, "学年名称已存在")
	case errors.Is(err, service.ErrSessionDateInvalid):
		response.BadRequest(c, 13003, "学年开始日期格式无效")
	default:
		response.InternalError(c)
	}
}
