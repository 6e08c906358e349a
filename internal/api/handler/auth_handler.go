package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-board/internal/dto"
	"campus-board/internal/service"
	"campus-board/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Me 当前登录的管理员
// GET /api/v1/admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}
	response.OK(c, gin.H{"username": username})
}
