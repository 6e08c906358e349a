package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-board/pkg/response"
)

// MustGetUsername 从 Gin 上下文中安全提取 username。
// 如果 JWT 中间件未正确注入 username，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get("username")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustParseID 解析路径参数 :id 为正整数，失败时写入 400 响应
func MustParseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "ID 必须为正整数")
		return 0, false
	}
	return uint(id), true
}
