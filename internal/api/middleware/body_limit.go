package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-board/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes<=0 时不限制
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		// Content-Length 已知时直接拒绝
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

