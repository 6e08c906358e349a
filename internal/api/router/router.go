package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-board/config"
	"campus-board/internal/api/handler"
	"campus-board/internal/api/middleware"
	"campus-board/internal/service"
	"campus-board/pkg/jwt"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时登录接口不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开接口
		v1.POST("/auth/login", middleware.RateLimit(limiter, loginRateLimit, loginRateWindow), h.Auth.Login)

		posts := v1.Group("/posts")
		{
			posts.GET("", h.Post.ListPosts)
			posts.GET("/search", h.Post.SearchPosts)
			posts.GET("/:id", h.Post.GetPost)
		}

		v1.GET("/sessions/current", h.Session.GetCurrentSession)
		v1.GET("/semesters/current", h.Semester.GetCurrentSemester)
		v1.GET("/calendar.ics", h.Calendar.Feed)

		// 管理后台
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(jwtMgr), middleware.RoleAuth(service.RoleAdmin))
		{
			admin.GET("", handler.AdminIndex)
			admin.GET("/me", h.Auth.Me)

			adminPosts := admin.Group("/posts")
			{
				adminPosts.GET("", h.Post.ListPosts)
				adminPosts.GET("/:id", h.Post.GetPost)
				adminPosts.POST("", h.Post.CreatePost)
				adminPosts.PUT("/:id", h.Post.UpdatePost)
				adminPosts.DELETE("/:id", h.Post.DeletePost)
			}

			sessions := admin.Group("/sessions")
			{
				sessions.GET("", h.Session.ListSessions)
				sessions.GET("/:id", h.Session.GetSession)
				sessions.POST("", h.Session.CreateSession)
				sessions.PUT("/:id", h.Session.UpdateSession)
				sessions.DELETE("/:id", h.Session.DeleteSession)
			}

			semesters := admin.Group("/semesters")
			{
				semesters.GET("", h.Semester.ListSemesters)
				semesters.GET("/:id", h.Semester.GetSemester)
				semesters.POST("", h.Semester.CreateSemester)
				semesters.PUT("/:id", h.Semester.UpdateSemester)
				semesters.DELETE("/:id", h.Semester.DeleteSemester)
			}

			// 审计日志只读
			logs := admin.Group("/activity-logs")
			{
				logs.GET("", h.ActivityLog.ListActivityLogs)
				logs.GET("/export", h.ActivityLog.ExportActivityLogs)
			}
		}
	}

	return r
}
