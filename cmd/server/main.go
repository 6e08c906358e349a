package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-board/config"
	"campus-board/internal/api/handler"
	"campus-board/internal/api/middleware"
	"campus-board/internal/api/router"
	"campus-board/internal/repository"
	"campus-board/internal/search"
	"campus-board/internal/service"
	"campus-board/pkg/database"
	"campus-board/pkg/jwt"
	applogger "campus-board/pkg/logger"
	"campus-board/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("CAMPUS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	// 接口变量只在连接成功时赋值，避免 nil 指针装入非 nil 接口
	var (
		rdb     *redis.Client
		cache   service.Cache
		limiter middleware.RateLimiter
	)
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，缓存与登录限流将不可用", zap.Error(err))
		rdb = nil
	} else {
		cache = rdb
		limiter = rdb
	}

	// 5. 连接 Elasticsearch（可选）
	var indexer service.PostIndexer
	if cfg.Search.Enabled {
		es, err := search.NewElastic(&cfg.Search)
		if err != nil {
			logger.Warn("Elasticsearch 初始化失败，全文检索将不可用", zap.Error(err))
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = es.EnsureIndex(ctx)
			cancel()
			if err != nil {
				logger.Warn("创建检索索引失败，全文检索将不可用", zap.Error(err))
			} else {
				indexer = es
				logger.Info("全文检索已启用", zap.Strings("addresses", cfg.Search.Addresses))
			}
		}
	}

	// 6. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, cache, indexer, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, limiter, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr), zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	sqlDB.Close()

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
