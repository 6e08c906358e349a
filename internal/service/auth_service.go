package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"campus-board/config"
	"campus-board/internal/dto"
	"campus-board/pkg/jwt"
)

// RoleAdmin 管理后台唯一角色
const RoleAdmin = "admin"

var ErrInvalidCredentials = errors.New("用户名或密码错误")

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	cfg    *config.AuthConfig
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		cfg:    cfg,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 校验用户名
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) != 1 {
		return nil, ErrInvalidCredentials
	}

	// 2. 验证密码 (bcrypt)；未配置哈希时拒绝一切登录
	if s.cfg.AdminPasswordHash == "" {
		s.logger.Warn("未配置管理员密码哈希，拒绝登录")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 AccessToken
	accessToken, err := s.jwtMgr.GenerateAccessToken(req.Username, RoleAdmin)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Username:    req.Username,
	}, nil
}
