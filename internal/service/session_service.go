package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-board/internal/dto"
	"campus-board/internal/model"
	"campus-board/internal/repository"
	pkgerrors "campus-board/pkg/errors"
)

// ── 学年模块业务错误 ──

var (
	ErrSessionNotFound    = errors.New("学年不存在")
	ErrSessionNameTaken   = errors.New("学年名称已存在")
	ErrSessionDateInvalid = errors.New("学年开始日期格式无效")
)

// SessionService 学年业务接口
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SessionResponse, error)
	GetCurrent(ctx context.Context) (*dto.SessionResponse, error)
	List(ctx context.Context) ([]dto.SessionResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	startDate, err := model.ParseDate(req.NextSessionStartDate)
	if err != nil {
		return nil, ErrSessionDateInvalid
	}

	session := &model.Session{
		Name:                 req.Name,
		IsCurrent:            req.IsCurrent,
		NextSessionStartDate: startDate,
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Session.Create(ctx, session); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogSave(ctx, model.ModelNameSession, session, session.String(), true)
		return err
	})
	if err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrSessionNameTaken
		}
		s.logger.Error("创建学年失败", zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id uint) (*dto.SessionResponse, error) {
	session, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *sessionService) GetCurrent(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询当前学年失败", zap.Error(err))
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ────────────────────── List ──────────────────────

func (s *sessionService) List(ctx context.Context) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.List(ctx)
	if err != nil {
		s.logger.Error("列出学年失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *sessionService) Update(ctx context.Context, id uint, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.IsCurrent != nil {
		session.IsCurrent = *req.IsCurrent
	}
	if req.NextSessionStartDate != nil {
		startDate, err := model.ParseDate(*req.NextSessionStartDate)
		if err != nil {
			return nil, ErrSessionDateInvalid
		}
		session.NextSessionStartDate = startDate
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Session.Update(ctx, session); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogSave(ctx, model.ModelNameSession, session, session.String(), false)
		return err
	})
	if err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrSessionNameTaken
		}
		s.logger.Error("更新学年失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除学年，其下学期随之删除
func (s *sessionService) Delete(ctx context.Context, id uint) error {
	session, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Session.Delete(ctx, id); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogDelete(ctx, model.ModelNameSession, session, session.String())
		return err
	})
	if err != nil {
		s.logger.Error("删除学年失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *sessionService) find(ctx context.Context, id uint) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询学年失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func toSessionResponse(session *model.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:                   session.ID,
		Name:                 session.Name,
		IsCurrent:            session.IsCurrent,
		NextSessionStartDate: model.FormatDate(session.NextSessionStartDate),
	}
}
