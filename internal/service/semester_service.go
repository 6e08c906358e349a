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

// ── 学期模块业务错误 ──

var (
	ErrSemesterNotFound    = errors.New("学期不存在")
	ErrSemesterNameInvalid = errors.New("学期序号必须为 First、Second 或 Third")
	ErrSemesterDateInvalid = errors.New("学期开始日期格式无效")
)

// SemesterService 学期业务接口
type SemesterService interface {
	Create(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SemesterResponse, error)
	GetCurrent(ctx context.Context) (*dto.SemesterResponse, error)
	List(ctx context.Context, req *dto.SemesterListRequest) ([]dto.SemesterResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSemesterRequest) (*dto.SemesterResponse, error)
	Delete(ctx context.Context, id uint) error
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *semesterService) Create(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error) {
	name := model.SemesterName(req.Name)
	if !name.Valid() {
		return nil, ErrSemesterNameInvalid
	}
	startDate, err := model.ParseDate(req.NextSemesterStartDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}

	semester := &model.Semester{
		Name:                  name,
		IsCurrent:             req.IsCurrent,
		NextSemesterStartDate: startDate,
	}
	if req.SessionID != nil {
		session, err := s.findSession(ctx, *req.SessionID)
		if err != nil {
			return nil, err
		}
		semester.SessionID = &session.ID
		semester.Session = session
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Semester.Create(ctx, semester); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogSave(ctx, model.ModelNameSemester, semester, semester.String(), true)
		return err
	})
	if err != nil {
		// 校验后学年被并发删除
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *semesterService) GetByID(ctx context.Context, id uint) (*dto.SemesterResponse, error) {
	semester, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSemesterResponse(semester), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *semesterService) GetCurrent(ctx context.Context) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, err
	}
	return toSemesterResponse(semester), nil
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context, req *dto.SemesterListRequest) ([]dto.SemesterResponse, error) {
	semesters, err := s.repo.Semester.List(ctx, req.SessionID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		result = append(result, *toSemesterResponse(&semesters[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *semesterService) Update(ctx context.Context, id uint, req *dto.UpdateSemesterRequest) (*dto.SemesterResponse, error) {
	semester, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := model.SemesterName(*req.Name)
		if !name.Valid() {
			return nil, ErrSemesterNameInvalid
		}
		semester.Name = name
	}
	if req.IsCurrent != nil {
		semester.IsCurrent = *req.IsCurrent
	}
	if req.NextSemesterStartDate != nil {
		startDate, err := model.ParseDate(*req.NextSemesterStartDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.NextSemesterStartDate = startDate
	}
	if req.SessionID != nil {
		if *req.SessionID == 0 {
			semester.SessionID = nil
			semester.Session = nil
		} else {
			session, err := s.findSession(ctx, *req.SessionID)
			if err != nil {
				return nil, err
			}
			semester.SessionID = &session.ID
			semester.Session = session
		}
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Semester.Update(ctx, semester); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogSave(ctx, model.ModelNameSemester, semester, semester.String(), false)
		return err
	})
	if err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("更新学期失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── Delete ──────────────────────

func (s *semesterService) Delete(ctx context.Context, id uint) error {
	semester, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.Semester.Delete(ctx, id); err != nil {
			return err
		}
		_, err := NewAuditLogger(txRepo.ActivityLog).LogDelete(ctx, model.ModelNameSemester, semester, semester.String())
		return err
	})
	if err != nil {
		s.logger.Error("删除学期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *semesterService) find(ctx context.Context, id uint) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return semester, nil
}

func (s *semesterService) findSession(ctx context.Context, id uint) (*model.Session, error) {
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

func toSemesterResponse(semester *model.Semester) *dto.SemesterResponse {
	resp := &dto.SemesterResponse{
		ID:                    semester.ID,
		Name:                  string(semester.Name),
		IsCurrent:             semester.IsCurrent,
		SessionID:             semester.SessionID,
		NextSemesterStartDate: model.FormatDate(semester.NextSemesterStartDate),
	}
	if semester.Session != nil {
		resp.SessionName = semester.Session.Name
	}
	return resp
}
