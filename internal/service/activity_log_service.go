package service

import (
	"context"

	"go.uber.org/zap"

	"campus-board/internal/dto"
	"campus-board/internal/model"
	"campus-board/internal/repository"
)

// ActivityLogService 审计日志查询接口
type ActivityLogService interface {
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ActivityLogResponse, int64, error)
}

type activityLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityLogService 创建 ActivityLogService 实例
func NewActivityLogService(repo *repository.Repository, logger *zap.Logger) ActivityLogService {
	return &activityLogService{repo: repo, logger: logger}
}

func (s *activityLogService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ActivityLogResponse, int64, error) {
	entries, total, err := s.repo.ActivityLog.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出审计日志失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityLogResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toActivityLogResponse(&entries[i]))
	}
	return result, total, nil
}

func toActivityLogResponse(entry *model.ActivityLog) dto.ActivityLogResponse {
	return dto.ActivityLogResponse{
		ID:             entry.ID,
		ModelName:      entry.ModelName,
		RecordID:       entry.RecordID,
		RecordName:     entry.RecordName,
		Operation:      string(entry.Operation),
		OperationLabel: entry.Operation.Label(),
		Message:        entry.HumanReadable(),
		CreatedAt:      formatTimestamp(entry.CreatedAt),
	}
}
