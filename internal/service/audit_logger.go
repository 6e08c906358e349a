package service

import (
	"context"

	"campus-board/internal/model"
	"campus-board/internal/repository"
)

// AuditLogger 记录实体的创建、更新与删除
// 在事务中使用时传入事务内的 ActivityLogRepository
type AuditLogger struct {
	logs repository.ActivityLogRepository
}

// NewAuditLogger 创建 AuditLogger
func NewAuditLogger(logs repository.ActivityLogRepository) *AuditLogger {
	return &AuditLogger{logs: logs}
}

// LogSave 记录创建（isNew=true）或更新
func (a *AuditLogger) LogSave(ctx context.Context, modelName string, record model.Identifiable, name string, isNew bool) (*model.ActivityLog, error) {
	entry := model.NewSaveEntry(modelName, record, name, isNew)
	if err := a.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// LogDelete 记录删除
func (a *AuditLogger) LogDelete(ctx context.Context, modelName string, record model.Identifiable, name string) (*model.ActivityLog, error) {
	entry := model.NewDeleteEntry(modelName, record, name)
	if err := a.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
