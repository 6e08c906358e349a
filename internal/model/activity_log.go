package model

import (
	"fmt"
	"time"
)

// Operation 审计操作类型
type Operation string

const (
	OperationCreate Operation = "C"
	OperationUpdate Operation = "U"
	OperationDelete Operation = "D"
)

// Label 操作类型的可读名称，未知类型返回空串
func (o Operation) Label() string {
	switch o {
	case OperationCreate:
		return "Creation"
	case OperationUpdate:
		return "Update"
	case OperationDelete:
		return "Deletion"
	}
	return ""
}

// ActivityLog 审计日志表，对应 activity_logs
// 只追加，不更新不删除
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey"                                                                     json:"id"`
	ModelName  string    `gorm:"type:varchar(255);not null"                                                     json:"model_name"`
	RecordID   *uint     `gorm:"check:chk_activity_logs_record_id,record_id >= 0"                               json:"record_id"`
	RecordName *string   `gorm:"type:varchar(255)"                                                              json:"record_name"`
	Operation  Operation `gorm:"type:char(1);not null;check:chk_activity_logs_operation,operation IN ('C','U','D')" json:"operation"`
	CreatedAt  time.Time `gorm:"autoCreateTime"                                                                 json:"created_at"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }

// NewSaveEntry 构造创建/更新日志
// isNew 由调用方显式给出：新建时不记录 record_id，更新时记录当前主键
func NewSaveEntry(modelName string, record Identifiable, name string, isNew bool) *ActivityLog {
	entry := &ActivityLog{
		ModelName:  modelName,
		RecordName: optionalName(name),
		Operation:  OperationUpdate,
	}
	if isNew {
		entry.Operation = OperationCreate
		return entry
	}
	entry.RecordID = recordID(record)
	return entry
}

// NewDeleteEntry 构造删除日志
func NewDeleteEntry(modelName string, record Identifiable, name string) *ActivityLog {
	return &ActivityLog{
		ModelName:  modelName,
		RecordID:   recordID(record),
		RecordName: optionalName(name),
		Operation:  OperationDelete,
	}
}

// HumanReadable 渲染为可读文本，未知操作类型返回空串
func (l *ActivityLog) HumanReadable() string {
	name := ""
	if l.RecordName != nil && *l.RecordName != "" {
		name = " with the name " + *l.RecordName + " "
	}

	switch l.Operation {
	case OperationCreate:
		return l.ModelName + name + "created"
	case OperationUpdate:
		return l.ModelName + l.idTag() + name + "has been updated"
	case OperationDelete:
		return l.ModelName + l.idTag() + name + "has been deleted"
	}
	return ""
}

// String 调试输出
func (l *ActivityLog) String() string {
	id := ""
	if l.RecordID != nil {
		id = fmt.Sprintf("%d", *l.RecordID)
	}
	return fmt.Sprintf("[%s] %s#%s %s %s",
		l.CreatedAt.Format(time.RFC3339), l.ModelName, id, derefString(l.RecordName), l.Operation)
}

func (l *ActivityLog) idTag() string {
	if l.RecordID == nil {
		return "[#]"
	}
	return fmt.Sprintf("[#%d]", *l.RecordID)
}

func recordID(record Identifiable) *uint {
	if record == nil {
		return nil
	}
	id := record.PrimaryKey()
	if id == 0 {
		return nil
	}
	return &id
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}
