package model

import "time"

// Identifiable 可被审计日志引用的持久化记录
// PrimaryKey 为 0 表示记录尚未落库
type Identifiable interface {
	PrimaryKey() uint
}

// DateLayout 日期字段统一格式
const DateLayout = "2006-01-02"

// FormatDate 格式化可空日期，nil 返回空串
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate 解析可空日期，空串返回 nil
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// 审计日志中使用的模型名称
const (
	ModelNamePost     = "Post"
	ModelNameSession  = "Session"
	ModelNameSemester = "Semester"
)
