package dto

// ── 学期模块 DTO ──

// CreateSemesterRequest 创建学期请求
type CreateSemesterRequest struct {
	Name                  string `json:"name"                     binding:"required,oneof=First Second Third"`
	IsCurrent             bool   `json:"is_current"`
	SessionID             *uint  `json:"session_id"`
	NextSemesterStartDate string `json:"next_semester_start_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSemesterRequest 更新学期请求
// SessionID 为 0 表示解除与学年的关联；NextSemesterStartDate 传空串表示清空
type UpdateSemesterRequest struct {
	Name                  *string `json:"name"                     binding:"omitempty,oneof=First Second Third"`
	IsCurrent             *bool   `json:"is_current"`
	SessionID             *uint   `json:"session_id"`
	NextSemesterStartDate *string `json:"next_semester_start_date"`
}

// SemesterListRequest 学期列表查询参数
type SemesterListRequest struct {
	SessionID *uint `form:"session_id"`
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	ID                    uint   `json:"id"`
	Name                  string `json:"name"`
	IsCurrent             bool   `json:"is_current"`
	SessionID             *uint  `json:"session_id"`
	SessionName           string `json:"session_name,omitempty"`
	NextSemesterStartDate string `json:"next_semester_start_date,omitempty"`
}
