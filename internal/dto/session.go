package dto

// ── 学年模块 DTO ──

// CreateSessionRequest 创建学年请求
type CreateSessionRequest struct {
	Name                 string `json:"name"                    binding:"required,max=200"`
	IsCurrent            bool   `json:"is_current"`
	NextSessionStartDate string `json:"next_session_start_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSessionRequest 更新学年请求
// NextSessionStartDate 传空串表示清空
type UpdateSessionRequest struct {
	Name                 *string `json:"name"                    binding:"omitempty,max=200"`
	IsCurrent            *bool   `json:"is_current"`
	NextSessionStartDate *string `json:"next_session_start_date" binding:"omitempty"`
}

// SessionResponse 学年信息响应
type SessionResponse struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	IsCurrent            bool   `json:"is_current"`
	NextSessionStartDate string `json:"next_session_start_date,omitempty"`
}
