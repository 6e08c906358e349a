package dto

// ── 新闻/活动模块 DTO ──

// CreatePostRequest 创建 Post 请求
type CreatePostRequest struct {
	Title    *string `json:"title"     binding:"omitempty,max=200"`
	Summary  *string `json:"summary"   binding:"omitempty,max=200"`
	PostedAs string  `json:"posted_as" binding:"required,oneof=News Event"`
}

// UpdatePostRequest 更新 Post 请求，nil 字段保持不变
type UpdatePostRequest struct {
	Title    *string `json:"title"     binding:"omitempty,max=200"`
	Summary  *string `json:"summary"   binding:"omitempty,max=200"`
	PostedAs *string `json:"posted_as" binding:"omitempty,oneof=News Event"`
}

// PostListRequest 列表/检索参数，q 为空时分页列出全部
type PostListRequest struct {
	Q string `form:"q" binding:"omitempty,max=200"`
	PaginationRequest
}

// PostResponse Post 信息响应
type PostResponse struct {
	ID        uint    `json:"id"`
	Title     *string `json:"title"`
	Summary   *string `json:"summary"`
	PostedAs  string  `json:"posted_as"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// PostSearchHit 全文检索命中
type PostSearchHit struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	PostedAs string `json:"posted_as"`
}
