package dto

// ── 认证模块 DTO ──

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // 秒
	Username    string `json:"username"`
}
