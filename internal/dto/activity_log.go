package dto

// ActivityLogResponse 审计日志响应
type ActivityLogResponse struct {
	ID             uint    `json:"id"`
	ModelName      string  `json:"model_name"`
	RecordID       *uint   `json:"record_id"`
	RecordName     *string `json:"record_name"`
	Operation      string  `json:"operation"`
	OperationLabel string  `json:"operation_label"`
	Message        string  `json:"message"`
	CreatedAt      string  `json:"created_at"`
}
