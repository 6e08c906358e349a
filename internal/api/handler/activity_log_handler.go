package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"campus-board/internal/dto"
	"campus-board/internal/service"
	"campus-board/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ActivityLogHandler 审计日志 HTTP 处理器（只读）
type ActivityLogHandler struct {
	logSvc    service.ActivityLogService
	exportSvc service.ExportService
}

// NewActivityLogHandler 创建 ActivityLogHandler
func NewActivityLogHandler(logSvc service.ActivityLogService, exportSvc service.ExportService) *ActivityLogHandler {
	return &ActivityLogHandler{logSvc: logSvc, exportSvc: exportSvc}
}

// ListActivityLogs 分页列出审计日志，最新的在前
// GET /api/v1/admin/activity-logs
func (h *ActivityLogHandler) ListActivityLogs(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.logSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ExportActivityLogs 导出审计日志
// GET /api/v1/admin/activity-logs/export
func (h *ActivityLogHandler) ExportActivityLogs(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportActivityLogs(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
