package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-board/internal/service"
	"campus-board/pkg/response"
)

// CalendarHandler 学年日历订阅
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Feed 输出 iCalendar 订阅源
// GET /api/v1/calendar.ics
func (h *CalendarHandler) Feed(c *gin.Context) {
	body, err := h.calendarSvc.Export(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `inline; filename="academic-calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
