package handler

import "campus-board/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Post        *PostHandler
	Session     *SessionHandler
	Semester    *SemesterHandler
	ActivityLog *ActivityLogHandler
	Calendar    *CalendarHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Post:        NewPostHandler(svc.Post),
		Session:     NewSessionHandler(svc.Session),
		Semester:    NewSemesterHandler(svc.Semester),
		ActivityLog: NewActivityLogHandler(svc.ActivityLog, svc.Export),
		Calendar:    NewCalendarHandler(svc.Calendar),
	}
}
