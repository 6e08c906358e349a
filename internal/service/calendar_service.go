package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"campus-board/internal/repository"
)

const calendarProductID = "-//campus-board//academic calendar//EN"

// CalendarService 学年/学期日历订阅
type CalendarService interface {
	// Export 生成 iCalendar 文本，每个已知的下一学年/学期开始日期对应一个全天事件
	Export(ctx context.Context) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) Export(ctx context.Context) (string, error) {
	sessions, err := s.repo.Session.List(ctx)
	if err != nil {
		s.logger.Error("列出学年失败", zap.Error(err))
		return "", err
	}
	semesters, err := s.repo.Semester.List(ctx, nil)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("Academic Calendar")

	stamp := time.Now().UTC()

	for _, session := range sessions {
		if session.NextSessionStartDate == nil {
			continue
		}
		addAllDayEvent(cal,
			fmt.Sprintf("session-%d@campus-board", session.ID),
			fmt.Sprintf("Next session after %s begins", session.Name),
			*session.NextSessionStartDate, stamp)
	}

	for _, semester := range semesters {
		if semester.NextSemesterStartDate == nil {
			continue
		}
		summary := fmt.Sprintf("Next semester after %s begins", semester.Name)
		if semester.Session != nil {
			summary = fmt.Sprintf("Next semester after %s (%s) begins", semester.Name, semester.Session.Name)
		}
		addAllDayEvent(cal,
			fmt.Sprintf("semester-%d@campus-board", semester.ID),
			summary,
			*semester.NextSemesterStartDate, stamp)
	}

	return cal.Serialize(), nil
}

func addAllDayEvent(cal *ics.Calendar, uid, summary string, day, stamp time.Time) {
	event := cal.AddEvent(uid)
	event.SetDtStampTime(stamp)
	event.SetSummary(summary)
	event.SetAllDayStartAt(day)
	event.SetAllDayEndAt(day.AddDate(0, 0, 1))
}

