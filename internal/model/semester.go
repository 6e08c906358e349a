package model

import "time"

// SemesterName 学期序号
type SemesterName string

const (
	SemesterFirst  SemesterName = "First"
	SemesterSecond SemesterName = "Second"
	SemesterThird  SemesterName = "Third"
)

// Valid 是否为合法的学期序号
func (n SemesterName) Valid() bool {
	switch n {
	case SemesterFirst, SemesterSecond, SemesterThird:
		return true
	}
	return false
}

// Session 学年表，对应 sessions
// is_current 不做唯一性约束，由调用方维护
type Session struct {
	ID                   uint       `gorm:"primaryKey"                             json:"id"`
	Name                 string     `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	IsCurrent            bool       `gorm:"not null;default:false"                 json:"is_current"`
	NextSessionStartDate *time.Time `gorm:"type:date"                              json:"next_session_start_date"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// PrimaryKey 实现 Identifiable
func (s *Session) PrimaryKey() uint { return s.ID }

// String 展示名称
func (s *Session) String() string { return s.Name }

// Semester 学期表，对应 semesters
// 删除 Session 时级联删除其下学期
type Semester struct {
	ID                    uint         `gorm:"primaryKey"                                                                      json:"id"`
	Name                  SemesterName `gorm:"type:varchar(10);not null;check:chk_semesters_name,name IN ('First','Second','Third')" json:"name"`
	IsCurrent             bool         `gorm:"not null;default:false"                                                          json:"is_current"`
	SessionID             *uint        `gorm:"index"                                                                           json:"session_id"`
	Session               *Session     `gorm:"constraint:OnDelete:CASCADE"                                                     json:"session,omitempty"`
	NextSemesterStartDate *time.Time   `gorm:"type:date"                                                                       json:"next_semester_start_date"`
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// PrimaryKey 实现 Identifiable
func (s *Semester) PrimaryKey() uint { return s.ID }

// String 展示名称
func (s *Semester) String() string { return string(s.Name) }
