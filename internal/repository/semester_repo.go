package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-board/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id uint) (*model.Semester, error)
	GetCurrent(ctx context.Context) (*model.Semester, error)
	List(ctx context.Context, sessionID *uint) ([]model.Semester, error)
	Update(ctx context.Context, semester *model.Semester) error
	Delete(ctx context.Context, id uint) error
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(semester).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id uint) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Preload("Session").
		Where("id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

// GetCurrent 返回 id 最小的当前学期
func (r *semesterRepo) GetCurrent(ctx context.Context) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Preload("Session").
		Where("is_current = ?", true).
		Order("id ASC").
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) List(ctx context.Context, sessionID *uint) ([]model.Semester, error) {
	semesters := make([]model.Semester, 0)
	db := r.db.WithContext(ctx).Preload("Session")

	if sessionID != nil {
		db = db.Where("session_id = ?", *sessionID)
	}

	err := db.Order("session_id DESC, name ASC").Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) Update(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(semester).Error
}

func (r *semesterRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Semester{}, id).Error
}
