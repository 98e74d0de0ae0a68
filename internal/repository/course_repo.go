package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/model"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context, program string, limit, offset int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Course{}).Where("deleted_at IS NULL")
	if program != "" {
		query = query.Where("program = ?", program)
	}

	query.Count(&total)
	err := query.Order("code ASC").Limit(limit).Offset(offset).Find(&courses).Error
	return courses, total, err
}
