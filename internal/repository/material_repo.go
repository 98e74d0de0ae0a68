package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/model"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *MaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) FindByCourse(ctx context.Context, courseID *uuid.UUID, status string, limit, offset int) ([]model.Material, int64, error) {
	var materials []model.Material
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Material{}).Where("deleted_at IS NULL")
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	query.Count(&total)
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) Update(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}
