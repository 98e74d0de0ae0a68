package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/narteyr/flashcards/internal/model"
	"github.com/narteyr/flashcards/internal/repository"
)

// MaterialService manages the shared course library: submissions
// start pending and become public once a moderator approves them.
type MaterialService struct {
	materialRepo *repository.MaterialRepository
	courseRepo   *repository.CourseRepository
	fileRepo     *repository.FileRepository
}

func NewMaterialService(materialRepo *repository.MaterialRepository, courseRepo *repository.CourseRepository, fileRepo *repository.FileRepository) *MaterialService {
	return &MaterialService{materialRepo: materialRepo, courseRepo: courseRepo, fileRepo: fileRepo}
}

func (s *MaterialService) Submit(ctx context.Context, courseID, fileID uuid.UUID, title, description, uploadedBy string) (*model.Material, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("course %s: %w", courseID, err)
	}
	if _, err := s.fileRepo.FindByID(ctx, fileID); err != nil {
		return nil, fmt.Errorf("file %s: %w", fileID, err)
	}

	material := &model.Material{
		CourseID:    courseID,
		FileID:      fileID,
		Title:       title,
		Description: description,
		UploadedBy:  uploadedBy,
		Status:      model.ModerationPending,
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) List(ctx context.Context, courseID *uuid.UUID, statusFilter string, limit, offset int) ([]model.Material, int64, error) {
	return s.materialRepo.FindByCourse(ctx, courseID, statusFilter, limit, offset)
}

// Review moves a pending material to approved or rejected.
func (s *MaterialService) Review(ctx context.Context, id uuid.UUID, approve bool, reviewedBy, note string) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material.Status != model.ModerationPending {
		return nil, fmt.Errorf("material %s already reviewed (%s)", id, material.Status)
	}

	if approve {
		material.Status = model.ModerationApproved
	} else {
		material.Status = model.ModerationRejected
	}
	material.ReviewedBy = reviewedBy
	material.ReviewNote = note
	now := time.Now()
	material.ReviewedAt = &now

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) CreateCourse(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Create(ctx, course)
}

func (s *MaterialService) ListCourses(ctx context.Context, program string, limit, offset int) ([]model.Course, int64, error) {
	return s.courseRepo.List(ctx, program, limit, offset)
}
