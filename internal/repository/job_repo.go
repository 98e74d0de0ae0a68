package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// FindByJobID returns nil, nil when no record exists for the job.
func (r *JobRepository) FindByJobID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Upsert(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}
