package status

import (
	"context"

	"github.com/narteyr/flashcards/internal/model"
	"github.com/narteyr/flashcards/internal/repository"
)

// GormStore persists job records through the job repository.
type GormStore struct {
	repo *repository.JobRepository
}

func NewGormStore(repo *repository.JobRepository) *GormStore {
	return &GormStore{repo: repo}
}

func (s *GormStore) Get(ctx context.Context, jobID string) (*Record, error) {
	job, err := s.repo.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	return &Record{
		JobID:     job.JobID,
		Status:    job.Status,
		Payload:   job.Payload,
		UpdatedAt: job.UpdatedAt,
	}, nil
}

func (s *GormStore) Put(ctx context.Context, rec *Record) error {
	return s.repo.Upsert(ctx, &model.Job{
		JobID:   rec.JobID,
		Status:  rec.Status,
		Payload: rec.Payload,
	})
}
