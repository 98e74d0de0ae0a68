package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/model"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

func (r *ChunkRepository) CreateBatch(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(chunks, 100).Error
}

func (r *ChunkRepository) FindByJobID(ctx context.Context, jobID string) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND deleted_at IS NULL", jobID).
		Order("chunk_index ASC").
		Find(&chunks).Error
	return chunks, err
}
