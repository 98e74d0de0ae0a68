package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/model"
)

type FlashcardRepository struct {
	db *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

// SaveDeck persists the cards of one generation run together with its
// audit record, in a single transaction.
func (r *FlashcardRepository) SaveDeck(ctx context.Context, cards []model.Flashcard, record *model.GenerationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cards) > 0 {
			if err := tx.CreateInBatches(cards, 100).Error; err != nil {
				return err
			}
		}
		if record != nil {
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FlashcardRepository) FindByJobID(ctx context.Context, jobID string) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND deleted_at IS NULL", jobID).
		Order("position ASC").
		Find(&cards).Error
	return cards, err
}

func (r *FlashcardRepository) FindGenerationRecord(ctx context.Context, jobID string) (*model.GenerationRecord, error) {
	var record model.GenerationRecord
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
