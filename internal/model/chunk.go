package model

import "github.com/google/uuid"

// Chunk is the persisted form of one text window produced by the
// splitter, kept for auditing and deck provenance.
type Chunk struct {
	BaseModel
	JobID      string     `gorm:"size:100;not null;index" json:"job_id"`
	FileID     *uuid.UUID `gorm:"type:uuid;index" json:"file_id,omitempty"`
	ChunkID    string     `gorm:"size:200;not null" json:"chunk_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ChunkIndex int        `gorm:"default:0" json:"chunk_index"`
	Metadata   JSONMap    `gorm:"type:jsonb" json:"metadata"`
}

func (Chunk) TableName() string {
	return "chunks"
}
