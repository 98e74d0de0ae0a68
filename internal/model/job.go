package model

import "time"

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusParsing    JobStatus = "parsing"
	JobStatusGenerating JobStatus = "generating"
	JobStatusComplete   JobStatus = "complete"
	JobStatusFailed     JobStatus = "failed"
)

// Job tracks one upload-to-flashcards request through its lifecycle.
// The job identifier is caller-supplied, so it is the primary key
// rather than a generated uuid.
type Job struct {
	JobID     string    `gorm:"primaryKey;size:100" json:"job_id"`
	Status    JobStatus `gorm:"size:50;not null" json:"status"`
	Payload   JSONMap   `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
