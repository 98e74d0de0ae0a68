package model

import "github.com/google/uuid"

// File is a persisted reference to one uploaded binary. Records are
// immutable once created; deletion is handled outside the pipeline.
type File struct {
	BaseModel
	JobID       string  `gorm:"size:100;not null;index" json:"job_id"`
	UserID      string  `gorm:"size:100;not null;index" json:"user_id"`
	FileName    string  `gorm:"size:500;not null" json:"file_name"`
	ContentType string  `gorm:"size:100" json:"content_type"`
	Size        int64   `gorm:"not null" json:"size"`
	StoragePath string  `gorm:"size:1000" json:"storage_path"`
	Checksum    string  `gorm:"size:100" json:"checksum,omitempty"`
	Metadata    JSONMap `gorm:"type:jsonb" json:"metadata"`
}

func (File) TableName() string {
	return "files"
}

// FileSummary is the compact file shape attached to job-status payloads
// and generation records.
type FileSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"mimeType"`
	StoragePath string    `json:"storagePath,omitempty"`
}
