package model

import (
	"time"

	"github.com/google/uuid"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// Material is a library entry linking an uploaded file to a course.
// New submissions start pending and only approved materials show up
// in the public library.
type Material struct {
	BaseModel
	CourseID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"course_id"`
	FileID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"file_id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	UploadedBy  string           `gorm:"size:100" json:"uploaded_by"`
	Status      ModerationStatus `gorm:"size:50;default:'pending';index" json:"status"`
	ReviewedBy  string           `gorm:"size:100" json:"reviewed_by,omitempty"`
	ReviewNote  string           `gorm:"type:text" json:"review_note,omitempty"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	File   *File   `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

func (Material) TableName() string {
	return "materials"
}
