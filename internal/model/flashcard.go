package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Flashcard is one generated study item. Front and back are persisted
// verbatim from the parsed model response.
type Flashcard struct {
	BaseModel
	JobID          string      `gorm:"size:100;not null;index" json:"job_id"`
	Front          string      `gorm:"type:text" json:"front"`
	Back           string      `gorm:"type:text" json:"back"`
	Tags           StringArray `gorm:"type:jsonb" json:"tags,omitempty"`
	SourceChunkIDs StringArray `gorm:"type:jsonb" json:"source_chunk_ids,omitempty"`
	Position       int         `gorm:"default:0" json:"position"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// FileSummaries is a JSONB list of file summaries.
type FileSummaries []FileSummary

func (f *FileSummaries) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, f)
}

func (f FileSummaries) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// GenerationRecord is the audit record written once per successful
// generation run: which files went in and which options were used.
type GenerationRecord struct {
	BaseModel
	JobID     string        `gorm:"size:100;not null;uniqueIndex" json:"job_id"`
	Files     FileSummaries `gorm:"type:jsonb" json:"files"`
	Options   JSONMap       `gorm:"type:jsonb" json:"options"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (GenerationRecord) TableName() string {
	return "generation_records"
}
