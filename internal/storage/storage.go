package storage

import (
	"context"
	"io"

	"github.com/narteyr/flashcards/internal/model"
)

// SaveInput carries one accepted upload into a backend.
type SaveInput struct {
	JobID       string
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Backend persists raw uploaded bytes and hands them back for
// extraction. Save returns an immutable file record; callers own any
// retry policy.
type Backend interface {
	Save(ctx context.Context, in SaveInput) (*model.File, error)
	Open(ctx context.Context, file *model.File) (io.ReadCloser, error)
}
