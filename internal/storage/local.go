package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/narteyr/flashcards/internal/model"
)

// LocalBackend stores uploads on the local filesystem under
// <root>/<userID>/<fileID>/<filename>.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) *LocalBackend {
	return &LocalBackend{root: root}
}

func (b *LocalBackend) Save(ctx context.Context, in SaveInput) (*model.File, error) {
	fileID := uuid.New()
	storagePath := filepath.Join(b.root, in.UserID, fileID.String(), in.FileName)

	if err := os.MkdirAll(filepath.Dir(storagePath), 0755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	defer dst.Close()

	hasher := sha256.New()
	written, err := io.Copy(dst, io.TeeReader(in.Reader, hasher))
	if err != nil {
		os.Remove(storagePath)
		return nil, fmt.Errorf("storage: %w", err)
	}

	file := &model.File{
		JobID:       in.JobID,
		UserID:      in.UserID,
		FileName:    in.FileName,
		ContentType: in.ContentType,
		Size:        written,
		StoragePath: storagePath,
		Checksum:    hex.EncodeToString(hasher.Sum(nil)),
	}
	file.ID = fileID

	return file, nil
}

func (b *LocalBackend) Open(ctx context.Context, file *model.File) (io.ReadCloser, error) {
	f, err := os.Open(file.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return f, nil
}
