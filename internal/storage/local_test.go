package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalBackendSaveAndOpen(t *testing.T) {
	backend := NewLocalBackend(t.TempDir())
	ctx := context.Background()

	content := "lecture notes about cell biology"
	file, err := backend.Save(ctx, SaveInput{
		JobID:       "job-1",
		UserID:      "student-7",
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if file.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("file must get an id")
	}
	if file.Size != int64(len(content)) {
		t.Errorf("size mismatch: %d", file.Size)
	}
	if file.Checksum == "" {
		t.Error("checksum should be recorded")
	}
	if !strings.Contains(file.StoragePath, "student-7") {
		t.Errorf("storage path should be scoped to the user: %s", file.StoragePath)
	}

	reader, err := backend.Open(ctx, file)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reader.Close()

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(got, []byte(content)) {
		t.Errorf("content mismatch after round trip: %q", got)
	}
}

func TestLocalBackendOpenMissingFile(t *testing.T) {
	backend := NewLocalBackend(t.TempDir())

	file, err := backend.Save(context.Background(), SaveInput{
		JobID:    "job-2",
		UserID:   "u",
		FileName: "gone.txt",
		Reader:   strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	file.StoragePath = file.StoragePath + ".missing"
	if _, err := backend.Open(context.Background(), file); err == nil {
		t.Fatal("expected error opening a missing file")
	}
}
