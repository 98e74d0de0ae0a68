package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/narteyr/flashcards/internal/model"
)

func testFile(name, contentType string) *model.File {
	f := &model.File{FileName: name, ContentType: contentType}
	f.ID = uuid.New()
	return f
}

func TestNormalizeMediaType(t *testing.T) {
	cases := map[string]string{
		"text/plain; charset=utf-8": "text/plain",
		"Application/PDF":           "application/pdf",
		"  text/csv  ":              "text/csv",
	}
	for in, want := range cases {
		if got := NormalizeMediaType(in); got != want {
			t.Errorf("NormalizeMediaType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	registry, err := NewLoaderRegistry(context.Background())
	if err != nil {
		t.Fatalf("NewLoaderRegistry failed: %v", err)
	}

	for _, mediaType := range []string{
		"text/plain",
		"text/csv",
		"application/json",
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		if _, ok := registry.Lookup(mediaType); !ok {
			t.Errorf("expected loader for %s", mediaType)
		}
	}

	if _, ok := registry.Lookup("image/gif"); ok {
		t.Error("image/gif must not have a loader")
	}
}

func TestLoadPlainText(t *testing.T) {
	registry, err := NewLoaderRegistry(context.Background())
	if err != nil {
		t.Fatalf("NewLoaderRegistry failed: %v", err)
	}

	file := testFile("notes.txt", "text/plain; charset=utf-8")
	docs, err := registry.Load(context.Background(), file, strings.NewReader("mitochondria are the powerhouse of the cell"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(docs) < 1 {
		t.Fatalf("expected at least one document, got %d", len(docs))
	}

	doc := docs[0]
	if doc.Content != "mitochondria are the powerhouse of the cell" {
		t.Errorf("passthrough content mismatch: %q", doc.Content)
	}
	if doc.ID == "" {
		t.Error("document must get a stable id")
	}
	if doc.MetaData[MetaSourceFileID] != file.ID.String() {
		t.Errorf("source_file_id mismatch: %v", doc.MetaData[MetaSourceFileID])
	}
	if doc.MetaData[MetaSourceFileName] != "notes.txt" {
		t.Errorf("source_file_name mismatch: %v", doc.MetaData[MetaSourceFileName])
	}
	if doc.MetaData[MetaMimeType] != "text/plain" {
		t.Errorf("mime_type should be normalized: %v", doc.MetaData[MetaMimeType])
	}
}

func TestLoadUnsupportedTypeFails(t *testing.T) {
	registry, err := NewLoaderRegistry(context.Background())
	if err != nil {
		t.Fatalf("NewLoaderRegistry failed: %v", err)
	}

	file := testFile("anim.gif", "image/gif")
	_, err = registry.Load(context.Background(), file, strings.NewReader("GIF89a"))
	if !errors.Is(err, ErrNoLoader) {
		t.Fatalf("expected ErrNoLoader, got %v", err)
	}
	if !strings.Contains(err.Error(), "image/gif") {
		t.Errorf("error should name the media type: %v", err)
	}
}
