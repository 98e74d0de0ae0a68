package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Job{},
		&model.File{},
		&model.Chunk{},
		&model.Flashcard{},
		&model.GenerationRecord{},
		&model.Course{},
		&model.Material{},
	))
	return db
}

func TestFlashcardRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewFlashcardRepository(db)
	ctx := context.Background()

	cards := []model.Flashcard{
		{
			JobID:          "job-rt",
			Front:          "What is osmosis?",
			Back:           "Movement of water across a membrane",
			Tags:           model.StringArray{"bio", "membranes"},
			SourceChunkIDs: model.StringArray{"file-1:0", "file-1:1"},
			Position:       0,
		},
		{
			JobID:    "job-rt",
			Front:    "Define diffusion",
			Back:     "Net movement down a concentration gradient",
			Position: 1,
		},
	}

	record := &model.GenerationRecord{
		JobID:   "job-rt",
		Files:   model.FileSummaries{{Name: "notes.txt", Size: 50, ContentType: "text/plain"}},
		Options: model.JSONMap{"topic": "Cells", "maxCards": 5},
	}
	require.NoError(t, repo.SaveDeck(ctx, cards, record))

	got, err := repo.FindByJobID(ctx, "job-rt")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "What is osmosis?", got[0].Front)
	require.Equal(t, "Movement of water across a membrane", got[0].Back)
	require.Equal(t, model.StringArray{"bio", "membranes"}, got[0].Tags)
	require.Equal(t, model.StringArray{"file-1:0", "file-1:1"}, got[0].SourceChunkIDs)
	require.Empty(t, got[1].Tags)

	rec, err := repo.FindGenerationRecord(ctx, "job-rt")
	require.NoError(t, err)
	require.Len(t, rec.Files, 1)
	require.Equal(t, "notes.txt", rec.Files[0].Name)
	require.Equal(t, "Cells", rec.Options["topic"])
}

func TestJobRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	missing, err := repo.FindByJobID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	job := &model.Job{JobID: "job-1", Status: model.JobStatusQueued, Payload: model.JSONMap{"files": []interface{}{"a.txt"}}}
	require.NoError(t, repo.Upsert(ctx, job))

	job.Status = model.JobStatusParsing
	require.NoError(t, repo.Upsert(ctx, job))

	got, err := repo.FindByJobID(ctx, "job-1")
	require.NoError(t, err)
	require.Equal(t, model.JobStatusParsing, got.Status)
	require.NotNil(t, got.Payload["files"])
}

func TestChunkRepositoryOrdersByIndex(t *testing.T) {
	db := newTestDB(t)
	repo := NewChunkRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []model.Chunk{
		{JobID: "job-c", ChunkID: "f:1", Content: "second", ChunkIndex: 1},
		{JobID: "job-c", ChunkID: "f:0", Content: "first", ChunkIndex: 0},
	}))

	chunks, err := repo.FindByJobID(ctx, "job-c")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, "f:0", chunks[0].ChunkID)
	require.Equal(t, "f:1", chunks[1].ChunkID)
}

func TestMaterialModerationFlow(t *testing.T) {
	db := newTestDB(t)
	courseRepo := NewCourseRepository(db)
	materialRepo := NewMaterialRepository(db)
	fileRepo := NewFileRepository(db)
	ctx := context.Background()

	course := &model.Course{Code: "COSC50", Title: "Software Design", Program: "Computer Science"}
	require.NoError(t, courseRepo.Create(ctx, course))

	file := &model.File{JobID: "job-m", UserID: "u1", FileName: "lec1.pdf", ContentType: "application/pdf", Size: 100}
	require.NoError(t, fileRepo.Create(ctx, file))

	material := &model.Material{
		CourseID: course.ID,
		FileID:   file.ID,
		Title:    "Lecture 1 notes",
		Status:   model.ModerationPending,
	}
	require.NoError(t, materialRepo.Create(ctx, material))

	// Pending materials are invisible to the approved listing
	approved, total, err := materialRepo.FindByCourse(ctx, &course.ID, string(model.ModerationApproved), 20, 0)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, approved)

	material.Status = model.ModerationApproved
	require.NoError(t, materialRepo.Update(ctx, material))

	approved, total, err = materialRepo.FindByCourse(ctx, &course.ID, string(model.ModerationApproved), 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Lecture 1 notes", approved[0].Title)
}
