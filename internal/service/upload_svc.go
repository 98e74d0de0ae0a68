package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/narteyr/flashcards/internal/generate"
	"github.com/narteyr/flashcards/internal/ingest"
	"github.com/narteyr/flashcards/internal/model"
	"github.com/narteyr/flashcards/internal/repository"
	"github.com/narteyr/flashcards/internal/status"
	"github.com/narteyr/flashcards/internal/storage"
)

// UploadItem is one submitted file.
type UploadItem struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadRequest is one upload-to-flashcards submission.
type UploadRequest struct {
	UserID   string
	Topic    string
	Tone     string
	MaxCards int
	Files    []UploadItem
}

// FileError records why one file was rejected during validation.
type FileError struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// ValidationError means no submitted file survived validation. The
// request never reached the pipeline and no job record was created.
type ValidationError struct {
	Errors []FileError
}

func (e *ValidationError) Error() string {
	return "No valid files to process"
}

// PipelineError wraps a stage failure together with the job identifier
// so clients can still poll the failed job.
type PipelineError struct {
	JobID string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("job %s: %v", e.JobID, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// UploadResult summarizes a completed run.
type UploadResult struct {
	JobID          string      `json:"jobId"`
	FlashcardCount int         `json:"flashcardCount"`
	FileErrors     []FileError `json:"fileErrors,omitempty"`
}

// UploadServiceConfig carries the orchestrator's tunables.
type UploadServiceConfig struct {
	AllowedTypes []string
	MaxFileSize  int64
	MaxCards     int
	Temperature  float32
	LLMTimeout   time.Duration
	// NewJobID is injectable for tests; defaults to a random uuid.
	NewJobID func() string
}

// UploadService drives one upload end to end: validate, store bytes,
// extract text, chunk, generate, persist. Each stage advances the job
// status; any stage error lands the job in failed exactly once.
type UploadService struct {
	backend   storage.Backend
	loaders   *ingest.LoaderRegistry
	chunker   *ingest.Chunker
	generator *generate.Generator
	tracker   *status.Tracker

	fileRepo  *repository.FileRepository
	chunkRepo *repository.ChunkRepository
	cardRepo  *repository.FlashcardRepository

	allowed     map[string]bool
	maxFileSize int64
	maxCards    int
	temperature float32
	llmTimeout  time.Duration
	newJobID    func() string
}

func NewUploadService(
	backend storage.Backend,
	loaders *ingest.LoaderRegistry,
	chunker *ingest.Chunker,
	generator *generate.Generator,
	tracker *status.Tracker,
	fileRepo *repository.FileRepository,
	chunkRepo *repository.ChunkRepository,
	cardRepo *repository.FlashcardRepository,
	cfg UploadServiceConfig,
) *UploadService {
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[ingest.NormalizeMediaType(t)] = true
	}

	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 25 * 1024 * 1024
	}
	if cfg.MaxCards <= 0 {
		cfg.MaxCards = generate.DefaultMaxCards
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 120 * time.Second
	}
	if cfg.NewJobID == nil {
		cfg.NewJobID = uuid.NewString
	}

	return &UploadService{
		backend:     backend,
		loaders:     loaders,
		chunker:     chunker,
		generator:   generator,
		tracker:     tracker,
		fileRepo:    fileRepo,
		chunkRepo:   chunkRepo,
		cardRepo:    cardRepo,
		allowed:     allowed,
		maxFileSize: cfg.MaxFileSize,
		maxCards:    cfg.MaxCards,
		temperature: cfg.Temperature,
		llmTimeout:  cfg.LLMTimeout,
		newJobID:    cfg.NewJobID,
	}
}

// Process runs the pipeline for one request. It returns a
// *ValidationError when nothing was accepted, and a *PipelineError
// (carrying the job identifier) for stage failures after the job was
// created.
func (s *UploadService) Process(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	valid, fileErrors := s.validate(req.Files)
	if len(valid) == 0 {
		return nil, &ValidationError{Errors: fileErrors}
	}

	jobID := s.newJobID()

	queued := make([]map[string]interface{}, 0, len(valid))
	for _, item := range valid {
		queued = append(queued, map[string]interface{}{
			"name":     item.FileName,
			"size":     item.Size,
			"mimeType": ingest.NormalizeMediaType(item.ContentType),
		})
	}
	if err := s.tracker.Update(ctx, jobID, model.JobStatusQueued, map[string]interface{}{"files": queued}); err != nil {
		return nil, &PipelineError{JobID: jobID, Err: err}
	}

	result, err := s.run(ctx, jobID, req, valid)
	if err != nil {
		if ferr := s.tracker.Update(ctx, jobID, model.JobStatusFailed, map[string]interface{}{"error": err.Error()}); ferr != nil {
			log.Printf("[upload] job %s: failed to record failure: %v", jobID, ferr)
		}
		return nil, &PipelineError{JobID: jobID, Err: err}
	}

	result.FileErrors = fileErrors
	return result, nil
}

func (s *UploadService) validate(items []UploadItem) ([]UploadItem, []FileError) {
	var valid []UploadItem
	var fileErrors []FileError

	for _, item := range items {
		mediaType := ingest.NormalizeMediaType(item.ContentType)
		switch {
		case !s.allowed[mediaType]:
			fileErrors = append(fileErrors, FileError{
				FileName: item.FileName,
				Reason:   fmt.Sprintf("unsupported media type %q", mediaType),
			})
		case item.Size > s.maxFileSize:
			fileErrors = append(fileErrors, FileError{
				FileName: item.FileName,
				Reason:   fmt.Sprintf("file exceeds %d byte limit", s.maxFileSize),
			})
		default:
			valid = append(valid, item)
		}
	}

	return valid, fileErrors
}

func (s *UploadService) run(ctx context.Context, jobID string, req UploadRequest, items []UploadItem) (*UploadResult, error) {
	// Persist raw bytes
	files := make([]*model.File, 0, len(items))
	for _, item := range items {
		file, err := s.backend.Save(ctx, storage.SaveInput{
			JobID:       jobID,
			UserID:      req.UserID,
			FileName:    item.FileName,
			ContentType: item.ContentType,
			Size:        item.Size,
			Reader:      item.Reader,
		})
		if err != nil {
			return nil, err
		}
		if err := s.fileRepo.Create(ctx, file); err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	summaries := fileSummaries(files)
	if err := s.tracker.Update(ctx, jobID, model.JobStatusParsing, map[string]interface{}{
		"files": summaries,
	}); err != nil {
		return nil, err
	}

	// Extract text
	var docs []*schema.Document
	for _, file := range files {
		reader, err := s.backend.Open(ctx, file)
		if err != nil {
			return nil, err
		}
		extracted, err := s.loaders.Load(ctx, file, reader)
		reader.Close()
		if err != nil {
			return nil, err
		}
		docs = append(docs, extracted...)
	}

	// Chunk
	chunks, err := s.chunker.Split(ctx, docs)
	if err != nil {
		return nil, err
	}

	if err := s.tracker.Update(ctx, jobID, model.JobStatusGenerating, map[string]interface{}{
		"documentCount": len(docs),
		"chunkCount":    len(chunks),
	}); err != nil {
		return nil, err
	}

	if err := s.chunkRepo.CreateBatch(ctx, chunkRecords(jobID, chunks)); err != nil {
		return nil, err
	}

	// Generate
	opts := generate.Options{
		Topic:       req.Topic,
		Tone:        req.Tone,
		MaxCards:    req.MaxCards,
		Temperature: s.temperature,
	}
	if opts.MaxCards <= 0 {
		opts.MaxCards = s.maxCards
	}

	genCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	cards, err := s.generator.Generate(genCtx, chunks, opts)
	cancel()
	if err != nil {
		return nil, err
	}

	// Persist the deck. Zero cards is a valid, if disappointing,
	// outcome and skips persistence entirely.
	if len(cards) > 0 {
		record := &model.GenerationRecord{
			JobID: jobID,
			Files: summaries,
			Options: model.JSONMap{
				"topic":    opts.Topic,
				"tone":     opts.Tone,
				"maxCards": opts.MaxCards,
			},
		}
		if err := s.cardRepo.SaveDeck(ctx, flashcardRecords(jobID, cards), record); err != nil {
			return nil, err
		}
	}

	if err := s.tracker.Update(ctx, jobID, model.JobStatusComplete, map[string]interface{}{
		"flashcardCount": len(cards),
	}); err != nil {
		return nil, err
	}

	return &UploadResult{JobID: jobID, FlashcardCount: len(cards)}, nil
}

// Job returns the tracked status record for a job, or nil when none
// exists.
func (s *UploadService) Job(ctx context.Context, jobID string) (*status.Record, error) {
	return s.tracker.Get(ctx, jobID)
}

// Deck returns the flashcards generated for a job.
func (s *UploadService) Deck(ctx context.Context, jobID string) ([]model.Flashcard, error) {
	return s.cardRepo.FindByJobID(ctx, jobID)
}

func fileSummaries(files []*model.File) model.FileSummaries {
	out := make(model.FileSummaries, 0, len(files))
	for _, f := range files {
		out = append(out, model.FileSummary{
			ID:          f.ID,
			Name:        f.FileName,
			Size:        f.Size,
			ContentType: f.ContentType,
			StoragePath: f.StoragePath,
		})
	}
	return out
}

func chunkRecords(jobID string, chunks []*schema.Document) []model.Chunk {
	out := make([]model.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		rec := model.Chunk{
			JobID:   jobID,
			ChunkID: chunk.ID,
			Content: chunk.Content,
		}
		if idx, ok := chunk.MetaData[ingest.MetaChunkIndex].(int); ok {
			rec.ChunkIndex = idx
		}
		if src, ok := chunk.MetaData[ingest.MetaSourceFileID].(string); ok {
			if id, err := uuid.Parse(src); err == nil {
				rec.FileID = &id
			}
		}
		rec.Metadata = model.JSONMap{}
		for k, v := range chunk.MetaData {
			rec.Metadata[k] = v
		}
		out = append(out, rec)
	}
	return out
}

func flashcardRecords(jobID string, cards []generate.Card) []model.Flashcard {
	out := make([]model.Flashcard, 0, len(cards))
	for i, card := range cards {
		out = append(out, model.Flashcard{
			JobID:          jobID,
			Front:          card.Front,
			Back:           card.Back,
			Tags:           card.Tags,
			SourceChunkIDs: card.SourceChunkIDs,
			Position:       i,
		})
	}
	return out
}
