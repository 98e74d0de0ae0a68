// Package status owns the job lifecycle state machine. A job moves
// queued -> parsing -> generating -> complete, with failed reachable
// from every non-terminal state. Transitions outside the table are
// programming errors in the caller and fail loudly.
package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/narteyr/flashcards/internal/model"
)

var (
	ErrIllegalInitialTransition = errors.New("illegal initial transition")
	ErrIllegalTransition        = errors.New("illegal transition")
	ErrUnknownStatus            = errors.New("unknown status")
)

// Record is one job's persisted lifecycle state.
type Record struct {
	JobID     string          `json:"job_id"`
	Status    model.JobStatus `json:"status"`
	Payload   model.JSONMap   `json:"payload,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store persists job records. Get returns nil, nil when no record
// exists for the job.
type Store interface {
	Get(ctx context.Context, jobID string) (*Record, error)
	Put(ctx context.Context, rec *Record) error
}

var transitions = map[model.JobStatus][]model.JobStatus{
	model.JobStatusQueued:     {model.JobStatusParsing, model.JobStatusFailed},
	model.JobStatusParsing:    {model.JobStatusGenerating, model.JobStatusFailed},
	model.JobStatusGenerating: {model.JobStatusComplete, model.JobStatusFailed},
	model.JobStatusComplete:   {},
	model.JobStatusFailed:     {},
}

// Tracker validates and applies lifecycle transitions. Check-then-set
// is not locked across the store: a single writer per job is assumed.
type Tracker struct {
	store Store
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Update moves the job to next and merges payload into its recorded
// state. The first transition for a job must be into queued.
func (t *Tracker) Update(ctx context.Context, jobID string, next model.JobStatus, payload map[string]interface{}) error {
	if _, known := transitions[next]; !known {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}

	rec, err := t.store.Get(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}

	if rec == nil {
		if next != model.JobStatusQueued {
			return fmt.Errorf("%w: job %s has no record, cannot start at %q", ErrIllegalInitialTransition, jobID, next)
		}
		rec = &Record{JobID: jobID, Payload: model.JSONMap{}}
	} else if !allowedNext(rec.Status, next) {
		return fmt.Errorf("%w: job %s cannot move %q -> %q", ErrIllegalTransition, jobID, rec.Status, next)
	}

	rec.Status = next
	rec.UpdatedAt = time.Now()
	if rec.Payload == nil {
		rec.Payload = model.JSONMap{}
	}
	for k, v := range payload {
		rec.Payload[k] = v
	}

	if err := t.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("save job %s: %w", jobID, err)
	}
	return nil
}

// Get returns the job's current record, or nil when none exists.
func (t *Tracker) Get(ctx context.Context, jobID string) (*Record, error) {
	return t.store.Get(ctx, jobID)
}

func allowedNext(current, next model.JobStatus) bool {
	for _, s := range transitions[current] {
		if s == next {
			return true
		}
	}
	return false
}
