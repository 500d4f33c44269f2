// Package capture records live narrator traffic as JSONL transcripts so
// real responses can be studied and turned into better canned fixtures.
package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fableforge/fableforge/internal/narrator"
	"go.uber.org/zap"
)

// Record is one line of a capture transcript.
type Record struct {
	Timestamp time.Time `json:"ts"`
	Operation string    `json:"op"`
	Input     any       `json:"input"`
	Output    any       `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// RecordingNarrator wraps a narrator and appends a transcript record for
// every call, pass or fail. Recording failures are logged, never returned,
// so capture mode cannot change the outcome of a run.
type RecordingNarrator struct {
	inner narrator.Service
	log   *zap.Logger

	mu sync.Mutex
	w  io.Writer
}

// NewRecordingNarrator wraps inner, writing transcript lines to w.
func NewRecordingNarrator(inner narrator.Service, w io.Writer, log *zap.Logger) *RecordingNarrator {
	if inner == nil {
		panic("capture: inner narrator is required")
	}
	if w == nil {
		panic("capture: writer is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &RecordingNarrator{inner: inner, w: w, log: log}
}

// OpenTranscript creates a timestamped JSONL file under dir, creating the
// directory if needed. The caller owns the file and must Close it.
func OpenTranscript(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create capture dir: %w", err)
	}

	name := fmt.Sprintf("narrator-%s.jsonl", time.Now().UTC().Format("20060102-150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	return f, nil
}

// GetInitialStory delegates and records the exchange.
func (r *RecordingNarrator) GetInitialStory(ctx context.Context, input *narrator.InitialStoryInput) (*narrator.Response, error) {
	resp, err := r.inner.GetInitialStory(ctx, input)
	r.record("get_initial_story", input, resp, err)
	return resp, err
}

// ContinueStory delegates and records the exchange.
func (r *RecordingNarrator) ContinueStory(ctx context.Context, input *narrator.ContinueStoryInput) (*narrator.Response, error) {
	resp, err := r.inner.ContinueStory(ctx, input)
	r.record("continue_story", input, resp, err)
	return resp, err
}

func (r *RecordingNarrator) record(op string, input, output any, callErr error) {
	rec := Record{
		Timestamp: time.Now().UTC(),
		Operation: op,
		Input:     input,
		Output:    output,
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		r.log.Warn("failed to encode capture record", zap.String("op", op), zap.Error(err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write(append(line, '\n')); err != nil {
		r.log.Warn("failed to write capture record", zap.String("op", op), zap.Error(err))
	}
}
