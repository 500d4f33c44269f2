// Package guard contains the safety rails for running against live
// backends: a hard cap on generation calls, isolated resource naming,
// and guaranteed cleanup of everything a run creates.
package guard

import (
	"context"
	"sync"

	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/narrator"
)

// LimitedNarrator wraps a narrator and enforces a hard cap on the total
// number of generation calls. Once the cap is reached, every further call
// fails before reaching the wrapped service, so a runaway loop cannot
// burn through a paid API.
type LimitedNarrator struct {
	inner narrator.Service
	limit int

	mu    sync.Mutex
	calls int
}

// NewLimitedNarrator wraps inner with a call cap. Limit must be at least 1.
func NewLimitedNarrator(inner narrator.Service, limit int) *LimitedNarrator {
	if inner == nil {
		panic("guard: inner narrator is required")
	}
	if limit < 1 {
		panic("guard: call limit must be at least 1")
	}

	return &LimitedNarrator{inner: inner, limit: limit}
}

// Calls returns how many calls have been admitted so far.
func (l *LimitedNarrator) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// GetInitialStory delegates if the cap allows another call.
func (l *LimitedNarrator) GetInitialStory(ctx context.Context, input *narrator.InitialStoryInput) (*narrator.Response, error) {
	if err := l.admit(); err != nil {
		return nil, err
	}
	return l.inner.GetInitialStory(ctx, input)
}

// ContinueStory delegates if the cap allows another call.
func (l *LimitedNarrator) ContinueStory(ctx context.Context, input *narrator.ContinueStoryInput) (*narrator.Response, error) {
	if err := l.admit(); err != nil {
		return nil, err
	}
	return l.inner.ContinueStory(ctx, input)
}

// admit counts a call against the cap. Failed admissions do not consume
// budget.
func (l *LimitedNarrator) admit() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.calls >= l.limit {
		return apperrors.ResourceExhaustedf("generation call limit of %d reached", l.limit)
	}

	l.calls++
	return nil
}
