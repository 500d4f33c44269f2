package guard_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/guard"
	"github.com/fableforge/fableforge/internal/narrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingNarrator records how many calls actually reach it.
type countingNarrator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingNarrator) GetInitialStory(_ context.Context, _ *narrator.InitialStoryInput) (*narrator.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return &narrator.Response{NarrativeText: "opening"}, nil
}

func (c *countingNarrator) ContinueStory(_ context.Context, _ *narrator.ContinueStoryInput) (*narrator.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return &narrator.Response{NarrativeText: "continuation"}, nil
}

func (c *countingNarrator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestLimiterBlocksCallsOverTheCap(t *testing.T) {
	ctx := context.Background()
	inner := &countingNarrator{}
	limited := guard.NewLimitedNarrator(inner, 3)

	_, err := limited.GetInitialStory(ctx, &narrator.InitialStoryInput{Prompt: "a"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = limited.ContinueStory(ctx, &narrator.ContinueStoryInput{UserInput: "go", Mode: campaign.ModeDo})
		require.NoError(t, err)
	}

	// Fourth call must fail without reaching the wrapped narrator
	_, err = limited.ContinueStory(ctx, &narrator.ContinueStoryInput{UserInput: "again", Mode: campaign.ModeDo})
	require.Error(t, err)
	assert.True(t, apperrors.IsResourceExhausted(err))
	assert.Equal(t, 3, inner.count())
	assert.Equal(t, 3, limited.Calls())
}

func TestLimiterFailureIsSticky(t *testing.T) {
	ctx := context.Background()
	inner := &countingNarrator{}
	limited := guard.NewLimitedNarrator(inner, 1)

	_, err := limited.GetInitialStory(ctx, &narrator.InitialStoryInput{Prompt: "a"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = limited.GetInitialStory(ctx, &narrator.InitialStoryInput{Prompt: "a"})
		assert.True(t, apperrors.IsResourceExhausted(err))
	}
	assert.Equal(t, 1, inner.count())
}

func TestLimiterIsSafeUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	inner := &countingNarrator{}
	limited := guard.NewLimitedNarrator(inner, 10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = limited.ContinueStory(ctx, &narrator.ContinueStoryInput{UserInput: "x", Mode: campaign.ModeDo})
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, inner.count())
}

func TestLimiterRejectsBadConfig(t *testing.T) {
	assert.Panics(t, func() { guard.NewLimitedNarrator(nil, 3) })
	assert.Panics(t, func() { guard.NewLimitedNarrator(&countingNarrator{}, 0) })
}
