package capture_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fableforge/fableforge/internal/capture"
	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/narrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNarrator struct {
	resp *narrator.Response
	err  error
}

func (s *stubNarrator) GetInitialStory(_ context.Context, _ *narrator.InitialStoryInput) (*narrator.Response, error) {
	return s.resp, s.err
}

func (s *stubNarrator) ContinueStory(_ context.Context, _ *narrator.ContinueStoryInput) (*narrator.Response, error) {
	return s.resp, s.err
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []capture.Record {
	t.Helper()
	var records []capture.Record
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var rec capture.Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestRecorderWritesOneLinePerCall(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	inner := &stubNarrator{resp: &narrator.Response{NarrativeText: "you wake up"}}
	rec := capture.NewRecordingNarrator(inner, &buf, zap.NewNop())

	resp, err := rec.GetInitialStory(ctx, &narrator.InitialStoryInput{Prompt: "a quest"})
	require.NoError(t, err)
	assert.Equal(t, "you wake up", resp.NarrativeText)

	_, err = rec.ContinueStory(ctx, &narrator.ContinueStoryInput{UserInput: "look around", Mode: campaign.ModeDo})
	require.NoError(t, err)

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "get_initial_story", records[0].Operation)
	assert.Equal(t, "continue_story", records[1].Operation)
	assert.Empty(t, records[0].Error)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestRecorderPreservesErrors(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	inner := &stubNarrator{err: apperrors.Unavailable("backend down")}
	rec := capture.NewRecordingNarrator(inner, &buf, zap.NewNop())

	_, err := rec.ContinueStory(ctx, &narrator.ContinueStoryInput{UserInput: "x", Mode: campaign.ModeSay})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Error, "backend down")
}

func TestOpenTranscriptCreatesDirAndFile(t *testing.T) {
	dir := t.TempDir()

	f, err := capture.OpenTranscript(dir + "/captures")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Contains(t, f.Name(), "narrator-")
	assert.Contains(t, f.Name(), ".jsonl")
}
