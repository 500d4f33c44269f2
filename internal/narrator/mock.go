package narrator

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
)

// Canned narration templates. Selection is by input hash, so the same
// inputs always produce the same response.
var openingTemplates = []string{
	"The tale begins: %s. A cold wind carries the first hints of what is to come.",
	"So it starts: %s. Somewhere beyond the lantern light, something stirs.",
	"Your story opens here: %s. The road ahead is unmarked on any map.",
}

var continuationTemplates = map[campaign.EntryMode][]string{
	campaign.ModeSay: {
		"Your words hang in the air: \"%s\". A measured reply comes from the shadows.",
		"\"%s\", you say. The answer arrives slower than you would like.",
	},
	campaign.ModeDo: {
		"You attempt it: %s. The outcome is not entirely what you intended.",
		"Acting quickly, you %s. The world shifts around the consequences.",
	},
	campaign.ModeStory: {
		"The narration continues: %s. Events begin to fold into one another.",
		"Meanwhile, %s. The threads of the story pull tighter.",
	},
}

// MockConfig configures the narrator double.
type MockConfig struct {
	// ErrorRate in [0, 1) fails a stable, hash-selected fraction of
	// inputs with an unavailable error, for exercising error paths.
	// Zero (the default) never fails.
	ErrorRate float64
}

// mockService is the generation double: deterministic templated output,
// no network, never fails unless fault injection is configured.
type mockService struct {
	errorRate float64
}

// NewMock creates a narrator double with default settings.
func NewMock() Service {
	return NewMockWithConfig(&MockConfig{})
}

// NewMockWithConfig creates a narrator double with the given settings.
func NewMockWithConfig(cfg *MockConfig) Service {
	if cfg == nil {
		cfg = &MockConfig{}
	}

	return &mockService{errorRate: cfg.ErrorRate}
}

// GetInitialStory produces a canned opening, deterministic per input
func (s *mockService) GetInitialStory(_ context.Context, input *InitialStoryInput) (*Response, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}

	h := hashInputs(append([]string{input.Prompt}, input.SelectedPrompts...)...)
	if err := s.maybeInjectFault(h); err != nil {
		return nil, err
	}

	template := openingTemplates[h%uint64(len(openingTemplates))]
	narrative := fmt.Sprintf(template, summarize(input.Prompt))

	return newMockResponse(narrative, campaign.GameState{
		"scene": "opening",
		"turn":  1,
	}), nil
}

// ContinueStory produces a canned continuation, deterministic per input
func (s *mockService) ContinueStory(_ context.Context, input *ContinueStoryInput) (*Response, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}

	mode := input.Mode
	if !mode.IsValid() {
		return nil, apperrors.InvalidArgumentf("unknown entry mode %q", string(mode))
	}

	h := hashInputs(input.UserInput, string(mode), fmt.Sprintf("%d", len(input.Context)))
	if err := s.maybeInjectFault(h); err != nil {
		return nil, err
	}

	templates := continuationTemplates[mode]
	template := templates[h%uint64(len(templates))]
	narrative := fmt.Sprintf(template, summarize(input.UserInput))

	return newMockResponse(narrative, campaign.GameState{
		"turn":        len(input.Context) + 1,
		"last_action": string(mode),
	}), nil
}

// newMockResponse builds a response with the same external shape the live
// narrator emits.
func newMockResponse(narrativeText string, stateUpdates campaign.GameState) *Response {
	return &Response{
		NarrativeText: narrativeText,
		StateUpdates:  stateUpdates,
	}
}

// maybeInjectFault fails a stable fraction of inputs when fault injection
// is configured. The decision is hash-based, not RNG-based, so a failing
// input fails every run.
func (s *mockService) maybeInjectFault(h uint64) error {
	if s.errorRate <= 0 {
		return nil
	}

	if float64(h%1000)/1000.0 < s.errorRate {
		return apperrors.Unavailable("injected narrator fault")
	}
	return nil
}

func hashInputs(parts ...string) uint64 {
	h := fnv.New64a()
	for _, part := range parts {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// summarize trims long input so templates stay readable.
func summarize(text string) string {
	trimmed := strings.TrimSpace(text)
	const maxLen = 120
	if len(trimmed) <= maxLen {
		return trimmed
	}
	return trimmed[:maxLen] + "..."
}
