// Package narrator defines the generative storytelling service and its
// implementations: a live Gemini-backed narrator and a deterministic
// in-memory double. Both emit the same Response shape and the same error
// categories, so callers cannot tell them apart structurally.
package narrator

//go:generate mockgen -destination=mock/mock_service.go -package=mocknarrator -source=narrator.go

import (
	"context"

	"github.com/fableforge/fableforge/internal/domain/campaign"
)

// Service produces narrative text for a campaign.
type Service interface {
	// GetInitialStory produces the opening narration for a new campaign.
	GetInitialStory(ctx context.Context, input *InitialStoryInput) (*Response, error)

	// ContinueStory produces the next narration given the player's input
	// and the campaign so far.
	ContinueStory(ctx context.Context, input *ContinueStoryInput) (*Response, error)
}

// InitialStoryInput contains data for the opening narration.
type InitialStoryInput struct {
	// Prompt is the campaign premise written by the user
	Prompt string

	// SelectedPrompts are optional preset themes layered on the premise
	SelectedPrompts []string
}

// ContinueStoryInput contains data for a story continuation.
type ContinueStoryInput struct {
	// UserInput is what the player said or did
	UserInput string

	// Mode is how the input should be interpreted (say, do, story)
	Mode campaign.EntryMode

	// Context is the story log so far, oldest first
	Context []*campaign.StoryEntry

	// GameState is the campaign's current opaque state
	GameState campaign.GameState
}

// Response is the narrator's output: the narrative text plus any
// structured updates to apply to the game state.
type Response struct {
	NarrativeText string             `json:"narrative_text"`
	StateUpdates  campaign.GameState `json:"state_updates"`
}
