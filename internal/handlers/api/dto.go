package api

import (
	"github.com/fableforge/fableforge/internal/domain/campaign"
	"github.com/fableforge/fableforge/internal/services/story"
)

type createCampaignRequest struct {
	Title  string `json:"title" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
}

type updateStateRequest struct {
	GameState campaign.GameState `json:"game_state" binding:"required"`
}

type addEntryRequest struct {
	Actor string `json:"actor" binding:"required"`
	Text  string `json:"text" binding:"required"`
	Mode  string `json:"mode" binding:"required"`
}

type startStoryRequest struct {
	SelectedPrompts []string `json:"selected_prompts"`
}

type continueStoryRequest struct {
	UserInput string `json:"user_input" binding:"required"`
	Mode      string `json:"mode" binding:"required"`
}

type turnResponse struct {
	PlayerEntry   *campaign.StoryEntry `json:"player_entry,omitempty"`
	NarratorEntry *campaign.StoryEntry `json:"narrator_entry"`
	GameState     campaign.GameState   `json:"game_state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newTurnResponse(result *story.TurnResult) turnResponse {
	return turnResponse{
		PlayerEntry:   result.PlayerEntry,
		NarratorEntry: result.NarratorEntry,
		GameState:     result.GameState,
	}
}
