// Package story orchestrates campaigns: persistence on one side, the
// narrator on the other. It owns the turn loop (player input in,
// narration and state updates out) and is the only writer of story
// entries.
package story

//go:generate mockgen -destination=mock/mock_service.go -package=mockstory -source=service.go

import (
	"context"
	"strings"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/narrator"
	"github.com/fableforge/fableforge/internal/repositories/campaigns"
	"github.com/fableforge/fableforge/internal/uuid"
	"go.uber.org/zap"
)

// CreateCampaignInput contains data for creating a campaign.
type CreateCampaignInput struct {
	OwnerID string
	Title   string
	Prompt  string
}

// StartStoryInput contains data for generating a campaign's opening.
type StartStoryInput struct {
	OwnerID         string
	CampaignID      string
	SelectedPrompts []string
}

// ContinueStoryInput contains data for one player turn.
type ContinueStoryInput struct {
	OwnerID    string
	CampaignID string
	UserInput  string
	Mode       campaign.EntryMode
}

// AddStoryEntryInput contains data for appending a raw entry without
// invoking the narrator.
type AddStoryEntryInput struct {
	OwnerID    string
	CampaignID string
	Actor      campaign.Actor
	Text       string
	Mode       campaign.EntryMode
}

// TurnResult is what one narrated turn produced.
type TurnResult struct {
	// PlayerEntry is the player's appended entry, nil for the opening turn
	PlayerEntry *campaign.StoryEntry

	// NarratorEntry is the narration appended in response
	NarratorEntry *campaign.StoryEntry

	// GameState is the campaign's state after merging the narrator's updates
	GameState campaign.GameState
}

// Service manages campaigns and their story turns.
type Service interface {
	// CreateCampaign creates a new campaign for the owner.
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*campaign.Campaign, error)

	// GetCampaign retrieves a campaign with its full story log.
	GetCampaign(ctx context.Context, ownerID, campaignID string) (*campaign.Campaign, error)

	// ListCampaigns returns the owner's campaigns, story logs omitted.
	ListCampaigns(ctx context.Context, ownerID string) ([]*campaign.Campaign, error)

	// DeleteCampaign removes a campaign and its story log.
	DeleteCampaign(ctx context.Context, ownerID, campaignID string) error

	// UpdateGameState replaces the campaign's game state wholesale.
	UpdateGameState(ctx context.Context, ownerID, campaignID string, state campaign.GameState) error

	// AddStoryEntry appends an entry directly, without narration.
	AddStoryEntry(ctx context.Context, input *AddStoryEntryInput) (*campaign.StoryEntry, error)

	// StartStory generates and appends the campaign's opening narration.
	// Fails with already_exists if the story has already started.
	StartStory(ctx context.Context, input *StartStoryInput) (*TurnResult, error)

	// ContinueStory runs one turn: append the player's entry, narrate the
	// response, append it, and merge the narrator's state updates.
	ContinueStory(ctx context.Context, input *ContinueStoryInput) (*TurnResult, error)
}

// ServiceConfig holds the dependencies for the story service.
type ServiceConfig struct {
	Repository    campaigns.Repository
	Narrator      narrator.Service
	UUIDGenerator uuid.Generator
	Logger        *zap.Logger
}

type service struct {
	repository    campaigns.Repository
	narrator      narrator.Service
	uuidGenerator uuid.Generator
	log           *zap.Logger
}

// NewService creates a story service.
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Narrator == nil {
		panic("narrator is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		narrator:      cfg.Narrator,
		uuidGenerator: cfg.UUIDGenerator,
		log:           cfg.Logger,
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = &uuid.GoogleUUIDGenerator{}
	}
	if svc.log == nil {
		svc.log = zap.NewNop()
	}

	return svc
}

func (s *service) CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*campaign.Campaign, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" {
		return nil, apperrors.InvalidArgument("owner ID is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.InvalidArgument("title is required")
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, apperrors.InvalidArgument("prompt is required")
	}

	c := campaign.New(s.uuidGenerator.New(), input.OwnerID, input.Title, input.Prompt)
	if err := s.repository.Create(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, "failed to create campaign").
			WithMeta("owner_id", input.OwnerID)
	}

	s.log.Info("campaign created",
		zap.String("campaign_id", c.ID),
		zap.String("owner_id", c.OwnerID))

	return c, nil
}

func (s *service) GetCampaign(ctx context.Context, ownerID, campaignID string) (*campaign.Campaign, error) {
	if ownerID == "" || campaignID == "" {
		return nil, apperrors.InvalidArgument("owner ID and campaign ID are required")
	}

	return s.repository.Get(ctx, ownerID, campaignID)
}

func (s *service) ListCampaigns(ctx context.Context, ownerID string) ([]*campaign.Campaign, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidArgument("owner ID is required")
	}

	return s.repository.ListByOwner(ctx, ownerID)
}

func (s *service) DeleteCampaign(ctx context.Context, ownerID, campaignID string) error {
	if ownerID == "" || campaignID == "" {
		return apperrors.InvalidArgument("owner ID and campaign ID are required")
	}

	if err := s.repository.Delete(ctx, ownerID, campaignID); err != nil {
		return err
	}

	s.log.Info("campaign deleted",
		zap.String("campaign_id", campaignID),
		zap.String("owner_id", ownerID))
	return nil
}

func (s *service) UpdateGameState(ctx context.Context, ownerID, campaignID string, state campaign.GameState) error {
	if ownerID == "" || campaignID == "" {
		return apperrors.InvalidArgument("owner ID and campaign ID are required")
	}
	if state == nil {
		return apperrors.InvalidArgument("state cannot be nil")
	}

	return s.repository.UpdateGameState(ctx, ownerID, campaignID, state)
}

func (s *service) AddStoryEntry(ctx context.Context, input *AddStoryEntryInput) (*campaign.StoryEntry, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" || input.CampaignID == "" {
		return nil, apperrors.InvalidArgument("owner ID and campaign ID are required")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.InvalidArgument("text is required")
	}
	if !input.Mode.IsValid() {
		return nil, apperrors.InvalidArgumentf("unknown entry mode %q", string(input.Mode))
	}

	entry := campaign.NewStoryEntry(input.Actor, input.Text, input.Mode)
	if err := s.repository.AppendEntry(ctx, input.OwnerID, input.CampaignID, entry); err != nil {
		return nil, apperrors.Wrap(err, "failed to append story entry").
			WithMeta("campaign_id", input.CampaignID)
	}

	return entry, nil
}

func (s *service) StartStory(ctx context.Context, input *StartStoryInput) (*TurnResult, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" || input.CampaignID == "" {
		return nil, apperrors.InvalidArgument("owner ID and campaign ID are required")
	}

	c, err := s.repository.Get(ctx, input.OwnerID, input.CampaignID)
	if err != nil {
		return nil, err
	}
	if len(c.Story) > 0 {
		return nil, apperrors.AlreadyExists("story has already started")
	}

	resp, err := s.narrator.GetInitialStory(ctx, &narrator.InitialStoryInput{
		Prompt:          c.Prompt,
		SelectedPrompts: input.SelectedPrompts,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate opening").
			WithMeta("campaign_id", c.ID)
	}

	return s.applyNarration(ctx, c, nil, resp)
}

func (s *service) ContinueStory(ctx context.Context, input *ContinueStoryInput) (*TurnResult, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" || input.CampaignID == "" {
		return nil, apperrors.InvalidArgument("owner ID and campaign ID are required")
	}
	if strings.TrimSpace(input.UserInput) == "" {
		return nil, apperrors.InvalidArgument("user input is required")
	}
	if !input.Mode.IsValid() {
		return nil, apperrors.InvalidArgumentf("unknown entry mode %q", string(input.Mode))
	}

	c, err := s.repository.Get(ctx, input.OwnerID, input.CampaignID)
	if err != nil {
		return nil, err
	}

	playerEntry := campaign.NewStoryEntry(campaign.ActorPlayer, input.UserInput, input.Mode)
	if err := s.repository.AppendEntry(ctx, c.OwnerID, c.ID, playerEntry); err != nil {
		return nil, apperrors.Wrap(err, "failed to append player entry").
			WithMeta("campaign_id", c.ID)
	}

	resp, err := s.narrator.ContinueStory(ctx, &narrator.ContinueStoryInput{
		UserInput: input.UserInput,
		Mode:      input.Mode,
		Context:   append(c.Story, playerEntry),
		GameState: c.GameState,
	})
	if err != nil {
		// The player's entry stays: the turn can be retried and the
		// narrator will see it in context.
		return nil, apperrors.Wrap(err, "failed to generate continuation").
			WithMeta("campaign_id", c.ID)
	}

	return s.applyNarration(ctx, c, playerEntry, resp)
}

// applyNarration appends the narrator's entry and merges its state updates
// into the campaign's stored state.
func (s *service) applyNarration(ctx context.Context, c *campaign.Campaign, playerEntry *campaign.StoryEntry, resp *narrator.Response) (*TurnResult, error) {
	narratorEntry := campaign.NewStoryEntry(campaign.ActorNarrator, resp.NarrativeText, campaign.ModeStory)
	if err := s.repository.AppendEntry(ctx, c.OwnerID, c.ID, narratorEntry); err != nil {
		return nil, apperrors.Wrap(err, "failed to append narration").
			WithMeta("campaign_id", c.ID)
	}

	state := c.GameState.Clone()
	if len(resp.StateUpdates) > 0 {
		state = c.GameState.Merge(resp.StateUpdates)
		if err := s.repository.UpdateGameState(ctx, c.OwnerID, c.ID, state); err != nil {
			return nil, apperrors.Wrap(err, "failed to update game state").
				WithMeta("campaign_id", c.ID)
		}
	}

	s.log.Info("turn completed",
		zap.String("campaign_id", c.ID),
		zap.Int64("seq", narratorEntry.Seq))

	return &TurnResult{
		PlayerEntry:   playerEntry,
		NarratorEntry: narratorEntry,
		GameState:     state,
	}, nil
}
