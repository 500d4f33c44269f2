package campaigns

import (
	"context"
	"sort"
	"sync"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage. It is
// the persistence double for mocked mode: each instance starts empty and
// shares nothing, so two test cases never observe each other's data.
type inMemoryRepository struct {
	mu sync.RWMutex
	// ownerID -> campaignID -> campaign
	byOwner map[string]map[string]*campaign.Campaign
}

// NewInMemoryRepository creates an empty in-memory campaign repository.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		byOwner: make(map[string]map[string]*campaign.Campaign),
	}
}

// Create stores a new campaign
func (r *inMemoryRepository) Create(_ context.Context, c *campaign.Campaign) error {
	if c == nil {
		return apperrors.InvalidArgument("campaign cannot be nil")
	}
	if c.ID == "" {
		return apperrors.InvalidArgument("campaign ID cannot be empty")
	}
	if c.OwnerID == "" {
		return apperrors.InvalidArgument("campaign owner ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owned := r.byOwner[c.OwnerID]
	if owned == nil {
		owned = make(map[string]*campaign.Campaign)
		r.byOwner[c.OwnerID] = owned
	}

	if _, exists := owned[c.ID]; exists {
		return apperrors.AlreadyExistsf("campaign %s already exists for owner %s", c.ID, c.OwnerID)
	}

	// Store a clone so later caller mutations never leak in
	owned[c.ID] = c.Clone()
	return nil
}

// Get retrieves a campaign with its full story log
func (r *inMemoryRepository) Get(_ context.Context, ownerID, campaignID string) (*campaign.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, err := r.lookup(ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	return stored.Clone(), nil
}

// ListByOwner returns all campaigns owned by ownerID, story log omitted
func (r *inMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*campaign.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*campaign.Campaign, 0, len(r.byOwner[ownerID]))
	for _, stored := range r.byOwner[ownerID] {
		summary := stored.Clone()
		summary.Story = nil
		result = append(result, summary)
	}

	// Map iteration order is random; stable output keeps callers simple
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// UpdateGameState replaces the stored game state wholesale
func (r *inMemoryRepository) UpdateGameState(_ context.Context, ownerID, campaignID string, state campaign.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.lookup(ownerID, campaignID)
	if err != nil {
		return err
	}

	stored.GameState = state.Clone()
	return nil
}

// AppendEntry appends one entry to the campaign's story log
func (r *inMemoryRepository) AppendEntry(_ context.Context, ownerID, campaignID string, entry *campaign.StoryEntry) error {
	if entry == nil {
		return apperrors.InvalidArgument("story entry cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.lookup(ownerID, campaignID)
	if err != nil {
		return err
	}

	appended := stored.AppendEntry(entry.Actor, entry.Text, entry.Mode)
	entry.Seq = appended.Seq
	entry.CreatedAt = appended.CreatedAt
	return nil
}

// Delete removes a campaign and its story log
func (r *inMemoryRepository) Delete(_ context.Context, ownerID, campaignID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(ownerID, campaignID); err != nil {
		return err
	}

	delete(r.byOwner[ownerID], campaignID)
	return nil
}

// lookup finds a stored campaign; callers hold the lock.
func (r *inMemoryRepository) lookup(ownerID, campaignID string) (*campaign.Campaign, error) {
	stored, exists := r.byOwner[ownerID][campaignID]
	if !exists {
		return nil, apperrors.NotFoundf("campaign not found: %s", campaignID).
			WithMeta("owner_id", ownerID)
	}
	return stored, nil
}
