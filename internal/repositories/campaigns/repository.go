package campaigns

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcampaigns -source=repository.go

import (
	"context"

	"github.com/fableforge/fableforge/internal/domain/campaign"
)

// Repository defines the interface for campaign storage. Every
// implementation (in-memory double, Redis, Firestore) satisfies the same
// contract, so the binding can be swapped without touching callers.
//
// Ownership is part of every lookup: operations referencing a campaign
// that does not exist for that owner fail with a not_found error, which is
// distinct from an empty result. Story entries are append-only and always
// returned in insertion order.
type Repository interface {
	// Create stores a new campaign. Fails with already_exists if the
	// (owner, id) pair is taken.
	Create(ctx context.Context, c *campaign.Campaign) error

	// Get retrieves a campaign with its full story log. Fails with
	// not_found if the campaign does not exist or belongs to another owner.
	Get(ctx context.Context, ownerID, campaignID string) (*campaign.Campaign, error)

	// ListByOwner returns all campaigns owned by ownerID, story log
	// omitted. An owner with no campaigns gets an empty slice, not an
	// error.
	ListByOwner(ctx context.Context, ownerID string) ([]*campaign.Campaign, error)

	// UpdateGameState replaces the stored game state wholesale.
	UpdateGameState(ctx context.Context, ownerID, campaignID string, state campaign.GameState) error

	// AppendEntry appends one entry to the campaign's story log, assigning
	// the next sequence number. The entry's Seq field is set on return.
	AppendEntry(ctx context.Context, ownerID, campaignID string, entry *campaign.StoryEntry) error

	// Delete removes a campaign and its story log.
	Delete(ctx context.Context, ownerID, campaignID string) error
}
