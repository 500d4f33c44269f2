package campaigns

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection     = "users"
	campaignsCollection = "campaigns"
	entriesCollection   = "entries"
)

// firestoreCampaign is the document shape stored for a campaign. The story
// log lives in an `entries` subcollection; entry_count is the sequence
// counter bumped transactionally on every append.
type firestoreCampaign struct {
	ID         string             `firestore:"id"`
	OwnerID    string             `firestore:"owner_id"`
	Title      string             `firestore:"title"`
	Prompt     string             `firestore:"prompt"`
	GameState  campaign.GameState `firestore:"game_state"`
	EntryCount int64              `firestore:"entry_count"`
	CreatedAt  time.Time          `firestore:"created_at"`
	UpdatedAt  time.Time          `firestore:"updated_at"`
}

func (d firestoreCampaign) toCampaign() *campaign.Campaign {
	return &campaign.Campaign{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Prompt:    d.Prompt,
		GameState: d.GameState,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// firestoreRepository implements Repository using Firestore. Documents are
// laid out as users/{owner}/campaigns/{id}, so ownership is part of the
// document path and cross-owner lookups structurally miss.
type firestoreRepository struct {
	client *firestore.Client
}

// FirestoreRepoConfig holds configuration for the Firestore repository.
type FirestoreRepoConfig struct {
	Client *firestore.Client
}

// NewFirestoreRepository creates a Firestore-backed campaign repository.
func NewFirestoreRepository(cfg *FirestoreRepoConfig) Repository {
	if cfg.Client == nil {
		panic("firestore client is required")
	}

	return &firestoreRepository{client: cfg.Client}
}

func (r *firestoreRepository) campaignDoc(ownerID, campaignID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(ownerID).
		Collection(campaignsCollection).Doc(campaignID)
}

// Create stores a new campaign
func (r *firestoreRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	if c == nil {
		return apperrors.InvalidArgument("campaign cannot be nil")
	}
	if c.ID == "" {
		return apperrors.InvalidArgument("campaign ID cannot be empty")
	}
	if c.OwnerID == "" {
		return apperrors.InvalidArgument("campaign owner ID cannot be empty")
	}

	doc := firestoreCampaign{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Title:     c.Title,
		Prompt:    c.Prompt,
		GameState: c.GameState,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if _, err := r.campaignDoc(c.OwnerID, c.ID).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return apperrors.AlreadyExistsf("campaign %s already exists for owner %s", c.ID, c.OwnerID)
		}
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to create campaign")
	}

	return nil
}

// Get retrieves a campaign with its full story log
func (r *firestoreRepository) Get(ctx context.Context, ownerID, campaignID string) (*campaign.Campaign, error) {
	ref := r.campaignDoc(ownerID, campaignID)

	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, r.mapGetError(err, ownerID, campaignID)
	}

	var doc firestoreCampaign
	if err := snap.DataTo(&doc); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to decode campaign document")
	}

	c := doc.toCampaign()

	iter := ref.Collection(entriesCollection).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	c.Story = make([]*campaign.StoryEntry, 0, doc.EntryCount)
	for {
		entrySnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to load story entries")
		}

		var entry campaign.StoryEntry
		if err := entrySnap.DataTo(&entry); err != nil {
			return nil, apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to decode story entry")
		}
		c.Story = append(c.Story, &entry)
	}

	return c, nil
}

// ListByOwner returns all campaigns owned by ownerID, story log omitted
func (r *firestoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]*campaign.Campaign, error) {
	iter := r.client.Collection(usersCollection).Doc(ownerID).
		Collection(campaignsCollection).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	result := make([]*campaign.Campaign, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to list campaigns for owner")
		}

		var doc firestoreCampaign
		if err := snap.DataTo(&doc); err != nil {
			return nil, apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to decode campaign document")
		}
		result = append(result, doc.toCampaign())
	}

	return result, nil
}

// UpdateGameState replaces the stored game state wholesale
func (r *firestoreRepository) UpdateGameState(ctx context.Context, ownerID, campaignID string, state campaign.GameState) error {
	ref := r.campaignDoc(ownerID, campaignID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "game_state", Value: state},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		return r.mapGetError(err, ownerID, campaignID)
	}

	return nil
}

// AppendEntry appends one entry to the campaign's story log. The sequence
// number is taken from the campaign's entry counter inside a transaction,
// so concurrent appends never collide or reorder.
func (r *firestoreRepository) AppendEntry(ctx context.Context, ownerID, campaignID string, entry *campaign.StoryEntry) error {
	if entry == nil {
		return apperrors.InvalidArgument("story entry cannot be nil")
	}

	ref := r.campaignDoc(ownerID, campaignID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var doc firestoreCampaign
		if err := snap.DataTo(&doc); err != nil {
			return err
		}

		entry.Seq = doc.EntryCount
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now().UTC()
		}

		entryRef := ref.Collection(entriesCollection).Doc(fmt.Sprintf("%012d", entry.Seq))
		if err := tx.Create(entryRef, entry); err != nil {
			return err
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "entry_count", Value: doc.EntryCount + 1},
			{Path: "updated_at", Value: entry.CreatedAt},
		})
	})
	if err != nil {
		return r.mapGetError(err, ownerID, campaignID)
	}

	return nil
}

// Delete removes a campaign and its story log
func (r *firestoreRepository) Delete(ctx context.Context, ownerID, campaignID string) error {
	ref := r.campaignDoc(ownerID, campaignID)

	if _, err := ref.Get(ctx); err != nil {
		return r.mapGetError(err, ownerID, campaignID)
	}

	// Entries first; subcollections are not deleted with their parent
	iter := ref.Collection(entriesCollection).Documents(ctx)
	defer iter.Stop()
	for {
		entrySnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to enumerate story entries")
		}
		if _, err := entrySnap.Ref.Delete(ctx); err != nil {
			return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to delete story entry")
		}
	}

	if _, err := ref.Delete(ctx); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to delete campaign")
	}

	return nil
}

func (r *firestoreRepository) mapGetError(err error, ownerID, campaignID string) error {
	if status.Code(err) == codes.NotFound {
		return apperrors.NotFoundf("campaign not found: %s", campaignID).
			WithMeta("owner_id", ownerID)
	}
	return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "firestore operation failed").
		WithMeta("owner_id", ownerID).
		WithMeta("campaign_id", campaignID)
}
