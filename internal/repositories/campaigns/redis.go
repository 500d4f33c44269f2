package campaigns

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// Key patterns
	campaignKeyFmt       = "campaign:%s:%s"         // owner, campaign
	entriesKeyFmt        = "campaign:%s:%s:entries" // owner, campaign
	ownerCampaignsKeyFmt = "owner:%s:campaigns"
)

// campaignRecord is the JSON shape stored under the campaign key. The
// story log lives in a separate Redis list so appends never rewrite the
// whole document.
type campaignRecord struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"owner_id"`
	Title     string             `json:"title"`
	Prompt    string             `json:"prompt"`
	GameState campaign.GameState `json:"game_state"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func recordFromCampaign(c *campaign.Campaign) campaignRecord {
	return campaignRecord{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Title:     c.Title,
		Prompt:    c.Prompt,
		GameState: c.GameState,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r campaignRecord) toCampaign() *campaign.Campaign {
	return &campaign.Campaign{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Title:     r.Title,
		Prompt:    r.Prompt,
		GameState: r.GameState,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// redisRepository implements Repository using Redis.
type redisRepository struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed campaign repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{client: cfg.Client}
}

func campaignKey(ownerID, campaignID string) string {
	return fmt.Sprintf(campaignKeyFmt, ownerID, campaignID)
}

func entriesKey(ownerID, campaignID string) string {
	return fmt.Sprintf(entriesKeyFmt, ownerID, campaignID)
}

func ownerCampaignsKey(ownerID string) string {
	return fmt.Sprintf(ownerCampaignsKeyFmt, ownerID)
}

// Create stores a new campaign
func (r *redisRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	if c == nil {
		return apperrors.InvalidArgument("campaign cannot be nil")
	}
	if c.ID == "" {
		return apperrors.InvalidArgument("campaign ID cannot be empty")
	}
	if c.OwnerID == "" {
		return apperrors.InvalidArgument("campaign owner ID cannot be empty")
	}

	key := campaignKey(c.OwnerID, c.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to check campaign existence")
	}
	if exists > 0 {
		return apperrors.AlreadyExistsf("campaign %s already exists for owner %s", c.ID, c.OwnerID)
	}

	data, err := json.Marshal(recordFromCampaign(c))
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to serialize campaign")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, string(data), 0)
	pipe.SAdd(ctx, ownerCampaignsKey(c.OwnerID), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to create campaign")
	}

	return nil
}

// Get retrieves a campaign with its full story log
func (r *redisRepository) Get(ctx context.Context, ownerID, campaignID string) (*campaign.Campaign, error) {
	record, err := r.getRecord(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, entriesKey(ownerID, campaignID), 0, -1).Result()
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to load story entries")
	}

	c := record.toCampaign()
	c.Story = make([]*campaign.StoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry campaign.StoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to deserialize story entry")
		}
		c.Story = append(c.Story, &entry)
	}

	return c, nil
}

// ListByOwner returns all campaigns owned by ownerID, story log omitted
func (r *redisRepository) ListByOwner(ctx context.Context, ownerID string) ([]*campaign.Campaign, error) {
	ids, err := r.client.SMembers(ctx, ownerCampaignsKey(ownerID)).Result()
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to list campaigns for owner")
	}

	result := make([]*campaign.Campaign, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = campaignKey(ownerID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to load campaigns")
	}

	for _, val := range values {
		if val == nil {
			// Deleted campaign still in the index; skipped lazily
			continue
		}
		data, ok := val.(string)
		if !ok {
			continue
		}

		var record campaignRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			continue
		}
		result = append(result, record.toCampaign())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// UpdateGameState replaces the stored game state wholesale
func (r *redisRepository) UpdateGameState(ctx context.Context, ownerID, campaignID string, state campaign.GameState) error {
	record, err := r.getRecord(ctx, ownerID, campaignID)
	if err != nil {
		return err
	}

	record.GameState = state
	record.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to serialize campaign")
	}

	if err := r.client.Set(ctx, campaignKey(ownerID, campaignID), string(data), 0).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to update game state")
	}

	return nil
}

// AppendEntry appends one entry to the campaign's story log
func (r *redisRepository) AppendEntry(ctx context.Context, ownerID, campaignID string, entry *campaign.StoryEntry) error {
	if entry == nil {
		return apperrors.InvalidArgument("story entry cannot be nil")
	}

	if _, err := r.getRecord(ctx, ownerID, campaignID); err != nil {
		return err
	}

	listKey := entriesKey(ownerID, campaignID)

	seq, err := r.client.LLen(ctx, listKey).Result()
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to determine next sequence number")
	}

	entry.Seq = seq
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to serialize story entry")
	}

	if err := r.client.RPush(ctx, listKey, string(data)).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to append story entry")
	}

	return nil
}

// Delete removes a campaign and its story log
func (r *redisRepository) Delete(ctx context.Context, ownerID, campaignID string) error {
	if _, err := r.getRecord(ctx, ownerID, campaignID); err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, campaignKey(ownerID, campaignID))
	pipe.Del(ctx, entriesKey(ownerID, campaignID))
	pipe.SRem(ctx, ownerCampaignsKey(ownerID), campaignID)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to delete campaign")
	}

	return nil
}

func (r *redisRepository) getRecord(ctx context.Context, ownerID, campaignID string) (*campaignRecord, error) {
	data, err := r.client.Get(ctx, campaignKey(ownerID, campaignID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("campaign not found: %s", campaignID).
				WithMeta("owner_id", ownerID)
		}
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to get campaign")
	}

	var record campaignRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeInternal, "failed to deserialize campaign")
	}

	return &record, nil
}
