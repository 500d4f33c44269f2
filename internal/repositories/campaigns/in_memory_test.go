package campaigns_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/repositories/campaigns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaign(id, ownerID string) *campaign.Campaign {
	return campaign.New(id, ownerID, "Test Campaign", "A test prompt")
}

func TestInMemoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	c := newCampaign("camp-1", "user-1")
	c.AppendEntry(campaign.ActorNarrator, "It begins.", campaign.ModeStory)
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.Get(ctx, "user-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Campaign", got.Title)
	require.Len(t, got.Story, 1)
	assert.Equal(t, "It begins.", got.Story[0].Text)
}

func TestInMemoryCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	require.NoError(t, repo.Create(ctx, newCampaign("camp-1", "user-1")))
	err := repo.Create(ctx, newCampaign("camp-1", "user-1"))

	assert.True(t, apperrors.IsAlreadyExists(err))
}

func TestInMemoryOwnershipCheck(t *testing.T) {
	// A campaign created under one user must be not-found for another.
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	require.NoError(t, repo.Create(ctx, newCampaign("camp-x", "user-b")))

	_, err := repo.Get(ctx, "user-a", "camp-x")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInMemoryListByOwnerEmpty(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	list, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInMemoryListByOwnerOmitsStory(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	c := newCampaign("camp-1", "user-1")
	c.AppendEntry(campaign.ActorNarrator, "Opening.", campaign.ModeStory)
	require.NoError(t, repo.Create(ctx, c))

	list, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Story)
}

func TestInMemoryInstancesAreIsolated(t *testing.T) {
	// Two repository instances never observe each other's data.
	ctx := context.Background()

	repoA := campaigns.NewInMemoryRepository()
	require.NoError(t, repoA.Create(ctx, newCampaign("camp-1", "user-1")))

	repoB := campaigns.NewInMemoryRepository()
	list, err := repoB.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInMemoryAppendOrder(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, newCampaign("camp-1", "user-1")))

	for _, text := range []string{"t1", "t2", "t3"} {
		entry := &campaign.StoryEntry{Actor: campaign.ActorPlayer, Text: text, Mode: campaign.ModeSay}
		require.NoError(t, repo.AppendEntry(ctx, "user-1", "camp-1", entry))
	}

	got, err := repo.Get(ctx, "user-1", "camp-1")
	require.NoError(t, err)
	require.Len(t, got.Story, 3)
	for i, text := range []string{"t1", "t2", "t3"} {
		assert.Equal(t, text, got.Story[i].Text)
		assert.Equal(t, int64(i), got.Story[i].Seq)
	}
}

func TestInMemoryAppendToMissingCampaign(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	entry := &campaign.StoryEntry{Actor: campaign.ActorPlayer, Text: "hello", Mode: campaign.ModeSay}
	err := repo.AppendEntry(ctx, "user-1", "ghost", entry)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInMemoryUpdateGameState(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, newCampaign("camp-1", "user-1")))

	state := campaign.GameState{"hp": 7, "location": "crypt"}
	require.NoError(t, repo.UpdateGameState(ctx, "user-1", "camp-1", state))

	// Full replace, and later caller mutations must not leak in
	state["hp"] = 0
	got, err := repo.Get(ctx, "user-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.GameState["hp"])
	assert.Equal(t, "crypt", got.GameState["location"])
}

func TestInMemoryUpdateGameStateMissing(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	err := repo.UpdateGameState(ctx, "user-1", "ghost", campaign.GameState{})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, newCampaign("camp-1", "user-1")))

	require.NoError(t, repo.Delete(ctx, "user-1", "camp-1"))

	_, err := repo.Get(ctx, "user-1", "camp-1")
	assert.True(t, apperrors.IsNotFound(err))

	err = repo.Delete(ctx, "user-1", "camp-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInMemoryGetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	c := newCampaign("camp-1", "user-1")
	c.GameState = campaign.GameState{"hp": 10}
	require.NoError(t, repo.Create(ctx, c))

	first, err := repo.Get(ctx, "user-1", "camp-1")
	require.NoError(t, err)
	first.Title = "Mutated"
	first.GameState["hp"] = 0

	second, err := repo.Get(ctx, "user-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Campaign", second.Title)
	assert.Equal(t, 10, second.GameState["hp"])
}

func TestInMemoryListMultipleOwners(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newCampaign(fmt.Sprintf("camp-%d", i), "user-1")))
	}
	require.NoError(t, repo.Create(ctx, newCampaign("camp-other", "user-2")))

	list, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
