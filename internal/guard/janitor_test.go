package guard_test

import (
	"context"
	"testing"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/guard"
	"github.com/fableforge/fableforge/internal/repositories/campaigns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJanitorDeletesEverythingItTracked(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()
	janitor := guard.NewJanitor(repo, zap.NewNop())

	for _, title := range []string{"one", "two", "three"} {
		c := campaign.New("id-"+title, "owner-1", title, "premise")
		require.NoError(t, repo.Create(ctx, c))
		janitor.Track(c.OwnerID, c.ID)
	}
	assert.Equal(t, 3, janitor.Tracked())

	require.NoError(t, janitor.Cleanup(ctx))
	assert.Equal(t, 0, janitor.Tracked())

	list, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestJanitorToleratesAlreadyDeletedCampaigns(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()
	janitor := guard.NewJanitor(repo, zap.NewNop())

	c := campaign.New("id-1", "owner-1", "title", "premise")
	require.NoError(t, repo.Create(ctx, c))
	janitor.Track(c.OwnerID, c.ID)
	janitor.Track("owner-1", "never-existed")

	assert.NoError(t, janitor.Cleanup(ctx))

	_, err := repo.Get(ctx, "owner-1", "id-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJanitorCleanupIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := campaigns.NewInMemoryRepository()
	janitor := guard.NewJanitor(repo, zap.NewNop())

	c := campaign.New("id-1", "owner-1", "title", "premise")
	require.NoError(t, repo.Create(ctx, c))
	janitor.Track(c.OwnerID, c.ID)

	require.NoError(t, janitor.Cleanup(ctx))
	require.NoError(t, janitor.Cleanup(ctx))
}
