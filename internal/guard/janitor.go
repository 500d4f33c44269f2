package guard

import (
	"context"
	"sync"

	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/repositories/campaigns"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Janitor tracks every campaign a live run creates and deletes them all
// when the run ends. Cleanup runs regardless of how the run exited, so
// the caller should defer it immediately after constructing the janitor.
type Janitor struct {
	repo campaigns.Repository
	log  *zap.Logger

	mu      sync.Mutex
	tracked []trackedCampaign
}

type trackedCampaign struct {
	ownerID    string
	campaignID string
}

// NewJanitor creates a janitor over the given repository.
func NewJanitor(repo campaigns.Repository, log *zap.Logger) *Janitor {
	if repo == nil {
		panic("guard: repository is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Janitor{repo: repo, log: log}
}

// Track registers a campaign for deletion at cleanup time.
func (j *Janitor) Track(ownerID, campaignID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.tracked = append(j.tracked, trackedCampaign{ownerID: ownerID, campaignID: campaignID})
}

// Tracked returns how many campaigns are awaiting cleanup.
func (j *Janitor) Tracked() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.tracked)
}

// Cleanup deletes every tracked campaign concurrently. A campaign that is
// already gone counts as cleaned. Cleanup attempts all deletions even when
// some fail, and returns the first error.
func (j *Janitor) Cleanup(ctx context.Context) error {
	j.mu.Lock()
	pending := j.tracked
	j.tracked = nil
	j.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, tc := range pending {
		g.Go(func() error {
			err := j.repo.Delete(ctx, tc.ownerID, tc.campaignID)
			if err != nil && !apperrors.IsNotFound(err) {
				j.log.Warn("cleanup failed for campaign",
					zap.String("owner_id", tc.ownerID),
					zap.String("campaign_id", tc.campaignID),
					zap.Error(err))
				return err
			}

			j.log.Debug("cleaned up campaign",
				zap.String("owner_id", tc.ownerID),
				zap.String("campaign_id", tc.campaignID))
			return nil
		})
	}

	return g.Wait()
}
