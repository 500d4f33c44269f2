package testutils

import (
	"fmt"

	"github.com/fableforge/fableforge/internal/domain/campaign"
)

// CreateTestCampaign creates a campaign with a fixed title and prompt.
func CreateTestCampaign(id, ownerID string) *campaign.Campaign {
	return campaign.New(id, ownerID, "Test Campaign", "a premise for testing")
}

// CreateTestCampaignWithStory creates a campaign whose story log already
// holds an opening plus the given number of player/narrator turn pairs.
func CreateTestCampaignWithStory(id, ownerID string, turns int) *campaign.Campaign {
	c := CreateTestCampaign(id, ownerID)
	c.AppendEntry(campaign.ActorNarrator, "The story begins.", campaign.ModeStory)

	for i := 0; i < turns; i++ {
		c.AppendEntry(campaign.ActorPlayer, fmt.Sprintf("player action %d", i+1), campaign.ModeDo)
		c.AppendEntry(campaign.ActorNarrator, fmt.Sprintf("narration %d", i+1), campaign.ModeStory)
	}

	c.GameState = campaign.GameState{"turn": turns + 1}
	return c
}

// CreateTestEntry creates an unsequenced player entry.
func CreateTestEntry(text string) *campaign.StoryEntry {
	return campaign.NewStoryEntry(campaign.ActorPlayer, text, campaign.ModeDo)
}
