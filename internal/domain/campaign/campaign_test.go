package campaign_test

import (
	"testing"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendEntryAssignsSequence(t *testing.T) {
	c := campaign.New("camp-1", "user-1", "The Sunken Keep", "A keep sinks into the marsh")

	first := c.AppendEntry(campaign.ActorNarrator, "The keep looms.", campaign.ModeStory)
	second := c.AppendEntry(campaign.ActorPlayer, "I approach the gate.", campaign.ModeDo)
	third := c.AppendEntry(campaign.ActorPlayer, "Hello?", campaign.ModeSay)

	assert.Equal(t, int64(0), first.Seq)
	assert.Equal(t, int64(1), second.Seq)
	assert.Equal(t, int64(2), third.Seq)
	require.Len(t, c.Story, 3)
	assert.Equal(t, "I approach the gate.", c.Story[1].Text)
}

func TestCloneIsDeep(t *testing.T) {
	c := campaign.New("camp-1", "user-1", "Title", "Prompt")
	c.AppendEntry(campaign.ActorNarrator, "Opening.", campaign.ModeStory)
	c.GameState = campaign.GameState{"hp": 10, "inventory": map[string]any{"torch": 1}}

	cloned := c.Clone()
	cloned.Story[0].Text = "Mutated."
	cloned.GameState["hp"] = 0
	cloned.GameState["inventory"].(map[string]any)["torch"] = 99

	assert.Equal(t, "Opening.", c.Story[0].Text)
	assert.Equal(t, 10, c.GameState["hp"])
	assert.Equal(t, 1, c.GameState["inventory"].(map[string]any)["torch"])
}

func TestGameStateMerge(t *testing.T) {
	base := campaign.GameState{"hp": 10, "location": "gate"}
	merged := base.Merge(campaign.GameState{"hp": 7, "alerted": true})

	assert.Equal(t, 7, merged["hp"])
	assert.Equal(t, "gate", merged["location"])
	assert.Equal(t, true, merged["alerted"])
	// the original is untouched
	assert.Equal(t, 10, base["hp"])
}

func TestGameStateMergeOntoNil(t *testing.T) {
	var base campaign.GameState
	merged := base.Merge(campaign.GameState{"hp": 5})

	require.NotNil(t, merged)
	assert.Equal(t, 5, merged["hp"])
}

func TestEntryModeIsValid(t *testing.T) {
	assert.True(t, campaign.ModeSay.IsValid())
	assert.True(t, campaign.ModeDo.IsValid())
	assert.True(t, campaign.ModeStory.IsValid())
	assert.False(t, campaign.EntryMode("shout").IsValid())
}
