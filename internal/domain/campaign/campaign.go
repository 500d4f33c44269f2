// Package campaign defines the core entities of a storytelling session:
// the campaign itself, its append-only story log, and its game state.
package campaign

import (
	"time"
)

// Actor identifies who produced a story entry.
type Actor string

const (
	// ActorPlayer marks entries typed by the player
	ActorPlayer Actor = "player"

	// ActorNarrator marks entries produced by the narrator
	ActorNarrator Actor = "narrator"

	// ActorSystem marks entries injected by the platform itself
	ActorSystem Actor = "system"
)

// EntryMode describes how a player entry should be interpreted.
type EntryMode string

const (
	// ModeSay is in-character dialogue
	ModeSay EntryMode = "say"

	// ModeDo is an attempted in-world action
	ModeDo EntryMode = "do"

	// ModeStory is out-of-band narration, used for openings and
	// narrator-produced text
	ModeStory EntryMode = "story"
)

// IsValid reports whether m is one of the known entry modes.
func (m EntryMode) IsValid() bool {
	switch m {
	case ModeSay, ModeDo, ModeStory:
		return true
	default:
		return false
	}
}

// GameState is the opaque state blob associated 1:1 with a campaign.
// It is replaced or merged wholesale; the engine never interprets it.
type GameState map[string]any

// Clone returns a shallow-per-key copy of the state. Values are assumed to
// be JSON-like (maps, slices, scalars); nested maps are copied one level
// deep, which is enough to keep repository copies from aliasing callers.
func (s GameState) Clone() GameState {
	if s == nil {
		return nil
	}

	cloned := make(GameState, len(s))
	for k, v := range s {
		if nested, ok := v.(map[string]any); ok {
			nestedCopy := make(map[string]any, len(nested))
			for nk, nv := range nested {
				nestedCopy[nk] = nv
			}
			cloned[k] = nestedCopy
			continue
		}
		cloned[k] = v
	}
	return cloned
}

// Merge applies updates on top of the state, returning the merged result.
// A nil receiver is treated as empty.
func (s GameState) Merge(updates GameState) GameState {
	if len(updates) == 0 {
		return s.Clone()
	}

	merged := s.Clone()
	if merged == nil {
		merged = make(GameState, len(updates))
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}

// StoryEntry is one appended unit of narrative or dialogue within a
// campaign. Entries are append-only; Seq reflects insertion order.
type StoryEntry struct {
	Seq       int64     `json:"seq" firestore:"seq"`
	Actor     Actor     `json:"actor" firestore:"actor"`
	Text      string    `json:"text" firestore:"text"`
	Mode      EntryMode `json:"mode" firestore:"mode"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}

// NewStoryEntry creates an unsequenced entry. The repository assigns Seq
// when the entry is appended.
func NewStoryEntry(actor Actor, text string, mode EntryMode) *StoryEntry {
	return &StoryEntry{
		Actor:     actor,
		Text:      text,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
}

// Campaign is a single storytelling session owned by one user.
type Campaign struct {
	ID        string        `json:"id" firestore:"id"`
	OwnerID   string        `json:"owner_id" firestore:"owner_id"`
	Title     string        `json:"title" firestore:"title"`
	Prompt    string        `json:"prompt" firestore:"prompt"`
	Story     []*StoryEntry `json:"story" firestore:"-"`
	GameState GameState     `json:"game_state" firestore:"game_state"`
	CreatedAt time.Time     `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" firestore:"updated_at"`
}

// New creates a campaign with the given identity and prompt.
func New(id, ownerID, title, prompt string) *Campaign {
	now := time.Now().UTC()
	return &Campaign{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Prompt:    prompt,
		GameState: GameState{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendEntry adds an entry to the story log, assigning the next sequence
// number, and returns the appended entry.
func (c *Campaign) AppendEntry(actor Actor, text string, mode EntryMode) *StoryEntry {
	entry := &StoryEntry{
		Seq:       int64(len(c.Story)),
		Actor:     actor,
		Text:      text,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
	c.Story = append(c.Story, entry)
	c.UpdatedAt = entry.CreatedAt
	return entry
}

// Clone returns a deep copy of the campaign. Repositories hand out clones
// so callers can never mutate stored records.
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}

	cloned := *c
	cloned.GameState = c.GameState.Clone()

	if c.Story != nil {
		cloned.Story = make([]*StoryEntry, len(c.Story))
		for i, entry := range c.Story {
			entryCopy := *entry
			cloned.Story[i] = &entryCopy
		}
	}

	return &cloned
}
