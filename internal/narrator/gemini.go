package narrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// How much trailing story history a continuation prompt carries.
const maxContextEntries = 12

const systemInstruction = `You are the narrator of a collaborative tabletop storytelling game.
Respond to every request with a single JSON object of the form:
{"narrative_text": "<one or two paragraphs of narration>", "state_updates": {<flat key/value updates to the game state>}}
Stay in second person, keep the tone consistent with the story so far, and never break character.`

// GeminiConfig holds settings for the live narrator.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// geminiService is the live narrator backed by the Gemini API.
type geminiService struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed narrator.
func NewGemini(ctx context.Context, cfg *GeminiConfig) (Service, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, apperrors.InvalidArgument("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "failed to create gemini client")
	}

	return &geminiService{client: client, model: model}, nil
}

// GetInitialStory produces the opening narration for a new campaign
func (s *geminiService) GetInitialStory(ctx context.Context, input *InitialStoryInput) (*Response, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}

	var b strings.Builder
	b.WriteString("Begin a new story.\n")
	b.WriteString("Premise: ")
	b.WriteString(input.Prompt)
	b.WriteString("\n")
	if len(input.SelectedPrompts) > 0 {
		b.WriteString("Themes: ")
		b.WriteString(strings.Join(input.SelectedPrompts, ", "))
		b.WriteString("\n")
	}
	b.WriteString("Write the opening scene.")

	return s.generate(ctx, b.String())
}

// ContinueStory produces the next narration for the campaign
func (s *geminiService) ContinueStory(ctx context.Context, input *ContinueStoryInput) (*Response, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if !input.Mode.IsValid() {
		return nil, apperrors.InvalidArgumentf("unknown entry mode %q", string(input.Mode))
	}

	var b strings.Builder
	b.WriteString("Continue the story.\n")

	history := input.Context
	if len(history) > maxContextEntries {
		history = history[len(history)-maxContextEntries:]
	}
	if len(history) > 0 {
		b.WriteString("Story so far:\n")
		for _, entry := range history {
			fmt.Fprintf(&b, "[%s] %s\n", entry.Actor, entry.Text)
		}
	}

	if len(input.GameState) > 0 {
		stateJSON, err := json.Marshal(input.GameState)
		if err == nil {
			b.WriteString("Current game state: ")
			b.Write(stateJSON)
			b.WriteString("\n")
		}
	}

	switch input.Mode {
	case campaign.ModeSay:
		fmt.Fprintf(&b, "The player says: %q\n", input.UserInput)
	case campaign.ModeDo:
		fmt.Fprintf(&b, "The player attempts: %s\n", input.UserInput)
	default:
		fmt.Fprintf(&b, "Narration directive: %s\n", input.UserInput)
	}
	b.WriteString("Narrate what happens next.")

	return s.generate(ctx, b.String())
}

func (s *geminiService) generate(ctx context.Context, prompt string) (*Response, error) {
	result, err := s.client.Models.GenerateContent(ctx,
		s.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnavailable, "gemini generation failed")
	}

	text := result.Text()
	if text == "" {
		return nil, apperrors.Internal("gemini returned an empty response")
	}

	return parseGeminiResponse(text), nil
}

// parseGeminiResponse decodes the model's JSON contract. A response that
// is not valid JSON is treated as plain narration with no state updates,
// so a misbehaving model degrades rather than fails.
func parseGeminiResponse(text string) *Response {
	var decoded Response
	if err := json.Unmarshal([]byte(text), &decoded); err == nil && decoded.NarrativeText != "" {
		if decoded.StateUpdates == nil {
			decoded.StateUpdates = campaign.GameState{}
		}
		return &decoded
	}

	return &Response{
		NarrativeText: strings.TrimSpace(text),
		StateUpdates:  campaign.GameState{},
	}
}
