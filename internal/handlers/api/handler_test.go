package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/handlers/api"
	"github.com/fableforge/fableforge/internal/services/story"
	mockstory "github.com/fableforge/fableforge/internal/services/story/mock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type handlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	mockSvc *mockstory.MockService
	engine  *gin.Engine
}

func (s *handlerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *handlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSvc = mockstory.NewMockService(s.ctrl)
	s.engine = api.NewRouter(&api.RouterConfig{
		Handler: api.NewHandler(&api.HandlerConfig{StoryService: s.mockSvc}),
	})
}

func (s *handlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) request(method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(api.HeaderUserID, userID)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestMissingUserHeaderIsUnauthorized() {
	rec := s.request(http.MethodGet, "/api/campaigns", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *handlerSuite) TestCreateCampaign() {
	s.mockSvc.EXPECT().
		CreateCampaign(gomock.Any(), &story.CreateCampaignInput{
			OwnerID: "user-1",
			Title:   "The Hollow Crown",
			Prompt:  "a kingdom without a king",
		}).
		Return(campaign.New("camp-1", "user-1", "The Hollow Crown", "a kingdom without a king"), nil)

	rec := s.request(http.MethodPost, "/api/campaigns", "user-1", gin.H{
		"title":  "The Hollow Crown",
		"prompt": "a kingdom without a king",
	})
	s.Equal(http.StatusCreated, rec.Code)

	var created campaign.Campaign
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal("camp-1", created.ID)
}

func (s *handlerSuite) TestCreateCampaignRejectsMissingFields() {
	rec := s.request(http.MethodPost, "/api/campaigns", "user-1", gin.H{"title": "no prompt"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestListCampaigns() {
	s.mockSvc.EXPECT().
		ListCampaigns(gomock.Any(), "user-1").
		Return([]*campaign.Campaign{
			campaign.New("camp-1", "user-1", "one", "p"),
			campaign.New("camp-2", "user-1", "two", "p"),
		}, nil)

	rec := s.request(http.MethodGet, "/api/campaigns", "user-1", nil)
	s.Equal(http.StatusOK, rec.Code)

	var list []*campaign.Campaign
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Len(list, 2)
}

func (s *handlerSuite) TestGetCampaignNotFound() {
	s.mockSvc.EXPECT().
		GetCampaign(gomock.Any(), "user-1", "missing").
		Return(nil, apperrors.NotFound("campaign not found"))

	rec := s.request(http.MethodGet, "/api/campaigns/missing", "user-1", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestDeleteCampaign() {
	s.mockSvc.EXPECT().
		DeleteCampaign(gomock.Any(), "user-1", "camp-1").
		Return(nil)

	rec := s.request(http.MethodDelete, "/api/campaigns/camp-1", "user-1", nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *handlerSuite) TestUpdateGameState() {
	s.mockSvc.EXPECT().
		UpdateGameState(gomock.Any(), "user-1", "camp-1", campaign.GameState{"hp": float64(10)}).
		Return(nil)

	rec := s.request(http.MethodPut, "/api/campaigns/camp-1/state", "user-1", gin.H{
		"game_state": gin.H{"hp": 10},
	})
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *handlerSuite) TestAddEntry() {
	s.mockSvc.EXPECT().
		AddStoryEntry(gomock.Any(), &story.AddStoryEntryInput{
			OwnerID:    "user-1",
			CampaignID: "camp-1",
			Actor:      campaign.ActorSystem,
			Text:       "Session resumed",
			Mode:       campaign.ModeStory,
		}).
		Return(&campaign.StoryEntry{Seq: 4, Actor: campaign.ActorSystem, Text: "Session resumed", Mode: campaign.ModeStory}, nil)

	rec := s.request(http.MethodPost, "/api/campaigns/camp-1/entries", "user-1", gin.H{
		"actor": "system",
		"text":  "Session resumed",
		"mode":  "story",
	})
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *handlerSuite) TestStartStory() {
	s.mockSvc.EXPECT().
		StartStory(gomock.Any(), &story.StartStoryInput{
			OwnerID:         "user-1",
			CampaignID:      "camp-1",
			SelectedPrompts: []string{"mystery"},
		}).
		Return(&story.TurnResult{
			NarratorEntry: &campaign.StoryEntry{Seq: 0, Actor: campaign.ActorNarrator, Text: "It begins.", Mode: campaign.ModeStory},
			GameState:     campaign.GameState{"scene": "opening"},
		}, nil)

	rec := s.request(http.MethodPost, "/api/campaigns/camp-1/start", "user-1", gin.H{
		"selected_prompts": []string{"mystery"},
	})
	s.Equal(http.StatusOK, rec.Code)

	var result map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.NotContains(result, "player_entry")
	s.Contains(result, "narrator_entry")
}

func (s *handlerSuite) TestStartStoryConflictWhenAlreadyStarted() {
	s.mockSvc.EXPECT().
		StartStory(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.AlreadyExists("story has already started"))

	rec := s.request(http.MethodPost, "/api/campaigns/camp-1/start", "user-1", nil)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestContinueStory() {
	s.mockSvc.EXPECT().
		ContinueStory(gomock.Any(), &story.ContinueStoryInput{
			OwnerID:    "user-1",
			CampaignID: "camp-1",
			UserInput:  "open the gate",
			Mode:       campaign.ModeDo,
		}).
		Return(&story.TurnResult{
			PlayerEntry:   &campaign.StoryEntry{Seq: 1, Actor: campaign.ActorPlayer, Text: "open the gate", Mode: campaign.ModeDo},
			NarratorEntry: &campaign.StoryEntry{Seq: 2, Actor: campaign.ActorNarrator, Text: "The gate creaks open.", Mode: campaign.ModeStory},
			GameState:     campaign.GameState{"turn": 2},
		}, nil)

	rec := s.request(http.MethodPost, "/api/campaigns/camp-1/continue", "user-1", gin.H{
		"user_input": "open the gate",
		"mode":       "do",
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *handlerSuite) TestContinueStoryCallLimitMapsTo429() {
	s.mockSvc.EXPECT().
		ContinueStory(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.ResourceExhaustedf("generation call limit of %d reached", 3))

	rec := s.request(http.MethodPost, "/api/campaigns/camp-1/continue", "user-1", gin.H{
		"user_input": "again",
		"mode":       "do",
	})
	s.Equal(http.StatusTooManyRequests, rec.Code)
}

func (s *handlerSuite) TestNarratorOutageMapsTo503() {
	s.mockSvc.EXPECT().
		ContinueStory(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Unavailable("narrator down"))

	rec := s.request(http.MethodPost, "/api/campaigns/camp-1/continue", "user-1", gin.H{
		"user_input": "wait",
		"mode":       "say",
	})
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *handlerSuite) TestHealthzNeedsNoUser() {
	rec := s.request(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}
