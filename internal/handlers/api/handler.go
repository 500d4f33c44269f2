// Package api exposes the story service over HTTP. The transport is
// deliberately thin: it binds requests, calls the service, and maps error
// codes to statuses. All behavior differences between mocked and live
// bindings live below the service, so the API surface is identical in
// every mode.
package api

import (
	"net/http"

	"github.com/fableforge/fableforge/internal/domain/campaign"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/services/story"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderUserID carries the caller's identity. Campaigns are scoped to it.
const HeaderUserID = "X-User-ID"

// Handler serves the campaign API.
type Handler struct {
	stories story.Service
	log     *zap.Logger
}

// HandlerConfig holds the dependencies for the API handler.
type HandlerConfig struct {
	StoryService story.Service
	Logger       *zap.Logger
}

// NewHandler creates an API handler.
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.StoryService == nil {
		panic("story service is required")
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Handler{stories: cfg.StoryService, log: log}
}

// Register mounts the campaign routes on the router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	campaignsGroup := rg.Group("/campaigns", h.requireUser)
	campaignsGroup.POST("", h.createCampaign)
	campaignsGroup.GET("", h.listCampaigns)
	campaignsGroup.GET("/:id", h.getCampaign)
	campaignsGroup.DELETE("/:id", h.deleteCampaign)
	campaignsGroup.PUT("/:id/state", h.updateGameState)
	campaignsGroup.POST("/:id/entries", h.addEntry)
	campaignsGroup.POST("/:id/start", h.startStory)
	campaignsGroup.POST("/:id/continue", h.continueStory)
}

// requireUser rejects requests that do not identify a user.
func (h *Handler) requireUser(c *gin.Context) {
	if c.GetHeader(HeaderUserID) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing " + HeaderUserID + " header"})
		return
	}
	c.Next()
}

func (h *Handler) userID(c *gin.Context) string {
	return c.GetHeader(HeaderUserID)
}

func (h *Handler) createCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := h.stories.CreateCampaign(c.Request.Context(), &story.CreateCampaignInput{
		OwnerID: h.userID(c),
		Title:   req.Title,
		Prompt:  req.Prompt,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listCampaigns(c *gin.Context) {
	list, err := h.stories.ListCampaigns(c.Request.Context(), h.userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) getCampaign(c *gin.Context) {
	found, err := h.stories.GetCampaign(c.Request.Context(), h.userID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) deleteCampaign(c *gin.Context) {
	if err := h.stories.DeleteCampaign(c.Request.Context(), h.userID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) updateGameState(c *gin.Context) {
	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.stories.UpdateGameState(c.Request.Context(), h.userID(c), c.Param("id"), req.GameState); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) addEntry(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	entry, err := h.stories.AddStoryEntry(c.Request.Context(), &story.AddStoryEntryInput{
		OwnerID:    h.userID(c),
		CampaignID: c.Param("id"),
		Actor:      campaign.Actor(req.Actor),
		Text:       req.Text,
		Mode:       campaign.EntryMode(req.Mode),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) startStory(c *gin.Context) {
	var req startStoryRequest
	// Body is optional for start
	_ = c.ShouldBindJSON(&req)

	result, err := h.stories.StartStory(c.Request.Context(), &story.StartStoryInput{
		OwnerID:         h.userID(c),
		CampaignID:      c.Param("id"),
		SelectedPrompts: req.SelectedPrompts,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTurnResponse(result))
}

func (h *Handler) continueStory(c *gin.Context) {
	var req continueStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.stories.ContinueStory(c.Request.Context(), &story.ContinueStoryInput{
		OwnerID:    h.userID(c),
		CampaignID: c.Param("id"),
		UserInput:  req.UserInput,
		Mode:       campaign.EntryMode(req.Mode),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTurnResponse(result))
}

// writeError maps service error codes onto HTTP statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeAlreadyExists:
		status = http.StatusConflict
	case apperrors.CodePermissionDenied:
		status = http.StatusForbidden
	case apperrors.CodeResourceExhausted:
		status = http.StatusTooManyRequests
	case apperrors.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(status, errorResponse{Error: err.Error()})
}
