package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/domain"
	"github.com/fyrsmithlabs/verdant/internal/insights"
	"github.com/fyrsmithlabs/verdant/internal/progress"
	"github.com/fyrsmithlabs/verdant/internal/prompts"
	"github.com/fyrsmithlabs/verdant/internal/store"
)

// EntryRequest is the body for creating or replacing an entry.
type EntryRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (s *Server) handleListEntries(c echo.Context) error {
	entries, err := s.store.List(c.Request().Context())
	if err != nil {
		s.logger.Error("list entries", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list entries")
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}

	entry, err := s.store.Create(c.Request().Context(), req.Title, req.Text)
	if err != nil {
		s.logger.Error("create entry", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create entry")
	}
	return c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleGetEntry(c echo.Context) error {
	entry, err := s.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "entry not found")
	}
	if err != nil {
		s.logger.Error("get entry", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get entry")
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleUpdateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}

	entry, err := s.store.Update(c.Request().Context(), c.Param("id"), req.Title, req.Text)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "entry not found")
	}
	if err != nil {
		s.logger.Error("update entry", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update entry")
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(c echo.Context) error {
	err := s.store.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "entry not found")
	}
	if err != nil {
		s.logger.Error("delete entry", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete entry")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleProgress(c echo.Context) error {
	entries, err := s.store.List(c.Request().Context())
	if err != nil {
		s.logger.Error("list entries for progress", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute progress")
	}
	return c.JSON(http.StatusOK, progress.Compute(entries, s.now()))
}

// InsightsRequest is the body for the weekly and monthly insight endpoints.
// Entries are supplied by the caller so a client-side store can be analyzed
// without ever persisting entries on the server.
type InsightsRequest struct {
	Entries []domain.Entry `json:"entries"`
	Mode    string         `json:"mode"`
}

func (s *Server) handleWeeklyInsights(c echo.Context) error {
	var req InsightsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Entries == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "entries field is required")
	}
	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := s.insights.Weekly(c.Request().Context(), req.Entries, mode, s.now())
	s.recordInsightOutcome("weekly", mode, result.Error)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleMonthlyInsights(c echo.Context) error {
	var req InsightsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Entries == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "entries field is required")
	}
	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := s.insights.Monthly(c.Request().Context(), req.Entries, mode, s.now())
	s.recordInsightOutcome("monthly", mode, result.Error)
	return c.JSON(http.StatusOK, result)
}

// recordInsightOutcome counts remote enhancement outcomes. Private-mode
// requests never attempt the remote call and are not counted.
func (s *Server) recordInsightOutcome(endpoint string, mode insights.Mode, errNote string) {
	if mode != insights.ModeGemini {
		return
	}
	outcome := "ok"
	if errNote != "" {
		outcome = "fallback"
	}
	s.metrics.RecordRemoteOutcome(endpoint, outcome)
}

// TitleRequest is the body for POST /api/v1/titles.
type TitleRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

func (s *Server) handleGenerateTitle(c echo.Context) error {
	var req TitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}
	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	generated := s.titles.Generate(c.Request().Context(), req.Text, mode)
	if mode == insights.ModeGemini {
		outcome := "ok"
		if generated.Mode != insights.ModeGemini {
			outcome = "fallback"
		}
		s.metrics.RecordRemoteOutcome("titles", outcome)
	}
	return c.JSON(http.StatusOK, generated)
}

// ContextPromptRequest is the body for POST /api/v1/prompts/context.
type ContextPromptRequest struct {
	RecentEntries []domain.Entry `json:"recentEntries"`
}

func (s *Server) handleContextPrompt(c echo.Context) error {
	var req ContextPromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RecentEntries == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "recentEntries field is required")
	}

	result := s.prompts.Contextual(c.Request().Context(), req.RecentEntries)
	outcome := "ok"
	if !result.IsContextAware {
		outcome = "fallback"
	}
	s.metrics.RecordRemoteOutcome("prompts", outcome)
	return c.JSON(http.StatusOK, result)
}

// StarterPromptResponse is the response for GET /api/v1/prompts/starter.
type StarterPromptResponse struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleStarterPrompt(c echo.Context) error {
	s.rngMu.Lock()
	picked := prompts.Starter(s.rng, 1)
	s.rngMu.Unlock()

	return c.JSON(http.StatusOK, StarterPromptResponse{Prompt: picked[0]})
}
