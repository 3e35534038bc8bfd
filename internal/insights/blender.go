package insights

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/domain"
	"github.com/fyrsmithlabs/verdant/internal/gemini"
)

// Merge limits for blended insight lists.
const (
	keepLocalInsights  = 2
	keepRemoteInsights = 3
	maxInsights        = 5
)

// Generator produces text from a prompt. Satisfied by *gemini.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string, genCfg gemini.GenerationConfig) (string, error)
	Configured() bool
}

// Service blends the local heuristic baseline with optional remote
// enhancement. The local aggregate is always computed first; every remote
// failure degrades to it with an advisory note, never an error return.
type Service struct {
	generator Generator
	logger    *zap.Logger
}

// NewService creates a blending service. generator may be a client without an
// API key; that degrades every remote-mode request to the local baseline.
func NewService(generator Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

// Weekly produces the blended weekly report for the given mode.
func (s *Service) Weekly(ctx context.Context, entries []domain.Entry, mode Mode, now time.Time) WeeklyResult {
	local := AggregateWeek(entries, now)
	result := WeeklyResult{
		WeeklyData:  local,
		Mode:        ModePrivate,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	if mode != ModeGemini {
		return result
	}
	if !s.generator.Configured() {
		result.Error = "Gemini API key not configured, using local insights"
		return result
	}

	window := entriesSince(entries, now, weekWindow)
	if len(window) == 0 {
		result.Mode = ModeGemini
		return result
	}

	remote, errNote := s.enhance(ctx, buildWeeklyPrompt(local, window), false, "local")
	if errNote != "" {
		result.Error = errNote
		return result
	}

	result.Mode = ModeGemini
	result.Insights = mergeInsights(local.Insights, remote)
	return result
}

// Monthly produces the blended monthly report for the given mode.
func (s *Service) Monthly(ctx context.Context, entries []domain.Entry, mode Mode, now time.Time) MonthlyResult {
	local := AggregateMonth(entries, now)
	result := MonthlyResult{
		MonthlyData: local,
		Mode:        ModePrivate,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	if mode != ModeGemini {
		return result
	}
	if !s.generator.Configured() {
		result.Error = "Gemini API key not configured, using private insights"
		return result
	}

	window := entriesSince(entries, now, monthWindow)
	if len(window) == 0 {
		result.Mode = ModeGemini
		return result
	}

	remote, errNote := s.enhance(ctx, buildMonthlyPrompt(local, window), true, "private")
	if errNote != "" {
		result.Error = errNote
		return result
	}

	result.Mode = ModeGemini
	result.Insights = mergeInsights(local.Insights, remote)
	return result
}

// enhance runs one remote generation and validates the output. On any failure
// it returns the advisory note for the degraded response; fallbackLabel names
// the baseline in that note ("local" weekly, "private" monthly).
func (s *Service) enhance(ctx context.Context, prompt string, requireTakeaway bool, fallbackLabel string) ([]Insight, string) {
	text, err := s.generator.Generate(ctx, prompt, insightGenConfig)
	if err != nil {
		s.logger.Warn("remote insight generation failed", zap.Error(err))
		if errors.Is(err, gemini.ErrRateLimited) {
			return nil, "API quota exceeded, using " + fallbackLabel + " insights"
		}
		return nil, "AI insights generation failed, using " + fallbackLabel + " insights"
	}

	remote, err := parseModelInsights(text, requireTakeaway)
	if err != nil {
		s.logger.Warn("remote insight response unparseable", zap.Error(err))
		return nil, "Failed to parse AI insights, using " + fallbackLabel + " insights"
	}
	return remote, ""
}

// mergeInsights keeps the top local insights, appends validated remote ones,
// and caps the combined list.
func mergeInsights(local, remote []Insight) []Insight {
	merged := make([]Insight, 0, maxInsights)
	for i := 0; i < len(local) && i < keepLocalInsights; i++ {
		merged = append(merged, local[i])
	}
	for i := 0; i < len(remote) && i < keepRemoteInsights; i++ {
		merged = append(merged, remote[i])
	}
	if len(merged) > maxInsights {
		merged = merged[:maxInsights]
	}
	return merged
}
