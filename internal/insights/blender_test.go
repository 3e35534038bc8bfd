package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/domain"
	"github.com/fyrsmithlabs/verdant/internal/gemini"
)

// fakeGenerator scripts the remote model for blending tests.
type fakeGenerator struct {
	configured bool
	text       string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ gemini.GenerationConfig) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.text, f.err
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func testService(gen *fakeGenerator) *Service {
	return NewService(gen, zap.NewNop())
}

func weekEntries() []domain.Entry {
	return []domain.Entry{
		entryAt(1, analysis.LabelPositive, "health"),
		entryAt(2, analysis.LabelNegative, "work"),
	}
}

func TestWeekly_PrivateModeSkipsRemote(t *testing.T) {
	gen := &fakeGenerator{configured: true}
	result := testService(gen).Weekly(context.Background(), weekEntries(), ModePrivate, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Empty(t, result.Error)
	assert.Zero(t, gen.calls)
	assert.Equal(t, 2, result.TotalEntries)
	assert.NotEmpty(t, result.GeneratedAt)
}

func TestWeekly_NotConfiguredFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	result := testService(gen).Weekly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Equal(t, "Gemini API key not configured, using local insights", result.Error)
	assert.Zero(t, gen.calls)
}

func TestWeekly_RateLimitedFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: gemini.ErrRateLimited}
	local := AggregateWeek(weekEntries(), testNow)

	result := testService(gen).Weekly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Equal(t, "API quota exceeded, using local insights", result.Error)
	// Baseline data survives the remote failure untouched.
	assert.Equal(t, local, result.WeeklyData)
}

func TestWeekly_GenericFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: gemini.ErrEmptyResponse}
	result := testService(gen).Weekly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Equal(t, "AI insights generation failed, using local insights", result.Error)
}

func TestWeekly_UnparseableFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "I could not produce JSON, sorry."}
	result := testService(gen).Weekly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Equal(t, "Failed to parse AI insights, using local insights", result.Error)
}

func TestWeekly_EmptyWindowSkipsRemote(t *testing.T) {
	gen := &fakeGenerator{configured: true}
	old := []domain.Entry{entryAt(10, analysis.LabelPositive, "health")}

	result := testService(gen).Weekly(context.Background(), old, ModeGemini, testNow)

	assert.Equal(t, ModeGemini, result.Mode)
	assert.Empty(t, result.Error)
	assert.Zero(t, gen.calls)
}

func TestWeekly_MergesRemoteInsights(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "```json\n" + `[
		{"type":"pattern","title":"R1","description":"d","actionable":"a","confidence":0.85},
		{"type":"theme","title":"R2","description":"d","confidence":0.8},
		{"type":"sentiment","title":"R3","description":"d","confidence":0.75},
		{"type":"pattern","title":"R4","description":"d","confidence":0.7}
	]` + "\n```"}

	// Enough entries for several local insights.
	entries := []domain.Entry{
		entryAt(1, analysis.LabelPositive, "work"),
		entryAt(2, analysis.LabelPositive, "work"),
		entryAt(3, analysis.LabelPositive, "work"),
		entryAt(4, analysis.LabelPositive, "work"),
		entryAt(5, analysis.LabelPositive, "work"),
	}
	local := AggregateWeek(entries, testNow)
	require.GreaterOrEqual(t, len(local.Insights), 2)

	result := testService(gen).Weekly(context.Background(), entries, ModeGemini, testNow)

	assert.Equal(t, ModeGemini, result.Mode)
	assert.Empty(t, result.Error)
	require.Len(t, result.Insights, 5)
	// Top two local first, then the first three remote.
	assert.Equal(t, local.Insights[0], result.Insights[0])
	assert.Equal(t, local.Insights[1], result.Insights[1])
	assert.Equal(t, "R1", result.Insights[2].Title)
	assert.Equal(t, "R2", result.Insights[3].Title)
	assert.Equal(t, "R3", result.Insights[4].Title)
}

func TestWeekly_PromptCarriesNoEntryText(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "[]"}
	entries := []domain.Entry{
		{
			ID:        "secret",
			CreatedAt: testNow.AddDate(0, 0, -1).UnixMilli(),
			Title:     "My Private Title",
			Text:      "extremely private journal contents",
			Sentiment: analysis.Sentiment{Score: 0.5, Label: analysis.LabelPositive},
			Themes:    []string{"health"},
		},
	}

	testService(gen).Weekly(context.Background(), entries, ModeGemini, testNow)

	require.Equal(t, 1, gen.calls)
	assert.NotContains(t, gen.lastPrompt, "extremely private journal contents")
	assert.NotContains(t, gen.lastPrompt, "My Private Title")
	assert.Contains(t, gen.lastPrompt, "health")
}

func TestMonthly_NotConfiguredFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	result := testService(gen).Monthly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Equal(t, "Gemini API key not configured, using private insights", result.Error)
}

func TestMonthly_RateLimitedFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: gemini.ErrRateLimited}
	result := testService(gen).Monthly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Equal(t, "API quota exceeded, using private insights", result.Error)
}

func TestMonthly_RemoteWithoutTakeawayDropped(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: `[
		{"type":"growth","takeaway":"Onward!","title":"Keep","description":"d","confidence":0.9},
		{"type":"growth","title":"Drop","description":"d","confidence":0.9}
	]`}

	result := testService(gen).Monthly(context.Background(), weekEntries(), ModeGemini, testNow)

	assert.Equal(t, ModeGemini, result.Mode)
	titles := insightTitles(result.Insights)
	assert.Contains(t, titles, "Keep")
	assert.NotContains(t, titles, "Drop")
}

func TestMonthly_PrivateMode(t *testing.T) {
	gen := &fakeGenerator{configured: true}
	result := testService(gen).Monthly(context.Background(), weekEntries(), ModePrivate, testNow)

	assert.Equal(t, ModePrivate, result.Mode)
	assert.Zero(t, gen.calls)
	assert.Equal(t, 2, result.MonthlyStats.TotalEntries)
}
