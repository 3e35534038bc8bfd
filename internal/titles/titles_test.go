package titles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/verdant/internal/gemini"
	"github.com/fyrsmithlabs/verdant/internal/insights"
)

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

func TestLocal_SentimentAndThemeSelectBank(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive work", "I had a wonderful meeting at the office today", "Professional Growth"},
		{"negative work", "terrible awful day at the office with my boss", "Work Stress"},
		{"neutral general", "went outside and looked around for a while", "Daily Life"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Local(tt.text)
			assert.Equal(t, tt.want, got.Title)
			assert.Equal(t, insights.ModePrivate, got.Mode)
			assert.InDelta(t, 0.8, got.Confidence, 1e-9)
		})
	}
}

func TestLocal_WordCountSelectsVariant(t *testing.T) {
	short := "happy day at the office"
	long := strings.TrimSpace(strings.Repeat("happy office meeting day ", 30))

	assert.Equal(t, "Professional Growth", Local(short).Title) // index 3
	assert.Equal(t, "Career Highlights", Local(long).Title)    // index 0
}

func TestLocal_MultipleThemesSelectSecondVariant(t *testing.T) {
	text := "happy about the office, my doctor visit, and the flight I booked"
	got := Local(text)
	// Three themes detected: the second template of the primary theme wins.
	assert.Equal(t, "Productive Day", got.Title)
}

func TestLocal_Deterministic(t *testing.T) {
	text := "grateful for my family today"
	first := Local(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Local(text))
	}
}

func TestGenerate_PrivateModeStaysLocal(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "Remote Title"}
	svc := NewService(gen, nil)

	got := svc.Generate(context.Background(), "happy day", insights.ModePrivate)

	assert.Equal(t, insights.ModePrivate, got.Mode)
	assert.Zero(t, gen.calls)
}

func TestGenerate_RemoteSuccess(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "\"A Calm Evening Walk\"\n"}
	svc := NewService(gen, nil)

	got := svc.Generate(context.Background(), "took a lovely walk tonight", insights.ModeGemini)

	assert.Equal(t, "A Calm Evening Walk", got.Title)
	assert.Equal(t, insights.ModeGemini, got.Mode)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	// Remote titles see the raw text.
	assert.Contains(t, gen.lastPrompt, "took a lovely walk tonight")
}

func TestGenerate_RemoteFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("boom")}
	svc := NewService(gen, nil)

	got := svc.Generate(context.Background(), "happy day at the office", insights.ModeGemini)

	assert.Equal(t, insights.ModePrivate, got.Mode)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
}

func TestGenerate_NotConfiguredFallsBack(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	svc := NewService(gen, nil)

	got := svc.Generate(context.Background(), "happy day", insights.ModeGemini)

	assert.Equal(t, insights.ModePrivate, got.Mode)
	assert.Zero(t, gen.calls)
}

func TestGenerate_RejectsOverlongRemoteTitle(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: strings.Repeat("long title ", 10)}
	svc := NewService(gen, nil)

	got := svc.Generate(context.Background(), "happy day", insights.ModeGemini)

	assert.Equal(t, insights.ModePrivate, got.Mode)
}

func TestGenerate_RejectsEmptyRemoteTitle(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "  \"\"  "}
	svc := NewService(gen, nil)

	got := svc.Generate(context.Background(), "happy day", insights.ModeGemini)

	assert.Equal(t, insights.ModePrivate, got.Mode)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Quoted Title"`, "Quoted Title"},
		{"[Bracketed Title]", "Bracketed Title"},
		{"1. Numbered Title", "Numbered Title"},
		{"  Plain Title  ", "Plain Title"},
		{"'Single Quoted'", "Single Quoted"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanTitle(tt.in), "input %q", tt.in)
	}
}

func TestTemplateBankComplete(t *testing.T) {
	for label, bank := range templates {
		require.Contains(t, bank, "general", "label %s", label)
		for theme, candidates := range bank {
			assert.Len(t, candidates, 5, "label %s theme %s", label, theme)
		}
	}
}
