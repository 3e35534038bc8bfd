// Package prompts serves journal starter prompts: a curated local list and
// an optional context-aware prompt built from the user's recent entries.
package prompts

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/domain"
	"github.com/fyrsmithlabs/verdant/internal/gemini"
	"github.com/fyrsmithlabs/verdant/internal/insights"
)

// FallbackPrompt is returned whenever a context-aware prompt cannot be
// produced.
const FallbackPrompt = "What's on your mind today?"

const recentTitleCount = 3

var contextGenConfig = gemini.GenerationConfig{
	Temperature:     0.8,
	MaxOutputTokens: 100,
	TopP:            0.9,
	TopK:            40,
}

// curated is the fixed starter prompt list, grouped by mood of question.
var curated = []string{
	// Daily reflection
	"How was your day?",
	"What's on your mind?",
	"What made you smile today?",
	"What challenged you today?",
	"What are you grateful for?",

	// Emotional check-ins
	"How are you feeling right now?",
	"What emotions are you experiencing?",
	"What's weighing on your heart?",
	"What brought you peace today?",
	"What made you feel proud?",

	// Growth and learning
	"What did you learn today?",
	"How did you grow today?",
	"What would you do differently?",
	"What are you working on improving?",
	"What wisdom did you gain?",

	// Relationships and connections
	"Who made your day better?",
	"What conversations meant the most?",
	"How did you connect with others?",
	"What relationships are you nurturing?",
	"Who do you want to reach out to?",

	// Goals and dreams
	"What progress did you make today?",
	"What are you working toward?",
	"What dreams are you pursuing?",
	"What would you like to accomplish?",
	"What's your next step?",

	// Self-care and wellness
	"How did you take care of yourself?",
	"What brought you energy today?",
	"What drained your energy?",
	"How did you find balance?",
	"What do you need more of?",

	// Creativity and inspiration
	"What inspired you today?",
	"What creative ideas came to mind?",
	"What beauty did you notice?",
	"What sparked your curiosity?",
	"What would you like to create?",

	// Challenges and overcoming
	"What obstacles did you face?",
	"How did you overcome challenges?",
	"What resilience did you show?",
	"What would you tell your past self?",
	"What strength did you discover?",

	// Future and hope
	"What are you looking forward to?",
	"What gives you hope?",
	"What possibilities excite you?",
	"What would you like to manifest?",
	"What future are you creating?",

	// Reflection and wisdom
	"What patterns do you notice?",
	"What insights did you gain?",
	"What would you like to remember?",
	"What advice would you give yourself?",
	"What matters most to you right now?",
}

// Curated returns a copy of the full starter prompt list.
func Curated() []string {
	return append([]string(nil), curated...)
}

// Starter returns count random prompts from the curated list without
// repeats. count is clipped to the list length.
func Starter(rng *rand.Rand, count int) []string {
	if count > len(curated) {
		count = len(curated)
	}
	perm := rng.Perm(len(curated))
	out := make([]string, 0, count)
	for _, i := range perm[:count] {
		out = append(out, curated[i])
	}
	return out
}

// ContextResult is a generated follow-up prompt. IsContextAware is false
// when the fallback was used; Error carries an advisory note when the
// fallback was forced by a remote failure.
type ContextResult struct {
	Prompt         string `json:"prompt"`
	IsContextAware bool   `json:"isContextAware"`
	Error          string `json:"error,omitempty"`
}

// Service generates context-aware prompts through the remote model.
type Service struct {
	generator insights.Generator
	logger    *zap.Logger
}

// NewService creates a prompt service.
func NewService(generator insights.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

// Contextual builds a follow-up prompt from the user's recent entries,
// newest first. Every failure path degrades to the fallback prompt.
func (s *Service) Contextual(ctx context.Context, recent []domain.Entry) ContextResult {
	if len(recent) == 0 || !s.generator.Configured() {
		return ContextResult{Prompt: FallbackPrompt}
	}

	raw, err := s.generator.Generate(ctx, buildContextPrompt(recent), contextGenConfig)
	if err != nil {
		s.logger.Warn("context prompt generation failed", zap.Error(err))
		note := "Context prompt generation failed, using fallback prompt"
		if errors.Is(err, gemini.ErrRateLimited) {
			note = "API quota exceeded, using fallback prompt"
		}
		return ContextResult{Prompt: FallbackPrompt, Error: note}
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'`)
	cleaned = strings.TrimPrefix(cleaned, "[")
	cleaned = strings.TrimSuffix(cleaned, "]")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ContextResult{Prompt: FallbackPrompt}
	}

	return ContextResult{Prompt: cleaned, IsContextAware: true}
}

// buildContextPrompt summarizes the recent entries: last titles, the top
// themes by frequency, and the distinct sentiment labels.
func buildContextPrompt(recent []domain.Entry) string {
	titles := make([]string, 0, recentTitleCount)
	for i := 0; i < len(recent) && i < recentTitleCount; i++ {
		titles = append(titles, recent[i].Title)
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range recent {
		for _, theme := range e.Themes {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > 3 {
		order = order[:3]
	}

	var sentiments []string
	seen := make(map[string]bool)
	for _, e := range recent {
		label := string(e.Sentiment.Label)
		if !seen[label] {
			seen[label] = true
			sentiments = append(sentiments, label)
		}
	}

	latest := recent[0]

	var b strings.Builder
	b.WriteString("Based on this user's recent journal entries, generate a thoughtful, relevant follow-up prompt that builds on their previous reflections.\n\n")
	b.WriteString("Recent Entries Analysis:\n")
	b.WriteString(`- Last 3 Entry Titles: "` + strings.Join(titles, `", "`) + "\"\n")
	b.WriteString(`- Most Recent Entry: "` + latest.Title + `" (` + string(latest.Sentiment.Label) + " sentiment)\n")
	b.WriteString("- Recent Themes: " + strings.Join(order, ", ") + "\n")
	b.WriteString("- Recent Sentiments: " + strings.Join(sentiments, ", ") + "\n\n")
	b.WriteString(`Requirements:
- Generate 1 relevant, personalized prompt (1 sentence)
- Build on their previous entries and themes
- Tone should be encouraging and thoughtful
- Help them continue their reflection journey
- Make it feel like a natural follow-up conversation
- Consider the progression of their recent entries
- Return only the prompt text, no quotes or formatting
- Do not regurgitate the previous entry titles, take the essence from them

Examples of good context-aware prompts:
- If they wrote about work stress: "How did you find moments of peace today?"
- If they wrote about relationships: "What connections brought you joy this week?"
- If they wrote about goals: "What progress did you make toward your dreams today?"
- If they wrote about challenges: "What strength did you discover today?"`)
	return b.String()
}
