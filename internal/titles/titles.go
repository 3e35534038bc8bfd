// Package titles generates entry titles from text, either from the local
// sentiment/theme template bank or through the remote model. Unlike the
// insight path, remote title generation sends the raw entry text, so it only
// runs when the user has opted into remote mode.
package titles

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/gemini"
	"github.com/fyrsmithlabs/verdant/internal/insights"
)

// Confidence levels by generation path.
const (
	localConfidence  = 0.8
	remoteConfidence = 0.9
)

const maxTitleLength = 50

var titleGenConfig = gemini.GenerationConfig{
	Temperature:     0.7,
	MaxOutputTokens: 150,
	TopP:            0.8,
	TopK:            40,
}

// Generated is one title suggestion.
type Generated struct {
	Title      string        `json:"title"`
	Confidence float64       `json:"confidence"`
	Mode       insights.Mode `json:"mode"`
}

// templates maps sentiment label, then theme, to five candidate titles. The
// slice index encodes specificity: earlier entries suit longer or more
// focused writing.
var templates = map[analysis.SentimentLabel]map[string][]string{
	analysis.LabelPositive: {
		"work":          {"Career Highlights", "Productive Day", "Work Wins", "Professional Growth", "Career Success"},
		"family":        {"Family Joy", "Home Sweet Home", "Loved Ones", "Family Moments", "Home Happiness"},
		"health":        {"Feeling Strong", "Wellness Journey", "Healthy Choices", "Health Wins", "Fitness Success"},
		"money":         {"Financial Progress", "Money Wins", "Budget Success", "Financial Growth", "Money Matters"},
		"relationships": {"Connection & Love", "Friendship Moments", "Social Joy", "Relationship Wins", "Social Success"},
		"travel":        {"Adventure Awaits", "Wanderlust", "Travel Dreams", "Journey Joy", "Adventure Time"},
		"creativity":    {"Creative Inspiration", "Artistic Flow", "Creative Breakthrough", "Artistic Success", "Creative Joy"},
		"learning":      {"Knowledge Gained", "Learning Journey", "Growth Mindset", "Learning Success", "Knowledge Wins"},
		"technology":    {"Tech Innovation", "Digital Progress", "Tech Solutions", "Digital Success", "Tech Wins"},
		"general":       {"Good Vibes", "Positive Day", "Grateful Moments", "Happy Times", "Joyful Day"},
	},
	analysis.LabelNegative: {
		"work":          {"Work Challenges", "Career Struggles", "Professional Hurdles", "Work Stress", "Career Concerns"},
		"family":        {"Family Stress", "Home Challenges", "Family Concerns", "Home Struggles", "Family Issues"},
		"health":        {"Health Struggles", "Wellness Challenges", "Health Concerns", "Fitness Struggles", "Health Issues"},
		"money":         {"Financial Stress", "Money Worries", "Budget Challenges", "Financial Concerns", "Money Struggles"},
		"relationships": {"Relationship Struggles", "Social Challenges", "Connection Issues", "Social Stress", "Relationship Concerns"},
		"travel":        {"Travel Disappointments", "Journey Challenges", "Adventure Setbacks", "Travel Stress", "Journey Concerns"},
		"creativity":    {"Creative Blocks", "Artistic Struggles", "Inspiration Drought", "Creative Challenges", "Artistic Concerns"},
		"learning":      {"Learning Challenges", "Knowledge Gaps", "Growth Struggles", "Learning Stress", "Knowledge Concerns"},
		"technology":    {"Tech Frustrations", "Digital Challenges", "Tech Problems", "Digital Stress", "Tech Concerns"},
		"general":       {"Tough Day", "Challenging Times", "Working Through It", "Difficult Day", "Struggling"},
	},
	analysis.LabelNeutral: {
		"work":          {"Work Reflections", "Career Thoughts", "Professional Musings", "Work Life", "Career Contemplation"},
		"family":        {"Family Life", "Home Thoughts", "Family Reflections", "Home Life", "Family Contemplation"},
		"health":        {"Health & Wellness", "Wellness Thoughts", "Health Reflections", "Health Life", "Wellness Contemplation"},
		"money":         {"Financial Thoughts", "Money Reflections", "Budget Musings", "Money Life", "Financial Contemplation"},
		"relationships": {"Relationship Thoughts", "Social Reflections", "Connection Musings", "Social Life", "Relationship Contemplation"},
		"travel":        {"Travel Thoughts", "Adventure Musings", "Journey Reflections", "Travel Life", "Adventure Contemplation"},
		"creativity":    {"Creative Thoughts", "Artistic Musings", "Creative Reflections", "Artistic Life", "Creative Contemplation"},
		"learning":      {"Learning Thoughts", "Knowledge Musings", "Growth Reflections", "Learning Life", "Knowledge Contemplation"},
		"technology":    {"Tech Thoughts", "Digital Musings", "Technology Reflections", "Digital Life", "Tech Contemplation"},
		"general":       {"Daily Reflections", "Thoughts & Feelings", "Processing My Day", "Daily Life", "Personal Contemplation"},
	},
}

// Local derives a title from the text deterministically. The template bank
// is keyed by sentiment and primary theme; the word count and theme spread
// pick the variant.
func Local(text string) Generated {
	sentiment := analysis.Score(text)
	themes := analysis.Themes(text)

	return Generated{
		Title:      pickTemplate(text, sentiment.Label, themes),
		Confidence: localConfidence,
		Mode:       insights.ModePrivate,
	}
}

func pickTemplate(text string, label analysis.SentimentLabel, themes []string) string {
	bank := templates[label]
	if bank == nil {
		bank = templates[analysis.LabelNeutral]
	}

	primary := "general"
	if len(themes) > 0 {
		primary = themes[0]
	}
	candidates, ok := bank[primary]
	if !ok {
		candidates = bank["general"]
	}

	wordCount := len(strings.Fields(text))
	switch {
	case wordCount > 100:
		return candidates[0]
	case len(themes) > 2:
		return candidates[1]
	case wordCount > 50:
		return candidates[2]
	default:
		return candidates[3]
	}
}

// Service generates titles honoring the privacy mode.
type Service struct {
	generator insights.Generator
	logger    *zap.Logger
}

// NewService creates a title service.
func NewService(generator insights.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

// Generate produces a title for the text. Private mode stays local; remote
// mode tries the model and degrades to the local template on any failure.
func (s *Service) Generate(ctx context.Context, text string, mode insights.Mode) Generated {
	if mode != insights.ModeGemini || !s.generator.Configured() {
		return Local(text)
	}

	sentiment := analysis.Score(text)
	themes := analysis.Themes(text)

	raw, err := s.generator.Generate(ctx, buildTitlePrompt(text, sentiment, themes), titleGenConfig)
	if err != nil {
		s.logger.Warn("remote title generation failed", zap.Error(err))
		return Local(text)
	}

	title := cleanTitle(raw)
	if title == "" || len(title) > maxTitleLength {
		s.logger.Warn("remote title rejected", zap.Int("length", len(title)))
		return Local(text)
	}

	return Generated{
		Title:      title,
		Confidence: remoteConfidence,
		Mode:       insights.ModeGemini,
	}
}

// cleanTitle strips the wrapping the model tends to add: surrounding quotes,
// brackets, and list numbering.
func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	title = strings.TrimPrefix(title, "[")
	title = strings.TrimSuffix(title, "]")

	// Leading "1. " style numbering.
	if i := strings.IndexByte(title, '.'); i > 0 && i < 4 {
		if _, isNum := parseDigits(title[:i]); isNum {
			title = strings.TrimSpace(title[i+1:])
		}
	}
	return strings.TrimSpace(title)
}

func parseDigits(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, len(s) > 0
}
