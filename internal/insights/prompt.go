package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/domain"
	"github.com/fyrsmithlabs/verdant/internal/gemini"
)

// Generation settings for the insight prompts.
var insightGenConfig = gemini.GenerationConfig{
	Temperature:     0.7,
	MaxOutputTokens: 800,
	TopP:            0.9,
	TopK:            40,
}

// entryDigest is the anonymized per-entry line shipped to the remote model.
// Themes, sentiment label, and weekday only; entry text never leaves the
// process through this path.
type entryDigest struct {
	themes    []string
	sentiment string
	dayOfWeek string
}

func digestEntries(window []domain.Entry) []entryDigest {
	digests := make([]entryDigest, 0, len(window))
	for _, e := range window {
		digests = append(digests, entryDigest{
			themes:    e.Themes,
			sentiment: string(e.Sentiment.Label),
			dayOfWeek: e.Time().Weekday().String(),
		})
	}
	return digests
}

func formatDailyPatterns(digests []entryDigest) string {
	lines := make([]string, 0, len(digests))
	for _, d := range digests {
		lines = append(lines, fmt.Sprintf("%s: %s mood, themes: %s", d.dayOfWeek, d.sentiment, strings.Join(d.themes, ", ")))
	}
	return strings.Join(lines, "; ")
}

// buildWeeklyPrompt renders the weekly enhancement prompt from the local
// aggregate and the anonymized entry digests.
func buildWeeklyPrompt(data WeeklyData, window []domain.Entry) string {
	themeParts := make([]string, 0, len(data.TopThemes))
	for _, t := range data.TopThemes {
		themeParts = append(themeParts, fmt.Sprintf("%s (%d%%)", t.Theme, t.Percentage))
	}

	return fmt.Sprintf(`Based on this user's weekly journaling data, generate 2-3 personalized, actionable insights that help them understand patterns in their life and make positive changes.

Weekly Data:
- Total entries: %d
- Top themes: %s
- Sentiment distribution: %d%% positive, %d%% neutral, %d%% negative
- Most active day: %s
- Average entry length: %d characters
- Daily patterns: %s

Requirements:
- Generate 2-3 insights maximum
- Each insight should be personalized and actionable
- Focus on patterns, connections, and gentle suggestions
- Tone should be supportive, non-judgmental, and encouraging
- Provide specific, actionable advice when possible
- Avoid generic advice - make it specific to their data
- Return as JSON array with this exact structure:
[
  {
    "type": "pattern|theme|sentiment|progress|reflection",
    "title": "Brief insight title",
    "description": "Detailed explanation of the insight",
    "actionable": "Specific action or reflection suggestion",
    "confidence": 0.8
  }
]

Examples of good insights:
- "You mentioned feeling most energized on days you had a morning walk. You also wrote about creative ideas more frequently during those weeks."
- "Your entries show a pattern of higher stress on Mondays. Consider starting your week with a calming routine."
- "You wrote about work challenges 4 times this week. What support systems might help you manage this stress?"

Examples to avoid:
- Generic advice like "Try to be more positive"
- Vague suggestions without specific actions
- Judgmental language about their feelings or choices`,
		data.TotalEntries,
		strings.Join(themeParts, ", "),
		data.SentimentTrend.Positive, data.SentimentTrend.Neutral, data.SentimentTrend.Negative,
		data.MostActiveDay,
		data.AverageEntryLength,
		formatDailyPatterns(digestEntries(window)),
	)
}

// buildMonthlyPrompt renders the monthly enhancement prompt.
func buildMonthlyPrompt(data MonthlyData, window []domain.Entry) string {
	stats := data.MonthlyStats

	themeParts := make([]string, 0, len(stats.TopThemes))
	for _, t := range stats.TopThemes {
		themeParts = append(themeParts, fmt.Sprintf("%s (%d mentions)", t.Theme, t.Count))
	}

	weekParts := make([]string, 0, len(stats.WeeklyPatterns))
	for _, w := range stats.WeeklyPatterns {
		weekParts = append(weekParts, fmt.Sprintf("Week %d: %d entries", w.Week, w.Entries))
	}

	delta := stats.GrowthMetrics.EntriesVsLastMonth
	deltaSign := ""
	if delta > 0 {
		deltaSign = "+"
	}

	return fmt.Sprintf(`Based on this user's monthly journaling data, generate 2-3 personalized, mentor-like insights that help them understand their growth journey and patterns over the past month.

Monthly Data:
- Total entries: %d
- Top themes: %s
- Sentiment trend: %s
- Highest streak: %d days
- Growth: %s%d entries vs last month
- Weekly patterns: %s
- Daily patterns: %s

Requirements:
- Generate 2 insights maximum
- Each insight should be mentor-like, holistic, and forward-looking
- Focus on growth patterns, life themes, and gentle guidance
- Tone should be wise, supportive, and encouraging like a mentor
- Provide specific, actionable advice when possible
- Avoid generic advice - make it specific to their data
- Return as JSON array with this exact structure:
[
  {
    "type": "growth|pattern|theme|consistency|reflection",
    "takeaway": "1-2 word encouraging label (e.g., 'Growing Stronger!', 'Work Can Wait', 'Exercise!')",
    "title": "Brief insight title",
    "description": "Detailed explanation of the insight",
    "actionable": "Specific action or reflection suggestion",
    "confidence": 0.8
  }
]

Examples of good insights:
- "Exercise! Exercise! Exercise! It seems like the days you exercise, you have a brighter mood and more energy for reflection."
- "Work Can Wait. You've found that work-related issues persist across weekends, suggesting a need for better boundaries."
- "Growing Stronger! Your consistency has improved this month, showing real commitment to your personal growth journey."

Examples to avoid:
- Generic advice like "Try to be more consistent"
- Vague suggestions without specific actions
- Judgmental language about their feelings or choices`,
		stats.TotalEntries,
		strings.Join(themeParts, ", "),
		stats.GrowthMetrics.SentimentTrend,
		stats.GrowthMetrics.HighestStreak,
		deltaSign, delta,
		strings.Join(weekParts, ", "),
		formatDailyPatterns(digestEntries(window)),
	)
}

// entriesSince returns the entries whose timestamp is within the trailing
// window ending at now.
func entriesSince(entries []domain.Entry, now time.Time, window time.Duration) []domain.Entry {
	cutoff := now.Add(-window)
	var out []domain.Entry
	for _, e := range entries {
		if !e.Time().Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
