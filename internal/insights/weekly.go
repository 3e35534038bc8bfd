package insights

import (
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/domain"
)

const weekWindow = 7 * 24 * time.Hour

// AggregateWeek computes the rolling 7-day aggregate and its rule-based
// insights. Pure over (entries, now); an empty window yields a zeroed result
// with an empty insight list, never an error.
func AggregateWeek(entries []domain.Entry, now time.Time) WeeklyData {
	windowStart := now.Add(-weekWindow)
	var window []domain.Entry
	for _, e := range entries {
		if !e.Time().Before(windowStart) {
			window = append(window, e)
		}
	}

	if len(window) == 0 {
		return WeeklyData{
			WeekStart:      windowStart.Format("2006-01-02"),
			WeekEnd:        now.Format("2006-01-02"),
			TotalEntries:   0,
			Insights:       []Insight{},
			TopThemes:      []ThemeCount{},
			SentimentTrend: SentimentTrend{},
		}
	}

	first, last := window[0].Time(), window[0].Time()
	for _, e := range window[1:] {
		if e.Time().Before(first) {
			first = e.Time()
		}
		if e.Time().After(last) {
			last = e.Time()
		}
	}

	topThemes := topThemeCounts(window, 5, true)

	var counts struct{ positive, neutral, negative int }
	for _, e := range window {
		switch e.Sentiment.Label {
		case analysis.LabelPositive:
			counts.positive++
		case analysis.LabelNegative:
			counts.negative++
		default:
			counts.neutral++
		}
	}
	trend := SentimentTrend{
		Positive: roundPct(counts.positive, len(window)),
		Neutral:  roundPct(counts.neutral, len(window)),
		Negative: roundPct(counts.negative, len(window)),
	}

	mostActiveDay, mostActiveCount := mostActiveWeekday(window)

	totalLen := 0
	for _, e := range window {
		totalLen += utf8.RuneCountInString(e.Text)
	}
	avgLen := int(math.Round(float64(totalLen) / float64(len(window))))

	insights := weeklyInsights(entries, window, topThemes, trend, mostActiveDay, mostActiveCount, avgLen, counts.positive, now)

	// Highest confidence first; rule priority breaks ties.
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Confidence > insights[j].Confidence
	})

	return WeeklyData{
		WeekStart:          first.Format("2006-01-02"),
		WeekEnd:            last.Format("2006-01-02"),
		TotalEntries:       len(window),
		Insights:           insights,
		TopThemes:          topThemes,
		SentimentTrend:     trend,
		MostActiveDay:      mostActiveDay,
		AverageEntryLength: avgLen,
	}
}

// weeklyInsights evaluates the fixed-priority rule list. Each rule appends
// at most one insight.
func weeklyInsights(all, window []domain.Entry, topThemes []ThemeCount, trend SentimentTrend, mostActiveDay string, mostActiveCount, avgLen, positiveCount int, now time.Time) []Insight {
	var out []Insight

	// Theme dominance.
	if len(topThemes) > 0 && topThemes[0].Percentage >= 50 {
		top := topThemes[0]
		out = append(out, Insight{
			Type:        TypeTheme,
			Title:       fmt.Sprintf("Focused on %s", top.Theme),
			Description: fmt.Sprintf("%d%% of your entries this week were about %s.", top.Percentage, top.Theme),
			Actionable:  "Consider exploring other aspects of your life to maintain balance.",
			Confidence:  0.8,
		})
	}

	// Sentiment: positive and negative branches are mutually exclusive.
	if trend.Positive >= 70 {
		out = append(out, Insight{
			Type:        TypeSentiment,
			Title:       "Positively Charged Week",
			Description: fmt.Sprintf("%d%% of your entries had a positive tone this week.", trend.Positive),
			Actionable:  "Keep up the positive momentum! Consider what contributed to this upbeat week.",
			Confidence:  0.9,
		})
	} else if trend.Negative >= 50 {
		out = append(out, Insight{
			Type:        TypeSentiment,
			Title:       "Challenging Week",
			Description: fmt.Sprintf("%d%% of your entries reflected difficult times.", trend.Negative),
			Actionable:  "Consider what support systems or coping strategies might help.",
			Confidence:  0.8,
		})
	}

	// Writing volume.
	if len(window) >= 5 {
		out = append(out, Insight{
			Type:        TypePattern,
			Title:       "Consistent Writing Habit",
			Description: fmt.Sprintf("You wrote %d entries this week, showing great consistency.", len(window)),
			Actionable:  "Your journaling habit is strong - keep it up!",
			Confidence:  0.9,
		})
	} else if len(window) >= 3 {
		out = append(out, Insight{
			Type:        TypePattern,
			Title:       "Regular Reflection",
			Description: fmt.Sprintf("You wrote %d entries this week.", len(window)),
			Actionable:  "Consider setting a daily reminder to maintain this reflection practice.",
			Confidence:  0.7,
		})
	}

	// Entry depth.
	if avgLen > 500 {
		out = append(out, Insight{
			Type:        TypePattern,
			Title:       "Deep Reflections",
			Description: fmt.Sprintf("Your entries averaged %d characters, showing thoughtful reflection.", avgLen),
			Actionable:  "Your detailed writing helps capture nuanced thoughts and feelings.",
			Confidence:  0.8,
		})
	}

	// Day pattern.
	if mostActiveDay != "" && mostActiveCount >= 2 {
		out = append(out, Insight{
			Type:        TypePattern,
			Title:       fmt.Sprintf("Most Active on %ss", mostActiveDay),
			Description: fmt.Sprintf("You wrote %d entries on %ss this week.", mostActiveCount, mostActiveDay),
			Actionable:  fmt.Sprintf("Consider what makes %ss a good day for reflection.", mostActiveDay),
			Confidence:  0.7,
		})
	}

	// Week-over-week progress. Fires only in the improving direction; there
	// is intentionally no symmetric decline branch.
	prevStart := now.Add(-2 * weekWindow)
	prevEnd := now.Add(-weekWindow)
	prevPositive, prevTotal := 0, 0
	for _, e := range all {
		ts := e.Time()
		if ts.Before(prevStart) || !ts.Before(prevEnd) {
			continue
		}
		prevTotal++
		if e.Sentiment.Label == analysis.LabelPositive {
			prevPositive++
		}
	}
	if prevTotal > 0 && positiveCount > prevPositive {
		out = append(out, Insight{
			Type:        TypeProgress,
			Title:       "Improving Mood",
			Description: "You had more positive entries this week compared to last week.",
			Actionable:  "Reflect on what changes contributed to this improvement.",
			Confidence:  0.8,
		})
	}

	return out
}

// topThemeCounts tallies theme mentions in first-seen order, then orders by
// count descending (stable, so ties keep first-seen order) and keeps limit.
func topThemeCounts(window []domain.Entry, limit int, withPercentage bool) []ThemeCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range window {
		for _, theme := range e.Themes {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}

	themes := make([]ThemeCount, 0, len(order))
	for _, theme := range order {
		tc := ThemeCount{Theme: theme, Count: counts[theme]}
		if withPercentage {
			tc.Percentage = roundPct(counts[theme], len(window))
		}
		themes = append(themes, tc)
	}
	sort.SliceStable(themes, func(i, j int) bool { return themes[i].Count > themes[j].Count })
	if len(themes) > limit {
		themes = themes[:limit]
	}
	return themes
}

// mostActiveWeekday groups entries by weekday name; ties resolve to the
// first-seen day in entry order.
func mostActiveWeekday(window []domain.Entry) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, e := range window {
		day := e.Time().Weekday().String()
		if counts[day] == 0 {
			order = append(order, day)
		}
		counts[day]++
	}

	best, bestCount := "", 0
	for _, day := range order {
		if counts[day] > bestCount {
			best, bestCount = day, counts[day]
		}
	}
	return best, bestCount
}

func roundPct(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
