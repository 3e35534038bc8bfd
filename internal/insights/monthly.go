package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/domain"
	"github.com/fyrsmithlabs/verdant/internal/progress"
)

const (
	monthWindowDays = 30
	monthWindow     = monthWindowDays * 24 * time.Hour
	weekBucketCount = 4
)

// AggregateMonth computes the rolling 30-day aggregate with a comparison
// against the preceding 30-day window. An empty current window yields an
// all-zero result.
func AggregateMonth(entries []domain.Entry, now time.Time) MonthlyData {
	windowStart := now.Add(-monthWindow)
	prevStart := now.Add(-2 * monthWindow)

	var window, previous []domain.Entry
	for _, e := range entries {
		ts := e.Time()
		switch {
		case !ts.Before(windowStart):
			window = append(window, e)
		case !ts.Before(prevStart):
			previous = append(previous, e)
		}
	}

	if len(window) == 0 {
		return MonthlyData{
			Insights: []Insight{},
			MonthlyStats: MonthlyStats{
				TopThemes:         []ThemeCount{},
				WeeklyPatterns:    []WeekPattern{},
				SentimentOverTime: []DailySentiment{},
				DailyThemes:       []DailyThemes{},
				GrowthMetrics:     GrowthMetrics{SentimentTrend: TrendStable},
			},
		}
	}

	avg := meanSentiment(window)
	topThemes := topThemeCounts(window, 3, false)
	weekly := weeklyPatterns(window, windowStart, now)
	overTime, daily := dailySeries(window, windowStart)

	entriesDelta := len(window)
	if len(previous) > 0 {
		entriesDelta = len(window) - len(previous)
	}

	prevAvg := 0.0
	if len(previous) > 0 {
		prevAvg = meanSentiment(previous)
	}
	trend := TrendStable
	switch {
	case avg > prevAvg+0.1:
		trend = TrendImproving
	case avg < prevAvg-0.1:
		trend = TrendDeclining
	}

	streak := progress.LongestStreak(window, windowStart, now)

	metrics := GrowthMetrics{
		EntriesVsLastMonth: entriesDelta,
		SentimentTrend:     trend,
		HighestStreak:      streak,
	}

	return MonthlyData{
		Insights: monthlyInsights(len(window), metrics, topThemes, weekly),
		MonthlyStats: MonthlyStats{
			TotalEntries:      len(window),
			AverageSentiment:  avg,
			TopThemes:         topThemes,
			WeeklyPatterns:    weekly,
			SentimentOverTime: overTime,
			DailyThemes:       daily,
			GrowthMetrics:     metrics,
		},
	}
}

func meanSentiment(entries []domain.Entry) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.SentimentValue()
	}
	return sum / float64(len(entries))
}

// weeklyPatterns slices the 30-day window into four fixed 7-day buckets
// measured from the window start; the final bucket is clipped at now and so
// covers only the remaining days.
func weeklyPatterns(window []domain.Entry, windowStart, now time.Time) []WeekPattern {
	patterns := make([]WeekPattern, 0, weekBucketCount)
	for week := 0; week < weekBucketCount; week++ {
		bucketStart := windowStart.Add(time.Duration(week) * 7 * 24 * time.Hour)
		bucketEnd := bucketStart.Add(7 * 24 * time.Hour)
		if bucketEnd.After(now) {
			bucketEnd = now
		}

		var bucket []domain.Entry
		for _, e := range window {
			ts := e.Time()
			if !ts.Before(bucketStart) && ts.Before(bucketEnd) {
				bucket = append(bucket, e)
			}
		}

		sentiment := 0.0
		if len(bucket) > 0 {
			sentiment = meanSentiment(bucket)
		}
		patterns = append(patterns, WeekPattern{Week: week + 1, Entries: len(bucket), Sentiment: sentiment})
	}
	return patterns
}

// dailySeries produces the parallel 30-point sentiment and theme series, one
// point per calendar day from the window start. Days without entries are
// included with neutral sentiment and no themes.
func dailySeries(window []domain.Entry, windowStart time.Time) ([]DailySentiment, []DailyThemes) {
	type dayAgg struct {
		sum    float64
		n      int
		themes []string
		seen   map[string]bool
	}
	byDay := make(map[string]*dayAgg)
	for _, e := range window {
		key := e.Time().Format("2006-01-02")
		agg, ok := byDay[key]
		if !ok {
			agg = &dayAgg{seen: make(map[string]bool)}
			byDay[key] = agg
		}
		agg.sum += e.SentimentValue()
		agg.n++
		for _, theme := range e.Themes {
			if !agg.seen[theme] {
				agg.seen[theme] = true
				agg.themes = append(agg.themes, theme)
			}
		}
	}

	overTime := make([]DailySentiment, 0, monthWindowDays)
	daily := make([]DailyThemes, 0, monthWindowDays)
	for i := 0; i < monthWindowDays; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		agg := byDay[date]

		point := DailySentiment{Date: date}
		themes := DailyThemes{Date: date, Themes: []string{}}
		if agg != nil {
			point.Sentiment = agg.sum / float64(agg.n)
			point.Entries = agg.n
			themes.Themes = agg.themes
			themes.HasEntry = true
		}
		overTime = append(overTime, point)
		daily = append(daily, themes)
	}
	return overTime, daily
}

// monthlyInsights evaluates the fixed-priority monthly rules. Every insight
// carries a short takeaway label.
func monthlyInsights(totalEntries int, metrics GrowthMetrics, topThemes []ThemeCount, weekly []WeekPattern) []Insight {
	var out []Insight

	// Entry-count delta.
	switch {
	case metrics.EntriesVsLastMonth > 0:
		out = append(out, Insight{
			Type:        TypeGrowth,
			Takeaway:    "Growing Stronger!",
			Title:       "Deepening Practice",
			Description: fmt.Sprintf("You've written %d entries this month — %d more than last month. Your reflection practice is deepening.", totalEntries, metrics.EntriesVsLastMonth),
			Actionable:  "Consider what's driving this increased reflection and how to maintain this momentum.",
			Confidence:  0.9,
		})
	case metrics.EntriesVsLastMonth < 0:
		out = append(out, Insight{
			Type:        TypeGrowth,
			Takeaway:    "Quality Over Quantity",
			Title:       "Steady Growth",
			Description: fmt.Sprintf("You wrote %d entries this month. While fewer than last month, each entry still contributes to your growth.", totalEntries),
			Actionable:  "Focus on the quality of your reflections rather than the quantity.",
			Confidence:  0.8,
		})
	default:
		out = append(out, Insight{
			Type:        TypeConsistency,
			Takeaway:    "Steady Rhythm",
			Title:       "Consistent Practice",
			Description: fmt.Sprintf("You've maintained a steady rhythm with %d entries this month. Consistency is its own kind of wisdom.", totalEntries),
			Actionable:  "Your steady approach is building a strong foundation for deeper insights.",
			Confidence:  0.8,
		})
	}

	// Sentiment trend.
	switch metrics.SentimentTrend {
	case TrendImproving:
		out = append(out, Insight{
			Type:        TypeGrowth,
			Takeaway:    "Brighter Days!",
			Title:       "Emotional Growth",
			Description: "Your emotional landscape has brightened compared to last month. This shift suggests you're finding more balance and perspective.",
			Actionable:  "Reflect on what changes contributed to this positive shift and how to nurture them.",
			Confidence:  0.9,
		})
	case TrendDeclining:
		out = append(out, Insight{
			Type:        TypeReflection,
			Takeaway:    "Growth Through Challenge",
			Title:       "Navigating Difficult Times",
			Description: "This month brought more challenging moments. Remember that difficult periods often precede significant growth.",
			Actionable:  "Consider what support systems or coping strategies might help during tough times.",
			Confidence:  0.8,
		})
	default:
		out = append(out, Insight{
			Type:        TypePattern,
			Takeaway:    "Stable Foundation",
			Title:       "Emotional Stability",
			Description: "Your emotional state has remained steady this month. Stability can be a foundation for deeper exploration.",
			Actionable:  "Use this stable period to explore new areas of reflection or personal growth.",
			Confidence:  0.7,
		})
	}

	// Top theme spotlight.
	if len(topThemes) > 0 {
		top := topThemes[0]
		out = append(out, Insight{
			Type:        TypeTheme,
			Takeaway:    fmt.Sprintf("%s Focus!", capitalizeTheme(top.Theme)),
			Title:       "Thematic Concentration",
			Description: fmt.Sprintf("Your thoughts have centered around %s this month. This focus suggests an area of your life that's calling for attention.", top.Theme),
			Actionable:  fmt.Sprintf("Consider what this focus on %s is telling you about your current priorities.", top.Theme),
			Confidence:  0.8,
		})
	}

	// Weekly variance spotlight.
	busiest, quietest := weekly[0], weekly[0]
	for _, w := range weekly[1:] {
		if w.Entries > busiest.Entries {
			busiest = w
		}
		if w.Entries < quietest.Entries {
			quietest = w
		}
	}
	if busiest.Entries > 0 && quietest.Entries < busiest.Entries {
		out = append(out, Insight{
			Type:        TypePattern,
			Takeaway:    "Natural Rhythms",
			Title:       "Weekly Patterns",
			Description: fmt.Sprintf("Week %d was your most reflective period, while Week %d was quieter. These rhythms are natural and valuable.", busiest.Week, quietest.Week),
			Actionable:  fmt.Sprintf("Notice what conditions made Week %d more conducive to reflection.", busiest.Week),
			Confidence:  0.7,
		})
	}

	// Streak spotlight.
	switch {
	case metrics.HighestStreak >= 7:
		out = append(out, Insight{
			Type:        TypeConsistency,
			Takeaway:    "Remarkable Streak!",
			Title:       "Exceptional Momentum",
			Description: fmt.Sprintf("Your longest streak this month was %d days. This sustained momentum is building something beautiful.", metrics.HighestStreak),
			Actionable:  "Your consistent practice is creating a powerful habit that will serve you well.",
			Confidence:  0.9,
		})
	case metrics.HighestStreak >= 3:
		out = append(out, Insight{
			Type:        TypeConsistency,
			Takeaway:    "Building Momentum",
			Title:       "Growing Rhythm",
			Description: fmt.Sprintf("Your longest streak this month was %d days. You're finding a rhythm that works for you.", metrics.HighestStreak),
			Actionable:  "Continue building on this momentum while honoring your natural pace.",
			Confidence:  0.8,
		})
	case metrics.HighestStreak > 0:
		plural := "s"
		if metrics.HighestStreak == 1 {
			plural = ""
		}
		out = append(out, Insight{
			Type:        TypeGrowth,
			Takeaway:    "Every Day Counts!",
			Title:       "Growing Foundation",
			Description: fmt.Sprintf("Your longest streak this month was %d day%s. Each entry you write plants a seed for future growth.", metrics.HighestStreak, plural),
			Actionable:  "Consider what would make journaling feel more natural and sustainable for you.",
			Confidence:  0.7,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

func capitalizeTheme(theme string) string {
	if theme == "" {
		return theme
	}
	return strings.ToUpper(theme[:1]) + theme[1:]
}
