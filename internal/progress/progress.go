// Package progress computes the garden gamification data: points, streaks,
// plant stages and milestone history. All functions take an explicit now so
// windowing is deterministic under test.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/domain"
)

// PlantStage is a gamified growth stage unlocked by cumulative points.
type PlantStage string

const (
	StageSeed    PlantStage = "seed"
	StageSprout  PlantStage = "sprout"
	StageSapling PlantStage = "sapling"
	StageBloom   PlantStage = "bloom"
)

// PointsPerEntry is the flat reward per journal entry.
const PointsPerEntry = 5

// stageThresholds lists stages in ascending point order.
var stageThresholds = []struct {
	stage  PlantStage
	points int
}{
	{StageSeed, 5},
	{StageSprout, 15},
	{StageSapling, 30},
	{StageBloom, 60},
}

// milestoneThresholds is the fixed sequence for the next-milestone display.
var milestoneThresholds = []int{5, 15, 30, 60, 100}

// streakWindowDays restricts the current-streak computation.
const streakWindowDays = 30

// GardenMilestone records when a stage was first earned.
type GardenMilestone struct {
	ID     int        `json:"id"`
	Title  string     `json:"title"`
	Date   string     `json:"date"`
	Points int        `json:"points"`
	Stage  PlantStage `json:"stage"`
}

// MonthlySentiment is one month's average sentiment on the 1-5 display scale.
type MonthlySentiment struct {
	Month     string  `json:"month"`
	Sentiment float64 `json:"sentiment"`
}

// Data is the full progress view for the current entry collection.
type Data struct {
	TotalPoints      int                `json:"totalPoints"`
	CurrentStreak    int                `json:"currentStreak"`
	NextMilestone    int                `json:"nextMilestone"`
	PlantStage       *PlantStage        `json:"plantStage"`
	MonthlyData      []MonthlySentiment `json:"monthlyData"`
	GardenCollection []GardenMilestone  `json:"gardenCollection"`
}

// Compute derives all progress data from the entry collection. An empty
// collection yields zeroed fields and empty slices.
func Compute(entries []domain.Entry, now time.Time) Data {
	totalPoints := len(entries) * PointsPerEntry
	return Data{
		TotalPoints:      totalPoints,
		CurrentStreak:    LongestStreak(entries, now.Add(-streakWindowDays*24*time.Hour), now),
		NextMilestone:    nextMilestone(totalPoints),
		PlantStage:       plantStage(totalPoints),
		MonthlyData:      monthlySentiment(entries),
		GardenCollection: gardenCollection(entries),
	}
}

// LongestStreak returns the longest run of calendar-consecutive days with at
// least one entry, restricted to entries created in [from, to]. Day
// boundaries are local calendar dates; multiple entries on one day count
// once.
func LongestStreak(entries []domain.Entry, from, to time.Time) int {
	seen := make(map[time.Time]bool)
	for _, e := range entries {
		ts := e.Time()
		if ts.Before(from) || ts.After(to) {
			continue
		}
		y, m, d := ts.Date()
		seen[time.Date(y, m, d, 0, 0, 0, 0, time.Local)] = true
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// plantStage returns the highest stage totalPoints meets, nil below seed.
func plantStage(totalPoints int) *PlantStage {
	var earned *PlantStage
	for i := range stageThresholds {
		if totalPoints >= stageThresholds[i].points {
			earned = &stageThresholds[i].stage
		}
	}
	return earned
}

// nextMilestone returns the smallest fixed threshold strictly greater than
// totalPoints, or totalPoints+20 once every threshold is passed.
func nextMilestone(totalPoints int) int {
	for _, threshold := range milestoneThresholds {
		if totalPoints < threshold {
			return threshold
		}
	}
	return totalPoints + 20
}

// gardenCollection walks entries oldest first, accumulating points and
// recording the timestamp of the entry whose cumulative total first reaches
// each stage threshold. Each stage is earned at most once.
func gardenCollection(entries []domain.Entry) []GardenMilestone {
	earnedAt := make(map[PlantStage]int64, len(stageThresholds))

	cumulative := 0
	for _, e := range domain.SortedByCreatedAtAsc(entries) {
		cumulative += PointsPerEntry
		for _, st := range stageThresholds {
			if _, done := earnedAt[st.stage]; !done && cumulative >= st.points {
				earnedAt[st.stage] = e.CreatedAt
			}
		}
	}

	collection := make([]GardenMilestone, 0, len(earnedAt))
	for _, st := range stageThresholds {
		ts, ok := earnedAt[st.stage]
		if !ok {
			continue
		}
		collection = append(collection, GardenMilestone{
			ID:     len(collection) + 1,
			Title:  capitalize(string(st.stage)),
			Date:   time.UnixMilli(ts).Format("Jan 2, 2006"),
			Points: st.points,
			Stage:  st.stage,
		})
	}
	return collection
}

// monthlySentiment groups entries by calendar month, averages sentiment
// (label fallback for missing scores), rescales [-1,1] to the 1-5 display
// scale and returns the most recent 3 months newest first.
func monthlySentiment(entries []domain.Entry) []MonthlySentiment {
	if len(entries) == 0 {
		return []MonthlySentiment{}
	}

	type monthAgg struct {
		start time.Time
		sum   float64
		n     int
	}
	groups := make(map[string]*monthAgg)
	for _, e := range entries {
		ts := e.Time()
		key := ts.Format("2006-01")
		agg, ok := groups[key]
		if !ok {
			agg = &monthAgg{start: time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.Local)}
			groups[key] = agg
		}
		agg.sum += e.SentimentValue()
		agg.n++
	}

	aggs := make([]*monthAgg, 0, len(groups))
	for _, agg := range groups {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].start.After(aggs[j].start) })
	if len(aggs) > 3 {
		aggs = aggs[:3]
	}

	data := make([]MonthlySentiment, 0, len(aggs))
	for _, agg := range aggs {
		avg := agg.sum / float64(agg.n)
		scaled := math.Max(1, math.Min(5, (avg+1)*2.5))
		data = append(data, MonthlySentiment{
			Month:     agg.start.Format("January"),
			Sentiment: math.Round(scaled*10) / 10,
		})
	}
	return data
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
