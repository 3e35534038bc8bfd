// Package insights aggregates journal entries into weekly and monthly
// insight reports, and blends the local heuristic baseline with optional
// remote model output under the user's privacy mode.
package insights

// Mode selects between local-only analysis and remote enhancement.
type Mode string

const (
	// ModePrivate computes everything locally.
	ModePrivate Mode = "private"
	// ModeGemini enhances the local baseline with remote model insights.
	// The wire name predates the provider abstraction.
	ModeGemini Mode = "gemini"
)

// Insight is one heuristic or model-generated observation.
type Insight struct {
	Type        string  `json:"type"`
	Takeaway    string  `json:"takeaway,omitempty"` // monthly only: 1-2 word label
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Actionable  string  `json:"actionable,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Insight type values. Weekly insights draw from the first five; monthly
// insights use growth/pattern/theme/consistency/reflection.
const (
	TypePattern     = "pattern"
	TypeTheme       = "theme"
	TypeSentiment   = "sentiment"
	TypeProgress    = "progress"
	TypeReflection  = "reflection"
	TypeGrowth      = "growth"
	TypeConsistency = "consistency"
)

// ThemeCount is a theme's frequency within a window. Percentage is the share
// of window entries mentioning the theme (weekly only).
type ThemeCount struct {
	Theme      string `json:"theme"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage,omitempty"`
}

// SentimentTrend is the label distribution as independently rounded
// percentages. The buckets sum to roughly 100, not exactly.
type SentimentTrend struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// WeeklyData is the rolling 7-day aggregate.
type WeeklyData struct {
	WeekStart          string         `json:"weekStart"`
	WeekEnd            string         `json:"weekEnd"`
	TotalEntries       int            `json:"totalEntries"`
	Insights           []Insight      `json:"insights"`
	TopThemes          []ThemeCount   `json:"topThemes"`
	SentimentTrend     SentimentTrend `json:"sentimentTrend"`
	MostActiveDay      string         `json:"mostActiveDay"`
	AverageEntryLength int            `json:"averageEntryLength"`
}

// WeekPattern is one fixed 7-day slice of the monthly window.
type WeekPattern struct {
	Week      int     `json:"week"`
	Entries   int     `json:"entries"`
	Sentiment float64 `json:"sentiment"`
}

// DailySentiment is one calendar day of the 30-point sentiment series.
// Days without entries carry neutral sentiment and a zero count.
type DailySentiment struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Sentiment float64 `json:"sentiment"`
	Entries   int     `json:"entries"`
}

// DailyThemes is one calendar day of the theme series for heatmap views. A
// day with multiple entries unions their theme sets.
type DailyThemes struct {
	Date     string   `json:"date"` // YYYY-MM-DD
	Themes   []string `json:"themes"`
	HasEntry bool     `json:"hasEntry"`
}

// SentimentDirection classifies the month-over-month sentiment movement.
type SentimentDirection string

const (
	TrendImproving SentimentDirection = "improving"
	TrendStable    SentimentDirection = "stable"
	TrendDeclining SentimentDirection = "declining"
)

// GrowthMetrics compares the current 30-day window with the preceding one.
type GrowthMetrics struct {
	EntriesVsLastMonth int                `json:"entriesVsLastMonth"`
	SentimentTrend     SentimentDirection `json:"sentimentTrend"`
	HighestStreak      int                `json:"highestStreak"`
}

// MonthlyStats are the rolling 30-day statistics.
type MonthlyStats struct {
	TotalEntries      int              `json:"totalEntries"`
	AverageSentiment  float64          `json:"averageSentiment"`
	TopThemes         []ThemeCount     `json:"topThemes"`
	WeeklyPatterns    []WeekPattern    `json:"weeklyPatterns"`
	SentimentOverTime []DailySentiment `json:"sentimentOverTime"`
	DailyThemes       []DailyThemes    `json:"dailyThemes"`
	GrowthMetrics     GrowthMetrics    `json:"growthMetrics"`
}

// MonthlyData is the rolling 30-day aggregate.
type MonthlyData struct {
	Insights     []Insight    `json:"insights"`
	MonthlyStats MonthlyStats `json:"monthlyStats"`
}

// WeeklyResult is the blended weekly response.
type WeeklyResult struct {
	WeeklyData
	Mode        Mode   `json:"mode"`
	GeneratedAt string `json:"generatedAt"`
	Error       string `json:"error,omitempty"`
}

// MonthlyResult is the blended monthly response.
type MonthlyResult struct {
	MonthlyData
	Mode        Mode   `json:"mode"`
	GeneratedAt string `json:"generatedAt"`
	Error       string `json:"error,omitempty"`
}
