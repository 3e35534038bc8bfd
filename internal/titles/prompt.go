package titles

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
)

func buildTitlePrompt(text string, sentiment analysis.Sentiment, themes []string) string {
	return fmt.Sprintf(`Generate 1 specific, relevant, and emotionally resonant title for this journal entry. The title should capture the sentiment and themes while being concise and meaningful.

Entry Text: "%s"

Detected Sentiment: %s (score: %g)
Detected Themes: %s

Requirements:
- Title should be 2-6 words
- Capture the emotional tone and main themes
- Be specific to the content, not generic
- Avoid clichés and overly dramatic language
- Make it feel personal and authentic
- Return only the title string, no JSON formatting or quotes

Examples of good titles:
- "Tough Day at Work"
- "Struggles with Time Management"
- "Struggling to Find Peace Amidst Chaos"
- "Reflecting on Stressful Work Situation"
- "Dealing with Family Conflict"
- "Challenges in Personal Relationships"
- "Overcoming Creative Block"
- "Work-Life Balance Struggles"
- "Dealing with Financial Stress"
- "Handling Personal Health Issues"`,
		text,
		sentiment.Label, sentiment.Score,
		strings.Join(themes, ", "),
	)
}
