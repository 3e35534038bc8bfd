package insights

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawInsight mirrors the model's JSON output with loose typing so that each
// record can be validated field by field before admission.
type rawInsight struct {
	Type        any `json:"type"`
	Takeaway    any `json:"takeaway"`
	Title       any `json:"title"`
	Description any `json:"description"`
	Actionable  any `json:"actionable"`
	Confidence  any `json:"confidence"`
}

// stripCodeFences removes a leading/trailing markdown code fence. Models
// frequently wrap JSON output in ```json blocks despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseModelInsights decodes and validates the model's insight array.
// Malformed records are dropped individually; a document that is not a JSON
// array at all is an error. When requireTakeaway is set (monthly), records
// without a string takeaway are dropped too.
func parseModelInsights(text string, requireTakeaway bool) ([]Insight, error) {
	cleaned := stripCodeFences(text)

	var raw []rawInsight
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("decode insight array: %w", err)
	}

	var out []Insight
	for _, r := range raw {
		title, okTitle := r.Title.(string)
		desc, okDesc := r.Description.(string)
		typ, okType := r.Type.(string)
		conf, okConf := r.Confidence.(float64)
		if !okTitle || !okDesc || !okType || typ == "" || !okConf {
			continue
		}

		takeaway, okTakeaway := r.Takeaway.(string)
		if requireTakeaway && !okTakeaway {
			continue
		}

		actionable, _ := r.Actionable.(string)
		out = append(out, Insight{
			Type:        typ,
			Takeaway:    takeaway,
			Title:       title,
			Description: desc,
			Actionable:  actionable,
			Confidence:  conf,
		})
	}
	return out, nil
}
