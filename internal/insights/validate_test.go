package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelInsights_StripsCodeFences(t *testing.T) {
	text := "```json\n[{\"type\":\"pattern\",\"title\":\"T\",\"description\":\"D\",\"confidence\":0.8}]\n```"

	got, err := parseModelInsights(text, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T", got[0].Title)
}

func TestParseModelInsights_DropsMalformedRecords(t *testing.T) {
	text := `[
		{"type":"pattern","title":"Good","description":"D","actionable":"A","confidence":0.8},
		{"type":"pattern","title":42,"description":"D","confidence":0.8},
		{"type":"","title":"NoType","description":"D","confidence":0.8},
		{"type":"pattern","title":"NoConfidence","description":"D","confidence":"high"},
		{"type":"pattern","title":"NoDescription","confidence":0.8}
	]`

	got, err := parseModelInsights(text, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Good", got[0].Title)
	assert.Equal(t, "A", got[0].Actionable)
	assert.InDelta(t, 0.8, got[0].Confidence, 1e-9)
}

func TestParseModelInsights_TakeawayRequired(t *testing.T) {
	text := `[
		{"type":"growth","takeaway":"Onward!","title":"Keep","description":"D","confidence":0.9},
		{"type":"growth","title":"Drop","description":"D","confidence":0.9}
	]`

	got, err := parseModelInsights(text, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Onward!", got[0].Takeaway)

	// Without the requirement both survive.
	got, err = parseModelInsights(text, false)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseModelInsights_NotAnArray(t *testing.T) {
	_, err := parseModelInsights(`{"type":"pattern"}`, false)
	assert.Error(t, err)

	_, err = parseModelInsights("plain prose response", false)
	assert.Error(t, err)
}

func TestParseModelInsights_EmptyArray(t *testing.T) {
	got, err := parseModelInsights("[]", false)
	require.NoError(t, err)
	assert.Empty(t, got)
}
