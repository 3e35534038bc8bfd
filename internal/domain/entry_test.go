package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
)

func TestSentimentValue_WireDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
	}{
		{"explicit score wins", `{"sentiment":{"score":0.5,"label":"positive"}}`, 0.5},
		{"explicit zero score kept", `{"sentiment":{"score":0,"label":"positive"}}`, 0},
		{"missing score positive label", `{"sentiment":{"label":"positive"}}`, 0.6},
		{"missing score negative label", `{"sentiment":{"label":"negative"}}`, -0.6},
		{"missing score neutral label", `{"sentiment":{"label":"neutral"}}`, 0},
		{"missing sentiment entirely", `{"text":"hello"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Entry
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &e))
			assert.InDelta(t, tt.want, e.SentimentValue(), 1e-9)
		})
	}
}

func TestSentimentValue_ConstructedEntryKeepsScore(t *testing.T) {
	e := Entry{Sentiment: analysis.Sentiment{Score: -0.5, Label: analysis.LabelNegative}}
	assert.InDelta(t, -0.5, e.SentimentValue(), 1e-9)
}

func TestSortedByCreatedAtAsc_CopiesAndOrders(t *testing.T) {
	entries := []Entry{{ID: "b", CreatedAt: 2}, {ID: "a", CreatedAt: 1}}

	sorted := SortedByCreatedAtAsc(entries)

	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", entries[0].ID)
}
