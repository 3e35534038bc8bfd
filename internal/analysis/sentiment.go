// Package analysis derives sentiment and themes from journal entry text.
// Both derivations are pure functions over the text: fixed lexicons and a
// fixed theme vocabulary, no I/O, no failure modes.
package analysis

import (
	"encoding/json"
	"math"
	"strings"
)

// SentimentLabel is the three-way classification of an entry's tone.
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNeutral  SentimentLabel = "neutral"
	LabelNegative SentimentLabel = "negative"
)

// Sentiment holds the continuous score and its label. Score stays within
// [-1, 1] for labeled extremes and within (-0.3, 0.3) unclamped for neutral.
type Sentiment struct {
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`

	// scoreMissing marks sentiments decoded from JSON without a numeric
	// score. An explicit zero is a real score, not a missing one.
	scoreMissing bool
}

// UnmarshalJSON records whether the score field was present so Value can
// fall back to the label only for sentiments that arrived without one.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Score *float64       `json:"score"`
		Label SentimentLabel `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Label = raw.Label
	s.scoreMissing = raw.Score == nil
	if raw.Score != nil {
		s.Score = *raw.Score
	} else {
		s.Score = 0
	}
	return nil
}

// Value returns the numeric score. Sentiments decoded without one take a
// label-derived value instead: positive 0.6, negative -0.6, neutral 0.
func (s Sentiment) Value() float64 {
	if !s.scoreMissing {
		return s.Score
	}
	switch s.Label {
	case LabelPositive:
		return 0.6
	case LabelNegative:
		return -0.6
	default:
		return 0
	}
}

// Label thresholds. Scores strictly beyond a threshold take that label and
// are clamped to the unit range; everything between stays neutral unclamped.
const (
	positiveThreshold = 0.3
	negativeThreshold = -0.3
)

// positionWeightSpan is how much extra weight the final token carries over
// the first, biasing the score toward the writer's concluding sentiment.
const positionWeightSpan = 0.5

// Weighted sentiment lexicons, graduated by intensity 1-3.
var positiveLexicon = map[string]float64{
	// mild
	"good": 1, "nice": 1, "fine": 1, "okay": 1, "like": 1, "enjoy": 1,
	"pleased": 1, "calm": 1, "content": 1, "hopeful": 1, "better": 1,
	// moderate
	"great": 2, "happy": 2, "love": 2, "beautiful": 2, "joyful": 2,
	"excited": 2, "proud": 2, "grateful": 2, "fun": 2, "glad": 2,
	// strong
	"amazing": 3, "wonderful": 3, "excellent": 3, "fantastic": 3,
	"awesome": 3, "incredible": 3, "thrilled": 3, "ecstatic": 3,
	"overjoyed": 3, "perfect": 3,
}

var negativeLexicon = map[string]float64{
	// mild
	"tired": -1, "annoyed": -1, "bored": -1, "dislike": -1, "upset": -1,
	"unhappy": -1, "down": -1, "meh": -1, "worse": -1,
	// moderate
	"bad": -2, "sad": -2, "angry": -2, "frustrated": -2, "disappointed": -2,
	"anxious": -2, "stressed": -2, "worried": -2, "hate": -2, "scared": -2,
	// strong
	"terrible": -3, "awful": -3, "horrible": -3, "devastated": -3,
	"miserable": -3, "worst": -3, "dreadful": -3, "heartbroken": -3,
	"hopeless": -3,
}

// Negation triggers invert the following lexicon word's contribution.
// Stored in post-tokenization form (apostrophes are stripped).
var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "dont": true, "didnt": true,
	"doesnt": true, "isnt": true, "wasnt": true, "cant": true, "wont": true,
	"couldnt": true, "wouldnt": true, "hardly": true, "barely": true,
}

// Intensifiers add 50% of the following lexicon word's weight again.
var intensifierWords = map[string]bool{
	"very": true, "really": true, "extremely": true, "so": true,
	"incredibly": true, "truly": true, "absolutely": true, "super": true,
	"deeply": true, "totally": true,
}

// Score derives sentiment for the given text. Empty or whitespace-only text
// scores exactly {0, neutral}.
func Score(text string) Sentiment {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return Sentiment{Score: 0, Label: LabelNeutral}
	}

	var sum float64
	for i, tok := range tokens {
		weight, ok := lexiconWeight(tok)
		if !ok {
			continue
		}

		contribution := weight * positionWeight(i, len(tokens))
		if i > 0 {
			switch {
			case negationWords[tokens[i-1]]:
				// Inversion: subtract twice the contribution, net -1x.
				contribution = -contribution
			case intensifierWords[tokens[i-1]]:
				contribution += 0.5 * contribution
			}
		}
		sum += contribution
	}

	// Length invariance: normalize by sqrt of token count so long entries
	// don't dominate on raw word volume.
	score := sum / math.Sqrt(float64(len(tokens)))

	switch {
	case score > positiveThreshold:
		return Sentiment{Score: math.Min(score, 1), Label: LabelPositive}
	case score < negativeThreshold:
		return Sentiment{Score: math.Max(score, -1), Label: LabelNegative}
	default:
		return Sentiment{Score: score, Label: LabelNeutral}
	}
}

// lexiconWeight looks up a token in both lexicons.
func lexiconWeight(tok string) (float64, bool) {
	if w, ok := positiveLexicon[tok]; ok {
		return w, true
	}
	if w, ok := negativeLexicon[tok]; ok {
		return w, true
	}
	return 0, false
}

// positionWeight increases linearly from 1.0 for the first token to 1.5 for
// the last.
func positionWeight(idx, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return 1.0 + positionWeightSpan*float64(idx)/float64(total-1)
}

// Tokenize lowercases, splits on whitespace and strips non-word characters
// from each token. Tokens that are pure punctuation are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}
