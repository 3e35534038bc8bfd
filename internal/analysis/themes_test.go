package analysis

import (
	"reflect"
	"testing"
)

func TestThemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single theme",
			text: "Long day at the office with back to back meetings",
			want: []string{"work"},
		},
		{
			name: "keyword must match a whole token",
			text: "working workers workplace", // no exact vocabulary tokens
			want: []string{"general"},
		},
		{
			name: "multiple themes in declaration order",
			text: "After the doctor visit I went home to my family and checked my savings at the bank",
			want: []string{"family", "health", "travel", "money"},
		},
		{
			name: "no matches falls back to general",
			text: "the quick brown fox jumps over the lazy dog",
			want: []string{"general"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{"general"},
		},
		{
			name: "punctuation stripped before matching",
			text: "Work, work, work!",
			want: []string{"work"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Themes(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Themes(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestThemes_NeverEmpty(t *testing.T) {
	texts := []string{"", " ", "zzz qqq", "12345", "!!!"}
	for _, text := range texts {
		if got := Themes(text); len(got) == 0 {
			t.Errorf("Themes(%q) returned empty set", text)
		}
	}
}

func TestThemes_DeclarationOrderNotFrequency(t *testing.T) {
	// "money" appears three times, "work" once, but work is declared first.
	got := Themes("money money money and one work meeting")
	want := []string{"work", "money"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Themes() = %v, want %v", got, want)
	}
}

func TestThemeVocabulary(t *testing.T) {
	vocab := ThemeVocabulary()
	if len(vocab) != 9 {
		t.Fatalf("vocabulary size = %d, want 9", len(vocab))
	}
	if vocab[0] != "work" || vocab[len(vocab)-1] != "money" {
		t.Errorf("vocabulary order unexpected: %v", vocab)
	}
}
