package normalize

import "testing"

const (
	// "Créme" with a combining acute accent (decomposed form).
	decomposed = "Cre\u0301me"
	// "Créme" with a precomposed é.
	composed = "Cr\u00e9me"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "The Go Programming Language", "The Go Programming Language"},
		{"collapses whitespace", "The  Go\tProgramming\nLanguage", "The Go Programming Language"},
		{"trims edges", "  Brian Kernighan  ", "Brian Kernighan"},
		{"recomposes decomposed accents", decomposed, composed},
		{"drops control characters", "Title\x00 Here", "Title Here"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.expected {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "DUNE", "dune"},
		{"strips accents", "Crème Brûlée", "creme brulee"},
		{"composed accents fold", composed, "creme"},
		{"decomposed accents fold", decomposed, "creme"},
		{"collapses whitespace", "A  Tale", "a tale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFoldEquivalence(t *testing.T) {
	if Fold(composed) != Fold(decomposed) {
		t.Error("expected composed and decomposed forms to fold equal")
	}
}
