package postprocess

import "testing"

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"no block", "Fever of 39 °C.", "Fever of 39 °C."},
		{"think block", "<think>patient history</think>Mother alpha trait.", "Mother alpha trait."},
		{"multiline reasoning", "<reasoning>\nline 1\nline 2\n</reasoning>\nFather beta minor trait.", "Father beta minor trait."},
		{"two blocks", "<thinking>a</thinking>mid<think>b</think>", "mid"},
		{"cut off block", "Result<thinking>unfinished", "Result"},
		{"only cut off block", "<think>unfinished", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripReasoning(tt.input); got != tt.expected {
				t.Errorf("stripReasoning(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "No fence here", "No fence here"},
		{"bare fence", "```\nMild laryngomalacia.\n```", "Mild laryngomalacia."},
		{"tagged fence", "```text\nRecurrent bronchospasm.\n```", "Recurrent bronchospasm."},
		{"inline backticks untouched", "Use `code` here", "Use `code` here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFence(tt.input); got != tt.expected {
				t.Errorf("stripFence(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripPreamble(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"none", "Family history: none.", "Family history: none."},
		{"here is", "Here is the translation: Brother with mild laryngotracheomalacia.", "Brother with mild laryngotracheomalacia."},
		{"sure", "Sure, here's your translation: Done", "Done"},
		{"into language", "Translation into English: Done", "Done"},
		{"spanish", "Traducción: Antecedentes familiares", "Antecedentes familiares"},
		{"spanish long", "Aquí está la traducción al inglés: Family history", "Family history"},
		{"no colon", "Translation errors were not observed", "Translation errors were not observed"},
		{"not at start", "Note. Here is the translation: x", "Note. Here is the translation: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripPreamble(tt.input); got != tt.expected {
				t.Errorf("stripPreamble(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single rune", "\"", "\""},
		{"double quotes", "\"Negative for endogamy.\"", "Negative for endogamy."},
		{"guillemets", "«Sin antecedentes»", "Sin antecedentes"},
		{"curly quotes", "“No abortions.”", "No abortions."},
		{"mismatched", "\"open only", "\"open only"},
		{"two quotations", "\"a\" and \"b\"", "\"a\" and \"b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripQuotes(tt.input); got != tt.expected {
				t.Errorf("stripQuotes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	input := "<think>Spanish to English.</think>\nHere is the translation: \"Parents are not consanguineous.\""
	want := "Parents are not consanguineous."
	if got := Clean(input); got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}
