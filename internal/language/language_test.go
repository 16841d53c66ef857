package language

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{" es ", "es"},
		{"en-US", "en"},
		{"pt-BR", "pt"},
		{"english", "en"},
		{"French", "fr"},
		{"GERMAN", "de"},
		{"fre", "fr"},
		{"chi", "zh"},
		{"", ""},
		{" ", ""},
		{"not a language", "not a language"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"english", "English"},
		{"fr", "French"},
		{"", "Unknown"},
		{"   ", "Unknown"},
		{"not a language", "NOT A LANGUAGE"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
