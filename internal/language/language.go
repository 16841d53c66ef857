package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Whisper accepts either ISO 639-1 codes or lowercase English names. These
// word forms and ISO 639-2/B codes are resolved before falling back to BCP 47
// parsing.
var aliases = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"fre":        "fr",
	"german":     "de",
	"ger":        "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"chi":        "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"dut":        "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// Canonical converts a language hint to the code handed to the recognizer.
// Empty input stays empty so the engine auto-detects. Unrecognized input is
// passed through lowercased.
func Canonical(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if mapped, ok := aliases[code]; ok {
		return mapped
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return code
	}
	base, confidence := tag.Base()
	if confidence == xlang.No {
		return code
	}
	return base.String()
}

// DisplayName returns the English name of a language code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	canonical := Canonical(trimmed)
	tag, err := xlang.Parse(canonical)
	if err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return cases.Title(xlang.English).String(name)
		}
	}
	return strings.ToUpper(trimmed)
}
