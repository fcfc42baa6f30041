// Package langdetect guesses the language of unlabelled code blocks so that
// dump output can annotate fenced code inside footnote definitions.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language could be determined.
const Unknown = "text"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// candidates bounds the classifier to languages commonly quoted in docs.
	candidates = []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
		"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Markdown",
		"Dockerfile",
	}

	// markers are checked before the classifier, first match wins.
	markers = []struct {
		lang  string
		match func(code, trimmed string) bool
	}{
		{"go", func(_, t string) bool { return strings.HasPrefix(t, "package ") }},
		{"python", func(c, _ string) bool {
			return strings.Contains(c, "__main__") || (strings.Contains(c, "def ") && strings.Contains(c, "):"))
		}},
		{"html", func(_, t string) bool {
			lower := strings.ToLower(t)
			return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
		}},
		{"json", func(_, t string) bool {
			return (strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")) && strings.Contains(t, `"`) &&
				(strings.HasSuffix(t, "}") || strings.HasSuffix(t, "]"))
		}},
		{"dockerfile", func(_, t string) bool {
			return strings.HasPrefix(t, "FROM ") && strings.Contains(t, "\nRUN ")
		}},
		{"sql", func(_, t string) bool {
			upper := strings.ToUpper(t)
			for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
				if strings.HasPrefix(upper, kw) {
					return true
				}
			}
			return false
		}},
		{"rust", func(c, _ string) bool {
			return strings.Contains(c, "fn main()") || strings.Contains(c, "println!")
		}},
		{"yaml", func(c, _ string) bool { return yamlPairs(c) >= 2 }},
	}
)

// Detect returns a fence tag for code and whether the guess is reliable.
// Shebangs and modelines are trusted, then a few unambiguous markers, then
// go-enry's classifier when it is confident.
func Detect(code []byte) (string, bool) {
	if len(bytes.TrimSpace(code)) == 0 {
		return Unknown, false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return fenceTag(lang), true
	}
	if lang, safe := enry.GetLanguageByModeline(code); safe {
		return fenceTag(lang), true
	}

	text := string(code)
	trimmed := strings.TrimSpace(text)
	for _, marker := range markers {
		if marker.match(text, trimmed) {
			return marker.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return fenceTag(lang), true
	}

	return Unknown, false
}

// fenceTag converts a linguist language name into the usual info string.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

// yamlPairs counts lines shaped like "key: value" or "- item".
func yamlPairs(code string) int {
	count := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "):
			count++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, "(){};") && !strings.HasPrefix(line, `"`):
			count++
		}
	}
	return count
}
