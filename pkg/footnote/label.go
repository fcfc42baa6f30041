package footnote

import (
	"strings"

	"golang.org/x/text/cases"
)

// MaxLabelSize is the longest label, in bytes, recognized between "[^" and "]".
const MaxLabelSize = 999

// Normalize returns the identifier for a label: runs of whitespace collapse to
// a single space, the ends are trimmed and the result is case folded, so that
// "Note A" and "note  a" name the same footnote.
func Normalize(label string) string {
	collapsed := strings.Join(strings.Fields(label), " ")
	return cases.Fold().String(collapsed)
}

// UnescapeLabel resolves backslash escapes of ASCII punctuation in a label as
// written in the source.
func UnescapeLabel(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && isASCIIPunct(raw[i+1]) {
			i++
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

// EscapeLabel writes label so that UnescapeLabel gives it back and the closing
// bracket of the footnote is not ended early.
func EscapeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c == ']' || c == '[':
			b.WriteByte('\\')
		case c == '\\' && (i+1 == len(label) || isASCIIPunct(label[i+1])):
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// ScanLabel finds the label that starts at index start of line, just after
// "[^". It returns the raw label and the index of the closing ']', or ok=false
// when the label is blank, too long or not closed on this line.
func ScanLabel(line []byte, start int) (raw string, closeAt int, ok bool) {
	for i := start; i < len(line); i++ {
		if i-start > MaxLabelSize {
			return "", 0, false
		}
		switch line[i] {
		case '\\':
			i++
		case '\n', '\r', '[':
			return "", 0, false
		case ']':
			raw = string(line[start:i])
			if strings.TrimSpace(raw) == "" {
				return "", 0, false
			}
			return raw, i, true
		}
	}
	return "", 0, false
}
