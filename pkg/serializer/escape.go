package serializer

import "strings"

// EscapeRule decides whether a character in plain text needs a backslash.
type EscapeRule struct {
	// Name identifies the rule.
	Name string

	// Char is the byte the rule applies to.
	Char byte

	// Match reports whether the byte at index i of the context must be escaped.
	// It is only called when ctx.Text[i] == Char.
	Match func(ctx EscapeContext, i int) bool
}

// EscapeContext is the text being escaped, together with where it sits.
type EscapeContext struct {
	// Text is the line context of the value: the output already written
	// before it in the same container, the unescaped value itself, and the
	// siblings that follow. Rules index into Text.
	Text string

	// AtLineStart reports whether Text begins at the start of a line.
	AtLineStart bool
}

// BeginsLine reports whether index i is preceded only by up to three spaces of
// indentation on its line.
func (c EscapeContext) BeginsLine(i int) bool {
	spaces := 0
	for j := i - 1; j >= 0; j-- {
		switch c.Text[j] {
		case ' ':
			spaces++
		case '\n':
			return spaces <= 3
		default:
			return false
		}
	}
	return c.AtLineStart && spaces <= 3
}

// Safe escapes text so that it reads back as the same literal characters.
// Each byte receives at most one backslash; the first matching rule decides.
func (s *State) Safe(text string, atLineStart bool) string {
	return escape(s.serializer.escapes, EscapeContext{Text: text, AtLineStart: atLineStart})
}

// MatchingRule returns the first rule in rules that escapes the byte at index i,
// or nil when the byte is left alone.
func MatchingRule(rules []EscapeRule, ctx EscapeContext, i int) *EscapeRule {
	c := ctx.Text[i]
	for k := range rules {
		if rules[k].Char == c && rules[k].Match(ctx, i) {
			return &rules[k]
		}
	}
	return nil
}

func escape(rules []EscapeRule, ctx EscapeContext) string {
	return escapeRange(rules, ctx, 0, len(ctx.Text))
}

// escapeRange escapes ctx.Text[start:end], consulting the whole of ctx.Text.
func escapeRange(rules []EscapeRule, ctx EscapeContext, start, end int) string {
	var b strings.Builder
	b.Grow(end - start)

	for i := start; i < end; i++ {
		if MatchingRule(rules, ctx, i) != nil {
			b.WriteByte('\\')
		}
		b.WriteByte(ctx.Text[i])
	}

	return b.String()
}

func always(EscapeContext, int) bool { return true }

func atLineStart(ctx EscapeContext, i int) bool { return ctx.BeginsLine(i) }

// baseEscapes covers the CommonMark and GFM constructs the built-in handlers write.
//
//nolint:gochecknoglobals // Read-only rule table.
var baseEscapes = []EscapeRule{
	{Name: "backslash", Char: '\\', Match: always},
	{Name: "emphasis", Char: '*', Match: always},
	{Name: "emphasis", Char: '_', Match: always},
	{Name: "code", Char: '`', Match: always},
	{Name: "strikethrough", Char: '~', Match: always},
	{Name: "html", Char: '<', Match: always},
	{Name: "character-reference", Char: '&', Match: characterReference},
	{Name: "link", Char: '[', Match: linkLike},
	{Name: "heading", Char: '#', Match: atLineStart},
	{Name: "blockquote", Char: '>', Match: atLineStart},
	{Name: "list", Char: '-', Match: atLineStart},
	{Name: "list", Char: '+', Match: atLineStart},
	{Name: "setext", Char: '=', Match: atLineStart},
	{Name: "ordered-list", Char: '.', Match: orderedMarker},
	{Name: "ordered-list", Char: ')', Match: orderedMarker},
}

// characterReference matches '&' that starts something entity-shaped.
func characterReference(ctx EscapeContext, i int) bool {
	if i+1 >= len(ctx.Text) {
		return false
	}
	next := ctx.Text[i+1]
	return next == '#' || isAlnum(next)
}

// linkLike matches '[' whose closing bracket is followed by '(' or '['.
func linkLike(ctx EscapeContext, i int) bool {
	end := closingBracket(ctx.Text, i)
	if end < 0 || end+1 >= len(ctx.Text) {
		return false
	}
	next := ctx.Text[end+1]
	return next == '(' || next == '['
}

// orderedMarker matches '.' or ')' that follows one to nine digits at line start.
func orderedMarker(ctx EscapeContext, i int) bool {
	j := i
	for j > 0 && isDigit(ctx.Text[j-1]) {
		j--
	}
	digits := i - j
	return digits > 0 && digits <= 9 && ctx.BeginsLine(j)
}

// ClosingBracket returns the index of the unescaped ']' that closes the '['
// at index open, or -1. The search stops at a line ending or another '['.
func ClosingBracket(text string, open int) int {
	return closingBracket(text, open)
}

func closingBracket(text string, open int) int {
	for j := open + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '\n', '[':
			return -1
		case ']':
			return j
		}
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
