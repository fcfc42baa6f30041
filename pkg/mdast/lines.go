package mdast

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. CRLF endings are recognized and
// the last line, which has no newline, is always present (possibly empty).
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0
	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}
		newline := start + idx
		body := newline
		if body > start && content[body-1] == '\r' {
			body--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: body, EndOffset: newline + 1})
		start = newline + 1
	}

	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// PointAt converts a byte offset into a Point. Columns count bytes.
// Offsets outside the content are clamped to it.
func (f *FileSnapshot) PointAt(offset int) Point {
	offset = f.clamp(offset)
	if len(f.Lines) == 0 {
		return Point{Line: 1, Column: 1, Offset: offset}
	}

	idx := f.lineIndex(offset)
	return Point{Line: idx + 1, Column: offset - f.Lines[idx].StartOffset + 1, Offset: offset}
}

// SpanOf converts a byte range into a Span.
func (f *FileSnapshot) SpanOf(start, end int) *Span {
	return &Span{Start: f.PointAt(start), End: f.PointAt(end)}
}

// LineBounds returns the start offset of the line holding offset and the
// offset where that line's newline begins.
func (f *FileSnapshot) LineBounds(offset int) (int, int) {
	if len(f.Lines) == 0 {
		return 0, 0
	}
	line := f.Lines[f.lineIndex(f.clamp(offset))]
	return line.StartOffset, line.NewlineStart
}

// lineIndex returns the 0-based line holding offset. The end of the content
// belongs to the last line.
func (f *FileSnapshot) lineIndex(offset int) int {
	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	return min(idx, len(f.Lines)-1)
}

func (f *FileSnapshot) clamp(offset int) int {
	return max(0, min(offset, len(f.Content)))
}
