package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Point is a single place in a file.
// Line and Column are 1-based, Offset is the 0-based byte index.
type Point struct {
	Line   int
	Column int
	Offset int
}

// IsValid returns true if this point has valid (positive) line and column.
func (p Point) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// Span is the source extent of a node. End is exclusive.
type Span struct {
	Start Point
	End   Point
}

// IsValid returns true if both ends are valid and ordered.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start.Offset <= s.End.Offset
}

// IsSingleLine returns true if start and end are on the same line.
func (s Span) IsSingleLine() bool {
	return s.Start.Line == s.End.Line
}

// SourceRange returns the byte range covered by the span.
func (s Span) SourceRange() SourceRange {
	return SourceRange{StartOffset: s.Start.Offset, EndOffset: s.End.Offset}
}

// SourceRange returns the byte range for this node.
// Returns an empty range if the node has no position.
func (n *Node) SourceRange() SourceRange {
	if n.Position == nil {
		return SourceRange{}
	}
	return n.Position.SourceRange()
}

// Text returns the source text for this node.
// Returns nil if the node has no associated file or position.
func (n *Node) Text() []byte {
	if n.File == nil || n.Position == nil {
		return nil
	}

	r := n.SourceRange()
	if r.StartOffset < 0 || r.EndOffset > len(n.File.Content) || r.StartOffset > r.EndOffset {
		return nil
	}

	return n.File.Content[r.StartOffset:r.EndOffset]
}
