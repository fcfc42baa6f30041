package format

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// Verification reports whether a document survives parse, serialize, parse.
type Verification struct {
	Path string

	// Stable is true when the reparsed tree has the same outline as the
	// original and a second serialization is byte-identical to the first.
	Stable bool

	// Mismatch describes the first difference found, if any.
	Mismatch string

	Result *Result
}

// Verify formats content, reparses the output and compares the two trees.
func (f *Formatter) Verify(ctx context.Context, path string, content []byte) (*Verification, error) {
	first, err := f.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	result, err := f.Format(ctx, path, content)
	if err != nil {
		return nil, err
	}

	second, err := f.Parse(ctx, path, result.Formatted)
	if err != nil {
		return nil, err
	}

	verification := &Verification{Path: path, Stable: true, Result: result}

	before, after := Outline(first.Root), Outline(second.Root)
	if before != after {
		verification.Stable = false
		verification.Mismatch = firstDifference(before, after)
		return verification, nil
	}

	again, err := f.Format(ctx, path, result.Formatted)
	if err != nil {
		return nil, err
	}
	if again.Changed() {
		verification.Stable = false
		verification.Mismatch = "second pass changed the output"
	}

	return verification, nil
}

// Outline renders the structure of a tree that must survive a round trip:
// node kinds, footnote identifiers and literal content. Positions are left
// out and adjacent text nodes are merged.
func Outline(root *mdast.Node) string {
	var b strings.Builder
	outline(&b, root, 0)
	return b.String()
}

func outline(b *strings.Builder, n *mdast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(n.Kind.String())
	describe(b, n)
	b.WriteByte('\n')

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind != mdast.NodeText {
			outline(b, child, depth+1)
			continue
		}
		run := child.TextValue()
		for child.Next != nil && child.Next.Kind == mdast.NodeText {
			child = child.Next
			run += child.TextValue()
		}
		fmt.Fprintf(b, "%s  Text %q\n", indent, run)
	}
}

func describe(b *strings.Builder, n *mdast.Node) {
	if attrs := n.Footnote(); attrs != nil {
		fmt.Fprintf(b, " id=%q", attrs.Identifier)
		return
	}
	if n.Block != nil {
		if n.Block.HeadingLevel > 0 {
			fmt.Fprintf(b, " level=%d", n.Block.HeadingLevel)
		}
		if code := n.Block.CodeBlock; code != nil {
			fmt.Fprintf(b, " info=%q value=%q", code.Info, code.Value)
		}
		if list := n.Block.List; list != nil && list.Ordered {
			fmt.Fprintf(b, " start=%d", list.StartNumber)
		}
	}
	if n.Inline != nil {
		if link := n.Inline.Link; link != nil {
			fmt.Fprintf(b, " dest=%q title=%q", link.Destination, link.Title)
		}
		if n.Kind == mdast.NodeCodeSpan {
			fmt.Fprintf(b, " %q", n.Inline.Text)
		}
	}
}

func firstDifference(before, after string) string {
	a, b := strings.Split(before, "\n"), strings.Split(after, "\n")
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return fmt.Sprintf("node %d: %s became %s", i+1, strings.TrimSpace(a[i]), strings.TrimSpace(b[i]))
		}
	}
	return fmt.Sprintf("tree had %d nodes, reparsed tree has %d", len(a)-1, len(b)-1)
}
