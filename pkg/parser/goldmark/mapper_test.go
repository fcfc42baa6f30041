package goldmark

import (
	"testing"

	"github.com/yaklabco/mdfoot/pkg/mdast"
	"github.com/yaklabco/mdfoot/pkg/serializer"
)

func kindsOf(nodes []*mdast.Node) []mdast.NodeKind {
	kinds := make([]mdast.NodeKind, 0, len(nodes))
	for _, n := range nodes {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

func TestMapper_Heading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   int
	}{
		{"h1", "# Heading 1", 1},
		{"h2", "## Heading 2", 2},
		{"h6", "###### Heading 6", 6},
		{"setext", "Heading\n===", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := parseString(t, FlavorCommonMark, tt.content)

			headings := mdast.FindByKind(snapshot.Root, mdast.NodeHeading)
			if len(headings) != 1 {
				t.Fatalf("expected 1 heading, got %d", len(headings))
			}
			if headings[0].Block.HeadingLevel != tt.level {
				t.Errorf("level = %d, want %d", headings[0].Block.HeadingLevel, tt.level)
			}
		})
	}
}

func TestMapper_Text(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "hello", "hello"},
		{"escapes resolved", `a\*b\[c`, "a*b[c"},
		{"entity resolved", "a &amp; b", "a & b"},
		{"numeric reference", "&#42;", "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := parseString(t, FlavorCommonMark, tt.content)

			var got string
			for _, n := range mdast.FindByKind(snapshot.Root, mdast.NodeText) {
				got += n.TextValue()
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapper_Breaks(t *testing.T) {
	snapshot := parseString(t, FlavorCommonMark, "a\nb\\\nc")

	para := snapshot.Root.FirstChild
	want := []mdast.NodeKind{
		mdast.NodeText, mdast.NodeSoftBreak,
		mdast.NodeText, mdast.NodeHardBreak,
		mdast.NodeText,
	}
	got := kindsOf(para.Children())
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %s, want %s", i, got[i], want[i])
		}
	}
	if para.FirstChild.TextValue() != "a" {
		t.Errorf("text before soft break = %q", para.FirstChild.TextValue())
	}
}

func TestMapper_List(t *testing.T) {
	snapshot := parseString(t, FlavorCommonMark, "3) a\n4) b\n")

	list := snapshot.Root.FirstChild
	if list.Kind != mdast.NodeList {
		t.Fatalf("expected list, got %s", list.Kind)
	}

	attrs := list.Block.List
	if !attrs.Ordered || attrs.StartNumber != 3 || attrs.Delimiter != ")" || !attrs.Tight {
		t.Errorf("list attrs = %+v", attrs)
	}
	if list.ChildCount() != 2 {
		t.Errorf("expected 2 items, got %d", list.ChildCount())
	}
	if list.Position == nil {
		t.Error("expected list position from its items")
	}
}

func TestMapper_CodeBlocks(t *testing.T) {
	fenced := parseString(t, FlavorCommonMark, "~~~sh\necho hi\n~~~\n").Root.FirstChild
	if fenced.Kind != mdast.NodeCodeBlock {
		t.Fatalf("expected code block, got %s", fenced.Kind)
	}
	if fenced.Block.CodeBlock.Info != "sh" || string(fenced.Block.CodeBlock.Value) != "echo hi\n" {
		t.Errorf("fenced attrs = %+v", fenced.Block.CodeBlock)
	}

	indented := parseString(t, FlavorCommonMark, "    x\n    y\n").Root.FirstChild
	if !indented.Block.CodeBlock.Indented || string(indented.Block.CodeBlock.Value) != "x\ny\n" {
		t.Errorf("indented attrs = %+v", indented.Block.CodeBlock)
	}
}

func TestMapper_HTML(t *testing.T) {
	snapshot := parseString(t, FlavorCommonMark, "<div>\nhi\n</div>\n\na <b>c</b>")

	block := snapshot.Root.FirstChild
	if block.Kind != mdast.NodeHTMLBlock || string(block.Block.Literal) != "<div>\nhi\n</div>\n" {
		t.Errorf("html block = %s %q", block.Kind, block.Block.Literal)
	}

	inline := mdast.FindByKind(snapshot.Root, mdast.NodeHTMLInline)
	if len(inline) != 2 || inline[0].TextValue() != "<b>" {
		t.Errorf("inline html = %d nodes", len(inline))
	}
}

func TestMapper_Links(t *testing.T) {
	snapshot := parseString(t, FlavorCommonMark, `[x](https://a.b "T") ![i](p.png) <https://c.d>`)

	links := mdast.FindByKind(snapshot.Root, mdast.NodeLink)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if got := links[0].Inline.Link; got.Destination != "https://a.b" || got.Title != "T" {
		t.Errorf("link attrs = %+v", got)
	}
	if got := links[1].Inline.Link; !got.Autolink || got.Destination != "https://c.d" {
		t.Errorf("autolink attrs = %+v", got)
	}

	images := mdast.FindByKind(snapshot.Root, mdast.NodeImage)
	if len(images) != 1 || images[0].Inline.Link.Destination != "p.png" {
		t.Errorf("unexpected images %v", images)
	}
}

func TestMapper_GFM(t *testing.T) {
	snapshot := parseString(t, FlavorGFM, "- [x] done\n\n~~gone~~\n\n| a |\n| - |\n| 1 |\n")

	checkbox := mdast.FindFirst(snapshot.Root, func(n *mdast.Node) bool {
		_, ok := n.Ext[serializer.ExtTaskCheckbox]
		return ok
	})
	if checkbox == nil || checkbox.Ext[serializer.ExtTaskCheckbox] != true {
		t.Error("expected checked task checkbox")
	}

	strike := mdast.FindFirst(snapshot.Root, func(n *mdast.Node) bool {
		_, ok := n.Ext[serializer.ExtStrikethrough]
		return ok
	})
	if strike == nil || strike.Kind != mdast.NodeEmphasis {
		t.Error("expected strikethrough emphasis")
	}

	table := snapshot.Root.LastChild
	if table.Kind != mdast.NodeRaw || table.Ext[ExtTable] != true {
		t.Fatalf("expected raw table, got %s", table.Kind)
	}
	if got := string(table.Text()); got != "| a |\n| - |\n| 1 |" {
		t.Errorf("table source = %q", got)
	}
}

func TestMapper_ParentChildRelationships(t *testing.T) {
	snapshot := parseString(t, FlavorCommonMark, "> a[^b]\n\n[^b]: *c*\n")

	err := mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		for child := n.FirstChild; child != nil; child = child.Next {
			if child.Parent != n {
				t.Errorf("%s child %s has wrong parent", n.Kind, child.Kind)
			}
			if child.Next != nil && child.Next.Prev != child {
				t.Errorf("broken sibling link after %s", child.Kind)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk error: %v", err)
	}

	ref := mdast.FindFirst(snapshot.Root, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeFootnoteReference
	})
	if ref == nil || ref.Parent.Kind != mdast.NodeParagraph || ref.Parent.Parent.Kind != mdast.NodeBlockquote {
		t.Error("reference should sit in the quoted paragraph")
	}
}
