package goldmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// FuzzParse fuzzes the full parser with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"```\ncode\n```",
		"*emphasis* and **strong**",
		"[link](url) and ![image](src)",
		"Call.[^a]",
		"![^a]",
		"[^a]: b\nc\n\n    d",
		"[^a]:\n    ```\n    b\n    ```",
		`[^X\]Y]: z`,
		"[^a]: *",
		"b^[a] \\[^a]",
		"- [x] task\n\n| a |\n|---|\n| 1 |",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, flavor := range []string{FlavorCommonMark, FlavorGFM} {
			snapshot, err := New(flavor).Parse(context.Background(), "fuzz.md", data)
			if err != nil {
				t.Fatalf("%s: Parse() error = %v", flavor, err)
			}

			if !bytes.Equal(snapshot.Content, data) {
				t.Error("content mismatch")
			}
			if snapshot.Root == nil || snapshot.Root.Kind != mdast.NodeDocument {
				t.Fatal("expected document root")
			}

			walkErr := mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
				if n.File != snapshot {
					t.Error("node has incorrect File reference")
				}
				if n.Position != nil && !n.Position.IsValid() {
					t.Errorf("%s has invalid position %+v", n.Kind, n.Position)
				}
				if n.Position != nil && n.Position.End.Offset > len(data) {
					t.Errorf("%s ends past the input", n.Kind)
				}
				if n.Kind == mdast.NodeFootnoteReference || n.Kind == mdast.NodeFootnoteDefinition {
					if n.Footnote().Identifier == "" && n.Footnote().Label == "" {
						t.Errorf("%s without label", n.Kind)
					}
				}
				return nil
			})
			if walkErr != nil {
				t.Errorf("walk error: %v", walkErr)
			}
		}
	})
}

// FuzzParseDeterministic verifies that parsing is deterministic.
func FuzzParseDeterministic(f *testing.F) {
	seeds := []string{
		"# Hello",
		"*emphasis*",
		"- list",
		"x[^1]\n\n[^1]: y",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New(FlavorGFM)

		s1, err1 := p.Parse(context.Background(), "test.md", data)
		s2, err2 := p.Parse(context.Background(), "test.md", data)

		if (err1 == nil) != (err2 == nil) {
			t.Error("parsing should be deterministic")
			return
		}
		if err1 != nil {
			return
		}

		if countNodes(s1.Root) != countNodes(s2.Root) {
			t.Errorf("node count mismatch: %d vs %d", countNodes(s1.Root), countNodes(s2.Root))
		}
	})
}
