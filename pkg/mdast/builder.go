package mdast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or position.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text node holding value.
func NewText(value string) *Node {
	node := NewNode(NodeText)
	node.Inline = NewInlineAttrs().WithText([]byte(value))
	return node
}

// NewFootnoteDefinition creates a definition with the given label and identifier.
// Children are appended by the caller.
func NewFootnoteDefinition(identifier, label string) *Node {
	node := NewNode(NodeFootnoteDefinition)
	node.Block = NewBlockAttrs().WithFootnote(&FootnoteAttrs{Identifier: identifier, Label: label})
	return node
}

// NewFootnoteReference creates a reference with the given label and identifier.
func NewFootnoteReference(identifier, label string) *Node {
	node := NewNode(NodeFootnoteReference)
	node.Inline = NewInlineAttrs().WithFootnote(&FootnoteAttrs{Identifier: identifier, Label: label})
	return node
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// A node has exactly one owner.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}

// TreeBuilder assembles a tree from a sequence of enter and exit calls.
// It holds the stack of open nodes for a single parse pass and must not be
// shared between passes.
type TreeBuilder struct {
	stack []*Node
}

// NewTreeBuilder returns a builder whose only open node is root.
func NewTreeBuilder(root *Node) *TreeBuilder {
	return &TreeBuilder{stack: []*Node{root}}
}

// Root returns the bottom of the stack.
func (b *TreeBuilder) Root() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[0]
}

// Current returns the innermost open node.
func (b *TreeBuilder) Current() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// Depth returns the number of open nodes, including the root.
func (b *TreeBuilder) Depth() int {
	return len(b.stack)
}

// Enter appends node to the current node and opens it.
func (b *TreeBuilder) Enter(node *Node) {
	AppendChild(b.Current(), node)
	b.stack = append(b.stack, node)
}

// Exit closes the current node and returns it.
// The root is never closed; Exit returns nil when only the root is open.
func (b *TreeBuilder) Exit() *Node {
	if len(b.stack) <= 1 {
		return nil
	}
	node := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return node
}

// Add appends a leaf to the current node without opening it.
func (b *TreeBuilder) Add(node *Node) {
	AppendChild(b.Current(), node)
}
