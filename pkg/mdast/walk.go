package mdast

import (
	"errors"
	"iter"
)

// WalkFunc is called by Walk for every node. A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// SkipChildren can be returned from a WalkFunc to skip the node's descendants.
var SkipChildren = errors.New("skip children")

// Walk visits root and its descendants in document order (pre-order).
// It returns the first error from walkFunc other than SkipChildren.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	err := walkFunc(root)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// All yields root and its descendants in document order.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		all(root, yield)
	}
}

func all(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !all(child, yield) {
			return false
		}
	}
	return true
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var found []*Node
	for n := range All(root) {
		if predicate(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for n := range All(root) {
		if predicate(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// LastPositioned returns the last child of n that carries a position, or nil.
func LastPositioned(n *Node) *Node {
	for child := n.LastChild; child != nil; child = child.Prev {
		if child.Position != nil {
			return child
		}
	}
	return nil
}
