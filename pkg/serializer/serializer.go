// Package serializer turns an mdast tree back into Markdown text.
//
// The serializer knows how to write the CommonMark and GFM constructs that the
// parser produces. Everything else is added through an Extension, which
// contributes a Handler per node kind and a list of EscapeRules consulted when
// plain text is written.
package serializer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdfoot/pkg/mdast"
)

// ErrUnknownNode is returned when no handler is registered for a node kind.
var ErrUnknownNode = errors.New("no handler for node")

// Handler renders a single node. The returned text has no trailing newline.
type Handler func(state *State, node *mdast.Node) (string, error)

// Extension bundles the handlers and escape rules contributed by a syntax
// extension.
type Extension struct {
	// Name identifies the extension in logs and errors.
	Name string

	// Handlers override or add rendering for node kinds.
	Handlers map[mdast.NodeKind]Handler

	// Escapes are appended after the built-in rules.
	Escapes []EscapeRule
}

// Options controls the markers chosen for constructs with several spellings.
type Options struct {
	// Bullet is the marker for unordered list items ('*', '-' or '+').
	Bullet byte

	// Fence is the character used for fenced code blocks ('`' or '~').
	Fence byte

	// Emphasis is the marker used for emphasis and strong ('*' or '_').
	Emphasis byte
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Bullet:   '*',
		Fence:    '`',
		Emphasis: '*',
	}
}

// Validate reports whether every marker is one Markdown accepts.
func (o Options) Validate() error {
	var errs []error
	if !strings.ContainsRune("*-+", rune(o.Bullet)) {
		errs = append(errs, fmt.Errorf("bullet %q: must be one of * - +", o.Bullet))
	}
	if o.Fence != '`' && o.Fence != '~' {
		errs = append(errs, fmt.Errorf("fence %q: must be ` or ~", o.Fence))
	}
	if o.Emphasis != '*' && o.Emphasis != '_' {
		errs = append(errs, fmt.Errorf("emphasis %q: must be * or _", o.Emphasis))
	}
	return errors.Join(errs...)
}

// Serializer renders trees. It is immutable after New and safe for concurrent use.
type Serializer struct {
	opts     Options
	handlers map[mdast.NodeKind]Handler
	escapes  []EscapeRule
}

// New creates a serializer with the built-in handlers plus the given extensions.
// Extensions are applied in order; a later handler for the same kind wins.
// Zero-valued options fall back to DefaultOptions.
func New(opts Options, extensions ...Extension) *Serializer {
	defaults := DefaultOptions()
	if opts.Bullet == 0 {
		opts.Bullet = defaults.Bullet
	}
	if opts.Fence == 0 {
		opts.Fence = defaults.Fence
	}
	if opts.Emphasis == 0 {
		opts.Emphasis = defaults.Emphasis
	}

	s := &Serializer{
		opts:     opts,
		handlers: baseHandlers(),
		escapes:  append([]EscapeRule(nil), baseEscapes...),
	}

	for _, ext := range extensions {
		for kind, handler := range ext.Handlers {
			s.handlers[kind] = handler
		}
		s.escapes = append(s.escapes, ext.Escapes...)
	}

	return s
}

// Options returns the options in effect.
func (s *Serializer) Options() Options {
	return s.opts
}

// EscapeRules returns the active escape rules in the order they are consulted.
func (s *Serializer) EscapeRules() []EscapeRule {
	return append([]EscapeRule(nil), s.escapes...)
}

// Serialize renders node as a Markdown document terminated by a newline.
func (s *Serializer) Serialize(node *mdast.Node) (string, error) {
	if node == nil {
		return "", nil
	}

	state := &State{serializer: s}
	out, err := state.Handle(node)
	if err != nil {
		return "", err
	}

	if out == "" || !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}
