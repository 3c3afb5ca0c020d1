package command

import (
	"fmt"
	"strings"
)

// CompilationError is returned when a pattern cannot be compiled.
type CompilationError struct {
	Pattern string
	Offset  int
	Reason  string
}

func (ce *CompilationError) Error() string {
	return fmt.Sprintf("pattern %q: at offset %d: %s", ce.Pattern, ce.Offset, ce.Reason)
}

type pieceKind int

const (
	pieceLiteral pieceKind = iota
	piecePlaceholder
	pieceOptional
)

// piece is a top-level element of a lexed pattern.
type piece struct {
	kind   pieceKind
	offset int

	// literal pieces
	text string

	// placeholder pieces
	name       string
	def        string
	hasDefault bool

	// optional pieces
	inner []piece
}

// lexPattern splits a pattern into pieces. Whitespace-only literal runs are
// separators and are dropped; other literal runs are trimmed.
func lexPattern(pattern string) ([]piece, error) {
	pieces, _, err := lexSequence(pattern, 0, -1)
	if err != nil {
		return nil, err
	}
	return pieces, nil
}

// lexSequence lexes pattern from pos until the end of the string or, if
// openedAt is not -1, until the ']' closing the group opened at openedAt. It
// returns the index just after the last consumed byte.
func lexSequence(pattern string, pos int, openedAt int) ([]piece, int, error) {
	var pieces []piece
	var lit strings.Builder
	litStart := pos

	flush := func() {
		text := strings.Join(strings.Fields(lit.String()), " ")
		if text != "" {
			pieces = append(pieces, piece{kind: pieceLiteral, offset: litStart, text: text})
		}
		lit.Reset()
	}

	for pos < len(pattern) {
		switch ch := pattern[pos]; ch {
		case '{':
			flush()
			end := strings.IndexAny(pattern[pos+1:], "{}[]")
			if end < 0 {
				return nil, pos, &CompilationError{Pattern: pattern, Offset: pos, Reason: "unterminated placeholder"}
			}
			if pattern[pos+1+end] != '}' {
				return nil, pos, &CompilationError{Pattern: pattern, Offset: pos + 1 + end, Reason: fmt.Sprintf("unexpected %q in placeholder", pattern[pos+1+end])}
			}
			body := pattern[pos+1 : pos+1+end]
			name, def, hasDef := strings.Cut(body, ":")
			name = strings.ToLower(strings.TrimSpace(name))
			def = strings.ToLower(strings.TrimSpace(def))
			if name == "" {
				return nil, pos, &CompilationError{Pattern: pattern, Offset: pos, Reason: "empty placeholder"}
			}
			pieces = append(pieces, piece{kind: piecePlaceholder, offset: pos, name: name, def: def, hasDefault: hasDef})
			pos += end + 2
			litStart = pos
		case '}':
			return nil, pos, &CompilationError{Pattern: pattern, Offset: pos, Reason: "unmatched '}'"}
		case '[':
			flush()
			inner, next, err := lexSequence(pattern, pos+1, pos)
			if err != nil {
				return nil, next, err
			}
			if len(inner) == 0 {
				return nil, pos, &CompilationError{Pattern: pattern, Offset: pos, Reason: "empty optional group"}
			}
			pieces = append(pieces, piece{kind: pieceOptional, offset: pos, inner: inner})
			pos = next
			litStart = pos
		case ']':
			if openedAt < 0 {
				return nil, pos, &CompilationError{Pattern: pattern, Offset: pos, Reason: "unmatched ']'"}
			}
			flush()
			return pieces, pos + 1, nil
		default:
			lit.WriteByte(ch)
			pos++
		}
	}

	if openedAt >= 0 {
		return nil, pos, &CompilationError{Pattern: pattern, Offset: openedAt, Reason: "unterminated optional group"}
	}
	flush()
	return pieces, pos, nil
}

type compiler struct {
	pattern string
	verbs   []string
	nodes   []node
	seen    map[string]bool
}

// Compile compiles pattern into a Tree. Any "{verb}" placeholder matches one
// of verbs.
//
// The most central literal of a sequence becomes the root of that sequence's
// subtree, with everything before and after it compiled into its left and
// right children; a sequence without literals is rooted at its most central
// element instead. Compiling the same pattern and verbs always gives the
// same Tree.
func Compile(pattern string, verbs []string) (*Tree, error) {
	pieces, err := lexPattern(pattern)
	if err != nil {
		return nil, err
	}
	if len(pieces) == 0 {
		return nil, &CompilationError{Pattern: pattern, Offset: 0, Reason: "empty pattern"}
	}

	c := &compiler{pattern: pattern, seen: map[string]bool{}}
	for _, v := range verbs {
		v = strings.Join(strings.Fields(v), " ")
		if v != "" {
			c.verbs = append(c.verbs, v)
		}
	}

	root, _, err := c.sequence(pieces, false)
	if err != nil {
		return nil, err
	}

	return &Tree{nodes: c.nodes, root: root}, nil
}

// sequence compiles a sequence of pieces and returns the index of the root
// node along with the defaults declared anywhere within it.
func (c *compiler) sequence(pieces []piece, inOptional bool) (int, []Default, error) {
	if len(pieces) == 0 {
		return -1, nil, nil
	}

	var literals []int
	for i := range pieces {
		if pieces[i].kind == pieceLiteral {
			literals = append(literals, i)
		}
	}
	anchor := len(pieces) / 2
	if len(literals) > 0 {
		anchor = literals[len(literals)/2]
	}

	left, leftDefs, err := c.sequence(pieces[:anchor], inOptional)
	if err != nil {
		return -1, nil, err
	}
	right, rightDefs, err := c.sequence(pieces[anchor+1:], inOptional)
	if err != nil {
		return -1, nil, err
	}

	n, defs, err := c.piece(pieces[anchor], inOptional)
	if err != nil {
		return -1, nil, err
	}
	n.left = left
	n.right = right
	n.parseFirst = n.parseFirst || c.isParseFirst(left) || c.isParseFirst(right)

	var allDefs []Default
	allDefs = append(allDefs, leftDefs...)
	allDefs = append(allDefs, defs...)
	allDefs = append(allDefs, rightDefs...)

	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1, allDefs, nil
}

func (c *compiler) isParseFirst(idx int) bool {
	return idx >= 0 && c.nodes[idx].parseFirst
}

// piece creates the node for a single piece. The node's children are left for
// the caller to set.
func (c *compiler) piece(p piece, inOptional bool) (node, []Default, error) {
	n := node{inner: -1, left: -1, right: -1}

	switch p.kind {
	case pieceLiteral:
		n.kind = FixedText
		n.literal = p.text
		return n, nil, nil
	case pieceOptional:
		inner, defs, err := c.sequence(p.inner, true)
		if err != nil {
			return n, nil, err
		}
		n.kind = Optional
		n.inner = inner
		n.defaults = defs
		n.parseFirst = c.isParseFirst(inner)
		return n, defs, nil
	}

	if c.seen[p.name] {
		return n, nil, c.errorf(p.offset, "duplicate placeholder %q", p.name)
	}
	c.seen[p.name] = true

	switch p.name {
	case PlaceholderVerb:
		if p.hasDefault {
			return n, nil, c.errorf(p.offset, "verb placeholder cannot have a default")
		}
		if len(c.verbs) == 0 {
			return n, nil, c.errorf(p.offset, "verb placeholder used but command has no verbs")
		}
		n.kind = VerbSet
		n.name = p.name
		n.synonyms = append([]string(nil), c.verbs...)
		return n, nil, nil
	case PlaceholderObject, PlaceholderObjectArg:
		n.kind = ObjectRef
	case PlaceholderObjectIn:
		n.kind = ObjectInRef
		n.parseFirst = true
	case PlaceholderStringArg:
		n.kind = StringArg
	default:
		return n, nil, c.errorf(p.offset, "unknown placeholder %q", p.name)
	}
	n.name = p.name

	if !p.hasDefault {
		return n, nil, nil
	}
	if !inOptional {
		return n, nil, c.errorf(p.offset, "default for %q outside of optional group", p.name)
	}

	var dv DefaultValue
	switch p.def {
	case "any":
		dv = DefaultAny
	case "room":
		dv = DefaultRoom
	case "none":
		dv = DefaultNone
	default:
		return n, nil, c.errorf(p.offset, "unknown default %q for %q", p.def, p.name)
	}
	if n.kind == StringArg && dv != DefaultNone {
		return n, nil, c.errorf(p.offset, "string placeholder %q can only default to none", p.name)
	}

	return n, []Default{{Name: p.name, Value: dv}}, nil
}

func (c *compiler) errorf(offset int, format string, a ...interface{}) *CompilationError {
	return &CompilationError{Pattern: c.pattern, Offset: offset, Reason: fmt.Sprintf(format, a...)}
}
