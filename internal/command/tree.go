package command

import (
	"fmt"
	"strings"
)

// NodeKind is the type of a node in a compiled Tree.
type NodeKind int

const (
	// FixedText matches its literal text exactly, ignoring case.
	FixedText NodeKind = iota

	// Optional matches its inner subtree or nothing at all; when it matches
	// nothing, the defaults of the placeholders within it are applied.
	Optional

	// VerbSet matches any one of the synonyms of a command's verb.
	VerbSet

	// ObjectRef matches text naming a visible entity.
	ObjectRef

	// ObjectInRef matches text naming a visible entity and narrows the
	// search for every other object in the command to that entity.
	ObjectInRef

	// StringArg matches any non-blank text.
	StringArg
)

func (nk NodeKind) String() string {
	switch nk {
	case FixedText:
		return "text"
	case Optional:
		return "opt"
	case VerbSet:
		return "verb"
	case ObjectRef:
		return "object"
	case ObjectInRef:
		return "object_in"
	case StringArg:
		return "string"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(nk))
	}
}

// Placeholder names recognized in patterns.
const (
	PlaceholderVerb      = "verb"
	PlaceholderObject    = "object"
	PlaceholderObjectIn  = "object_in"
	PlaceholderObjectArg = "object_arg"
	PlaceholderStringArg = "string_arg"
)

// DefaultValue is the value an optional placeholder takes when the text for
// it is omitted.
type DefaultValue int

const (
	// DefaultAny binds the first entity visible in the search context.
	DefaultAny DefaultValue = iota

	// DefaultRoom binds the room the player is in.
	DefaultRoom

	// DefaultNone binds nothing, but still counts as a binding.
	DefaultNone
)

func (dv DefaultValue) String() string {
	switch dv {
	case DefaultAny:
		return "any"
	case DefaultRoom:
		return "room"
	case DefaultNone:
		return "none"
	default:
		return fmt.Sprintf("DefaultValue(%d)", int(dv))
	}
}

// Default is a default directive for a single placeholder.
type Default struct {
	Name  string
	Value DefaultValue
}

// node is a single element of a Tree. Children are indexes into the nodes of
// the same Tree; -1 means no child, which only permits blank text on that
// side.
type node struct {
	kind       NodeKind
	literal    string
	synonyms   []string
	name       string
	defaults   []Default
	inner      int
	left       int
	right      int
	parseFirst bool
}

// Tree is a compiled pattern. Its nodes are stored in a single slice and refer
// to one another by index. A Tree is never modified after compilation and may
// be shared freely.
type Tree struct {
	nodes []node
	root  int
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// binds returns whether any node in the tree binds the placeholder with the
// given name.
func (t *Tree) binds(name string) bool {
	for i := range t.nodes {
		if t.nodes[i].name == name {
			return true
		}
	}
	return false
}

// String gives a canonical s-expression form of the tree, such as
// `(object (verb _ _) (opt[object_in=room] (text "from" _ (object_in _ _)) _ _))`.
func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb, t.root)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, idx int) {
	if idx < 0 {
		sb.WriteRune('_')
		return
	}
	n := t.nodes[idx]

	sb.WriteRune('(')
	sb.WriteString(n.kind.String())
	switch n.kind {
	case FixedText:
		sb.WriteString(fmt.Sprintf(" %q", n.literal))
	case Optional:
		if len(n.defaults) > 0 {
			sb.WriteRune('[')
			for i, d := range n.defaults {
				if i > 0 {
					sb.WriteRune(',')
				}
				sb.WriteString(d.Name + "=" + d.Value.String())
			}
			sb.WriteRune(']')
		}
		sb.WriteRune(' ')
		t.write(sb, n.inner)
	case ObjectRef:
		if n.name != PlaceholderObject {
			sb.WriteString(":" + n.name)
		}
	case StringArg:
		if n.name != PlaceholderStringArg {
			sb.WriteString(":" + n.name)
		}
	}
	sb.WriteRune(' ')
	t.write(sb, n.left)
	sb.WriteRune(' ')
	t.write(sb, n.right)
	sb.WriteRune(')')
}
