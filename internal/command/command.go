// Package command turns free-text player input into executable actions. It
// compiles command patterns into token trees, resolves the text between a
// pattern's fixed words against the entities visible to the player, and
// dispatches each successful parse to the handlers registered for it.
package command

import (
	"fmt"
	"strings"
)

// Definition describes a single command a player can give. A Definition is
// created with Define and is immutable afterwards; it is compared by pointer
// and is used as a key in a Registry.
type Definition struct {
	// Name is a short identifier for the command, such as "TAKE".
	Name string

	// Description is a one-line human readable summary of the command.
	Description string

	// Pattern is the template the command is matched against. Literal text
	// must appear as written, "{name}" and "{name:default}" are placeholders,
	// and anything within "[...]" is optional.
	Pattern string

	// Verbs are the synonyms that may be typed in place of a "{verb}"
	// placeholder. Earlier entries are tried first.
	Verbs []string

	// Args are the names of the placeholders, other than "object", whose
	// bindings are passed to handlers. A parse that does not bind every one
	// of them is not a match.
	Args []string

	// Examples are sample inputs shown in help output.
	Examples []string

	// Requires lists the capabilities a Kind must have to have handlers for
	// this command bound to it.
	Requires []Capability

	tree *Tree
}

// Define validates d and compiles its pattern, returning the new immutable
// Definition. A *CompilationError is returned if the pattern is invalid.
func Define(d Definition) (*Definition, error) {
	def := d
	def.Verbs = append([]string(nil), d.Verbs...)
	def.Args = append([]string(nil), d.Args...)
	def.Examples = append([]string(nil), d.Examples...)
	def.Requires = append([]Capability(nil), d.Requires...)

	tree, err := Compile(def.Pattern, def.Verbs)
	if err != nil {
		return nil, err
	}
	def.tree = tree

	return &def, nil
}

// MustDefine is the same as Define but panics if there is an error. It is
// meant for definitions built at program start.
func MustDefine(d Definition) *Definition {
	def, err := Define(d)
	if err != nil {
		panic(fmt.Sprintf("define command %q: %v", d.Name, err))
	}
	return def
}

// Tree returns the compiled pattern of the Definition.
func (def *Definition) Tree() *Tree {
	return def.tree
}

// HasObject returns whether the Definition's pattern has an "{object}"
// placeholder that handlers can be bound through.
func (def *Definition) HasObject() bool {
	return def.tree != nil && def.tree.binds(PlaceholderObject)
}

// HelpString gives the help text for the command: its description, the verbs
// that invoke it, and examples of its use if it has any.
func (def *Definition) HelpString() string {
	var sb strings.Builder
	sb.WriteString(def.Description)
	sb.WriteString(":\n  - ")
	sb.WriteString(strings.Join(def.Verbs, ", "))

	if len(def.Examples) > 0 {
		quoted := make([]string, len(def.Examples))
		for i := range def.Examples {
			quoted[i] = "\"" + def.Examples[i] + "\""
		}
		sb.WriteString("\n\n Ex: ")
		sb.WriteString(strings.Join(quoted, ", "))
	}

	return sb.String()
}

// HasVerb returns whether verb is one of the Definition's verbs. Case and
// surrounding space are ignored.
func (def *Definition) HasVerb(verb string) bool {
	verb = strings.Join(strings.Fields(verb), " ")
	for _, v := range def.Verbs {
		if strings.EqualFold(v, verb) {
			return true
		}
	}
	return false
}

func (def *Definition) String() string {
	if def.Name != "" {
		return def.Name
	}
	return def.Pattern
}
