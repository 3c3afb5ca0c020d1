package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRegistration is returned (wrapped) when a kind, definition, or
// handler cannot be added to a Registry.
var ErrInvalidRegistration = errors.New("invalid registration")

// Handler carries out a command. The returned string is shown to the player.
type Handler func(call Call) (string, error)

// Call is everything a Handler is given about the command it is carrying
// out.
type Call struct {
	// Player is the player who gave the command.
	Player Player

	// Target is the entity bound to the "object" placeholder. It is nil if
	// the command has no object or it took a "none" default.
	Target Entity

	// Verb is the verb synonym the player typed.
	Verb string

	// Objects and Strings are every binding made when parsing the command.
	Objects map[string]Entity
	Strings map[string]string

	// Args holds the binding of each of the Definition's Args, in order. Each
	// element is either an Entity or a string.
	Args []interface{}
}

// Object returns the entity bound to the named placeholder, or nil.
func (c Call) Object(name string) Entity {
	return c.Objects[name]
}

// Text returns the text bound to the named placeholder, or "".
func (c Call) Text(name string) string {
	return c.Strings[name]
}

type kindBinding struct {
	def      *Definition
	kind     *Kind
	handlers []Handler
}

type genericBinding struct {
	def      *Definition
	handlers []Handler
}

type instanceBinding struct {
	def      *Definition
	entity   Entity
	handlers []Handler
}

// Registry holds the known kinds and command definitions and the handlers
// bound for each. Kinds must be declared with Declare before any handler can
// be bound to them. The zero value is not ready for use; use NewRegistry.
type Registry struct {
	kinds      map[*Kind]bool
	kindOrder  []*Kind
	defs       []*Definition
	byKind     []*kindBinding
	generic    []*genericBinding
	instances  []*instanceBinding
	exclusions map[*Kind][]Entity
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds:      map[*Kind]bool{},
		exclusions: map[*Kind][]Entity{},
	}
}

// Declare makes kinds known to the registry. A kind's parent must already be
// declared, or be declared earlier in the same call. Declaring a kind twice
// has no effect.
func (reg *Registry) Declare(kinds ...*Kind) error {
	for _, k := range kinds {
		if k == nil {
			return fmt.Errorf("%w: nil kind", ErrInvalidRegistration)
		}
		if reg.kinds[k] {
			continue
		}
		if k.parent != nil && !reg.kinds[k.parent] {
			return fmt.Errorf("%w: kind %q declared before its parent %q", ErrInvalidRegistration, k.name, k.parent.name)
		}
		reg.kinds[k] = true
		reg.kindOrder = append(reg.kindOrder, k)
	}
	return nil
}

// Declared returns whether k has been declared.
func (reg *Registry) Declared(k *Kind) bool {
	return reg.kinds[k]
}

// Kinds returns every declared kind in the order it was declared.
func (reg *Registry) Kinds() []*Kind {
	return append([]*Kind(nil), reg.kindOrder...)
}

// Add makes definitions known to the registry without binding any handlers.
// Definitions are also added automatically when a handler is bound for them.
func (reg *Registry) Add(defs ...*Definition) {
	for _, d := range defs {
		if d != nil && !reg.known(d) {
			reg.defs = append(reg.defs, d)
		}
	}
}

func (reg *Registry) known(def *Definition) bool {
	for _, d := range reg.defs {
		if d == def {
			return true
		}
	}
	return false
}

// Commands returns every definition in the registry in the order it was
// added.
func (reg *Registry) Commands() []*Definition {
	return append([]*Definition(nil), reg.defs...)
}

// Lookup returns the definition that has verb as one of its verbs.
func (reg *Registry) Lookup(verb string) (*Definition, bool) {
	for _, d := range reg.defs {
		if d.HasVerb(verb) {
			return d, true
		}
	}
	return nil, false
}

// Help returns help text for the command with the given verb. If verb is
// empty or does not belong to any command, the help text of every command is
// given.
func (reg *Registry) Help(verb string) string {
	var results []string

	verb = strings.TrimSpace(verb)
	if verb != "" {
		if d, ok := reg.Lookup(verb); ok {
			return d.HelpString()
		}
		results = append(results, fmt.Sprintf("Couldn't find specific results matching '%s'...", strings.ToLower(verb)))
	}

	for _, d := range reg.defs {
		results = append(results, d.HelpString())
	}
	return strings.Join(results, "\n\n\n")
}

func (reg *Registry) checkBinding(def *Definition, h Handler) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidRegistration)
	}
	if def.tree == nil {
		return fmt.Errorf("%w: %s was not created with Define", ErrInvalidRegistration, def)
	}
	if h == nil {
		return fmt.Errorf("%w: nil handler for %s", ErrInvalidRegistration, def)
	}
	return nil
}

func (reg *Registry) checkKind(def *Definition, k *Kind) error {
	if k == nil {
		return fmt.Errorf("%w: nil kind for %s", ErrInvalidRegistration, def)
	}
	if !reg.kinds[k] {
		return fmt.Errorf("%w: kind %q has not been declared", ErrInvalidRegistration, k.name)
	}
	if !def.HasObject() {
		return fmt.Errorf("%w: %s has no object to bind to kind %q", ErrInvalidRegistration, def, k.name)
	}
	for _, c := range def.Requires {
		if !k.Has(c) {
			return fmt.Errorf("%w: kind %q lacks capability %q required by %s", ErrInvalidRegistration, k.name, c, def)
		}
	}
	return nil
}

// Handle binds h to be run when def is given with an object of Kind k or of
// any kind derived from k. Handlers bound for the same definition and kind run
// in the order they were bound.
func (reg *Registry) Handle(def *Definition, k *Kind, h Handler) error {
	if err := reg.checkBinding(def, h); err != nil {
		return err
	}
	if err := reg.checkKind(def, k); err != nil {
		return err
	}

	reg.Add(def)
	for _, b := range reg.byKind {
		if b.def == def && b.kind == k {
			b.handlers = append(b.handlers, h)
			return nil
		}
	}
	reg.byKind = append(reg.byKind, &kindBinding{def: def, kind: k, handlers: []Handler{h}})
	return nil
}

// HandleGeneric binds h to be run when def is given regardless of its object.
// The most recently bound generic handler for a definition runs first.
func (reg *Registry) HandleGeneric(def *Definition, h Handler) error {
	if err := reg.checkBinding(def, h); err != nil {
		return err
	}

	reg.Add(def)
	for _, b := range reg.generic {
		if b.def == def {
			b.handlers = append([]Handler{h}, b.handlers...)
			return nil
		}
	}
	reg.generic = append(reg.generic, &genericBinding{def: def, handlers: []Handler{h}})
	return nil
}

// HandleInstance binds h to be run when def is given with exactly e as its
// object. Instance handlers replace all kind and generic handlers that would
// otherwise have run for e.
func (reg *Registry) HandleInstance(def *Definition, e Entity, h Handler) error {
	if err := reg.checkBinding(def, h); err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: nil instance for %s", ErrInvalidRegistration, def)
	}
	if err := reg.checkKind(def, e.Kind()); err != nil {
		return err
	}

	reg.Add(def)
	for _, b := range reg.instances {
		if b.def == def && b.entity == e {
			b.handlers = append(b.handlers, h)
			return nil
		}
	}
	reg.instances = append(reg.instances, &instanceBinding{def: def, entity: e, handlers: []Handler{h}})
	return nil
}

// UnhandleInstance removes every instance handler bound for def and e.
func (reg *Registry) UnhandleInstance(def *Definition, e Entity) {
	var kept []*instanceBinding
	for _, b := range reg.instances {
		if b.def != def || b.entity != e {
			kept = append(kept, b)
		}
	}
	reg.instances = kept
}

// Exclude makes the given entities invisible when matching commands for
// handlers bound to Kind k.
func (reg *Registry) Exclude(k *Kind, es ...Entity) error {
	if k == nil || !reg.kinds[k] {
		return fmt.Errorf("%w: exclusion for undeclared kind %q", ErrInvalidRegistration, k.Name())
	}
	for _, e := range es {
		if e == nil {
			return fmt.Errorf("%w: nil entity excluded from kind %q", ErrInvalidRegistration, k.name)
		}
	}
	reg.exclusions[k] = append(reg.exclusions[k], es...)
	return nil
}

// Exclusions returns the entities excluded for Kind k.
func (reg *Registry) Exclusions(k *Kind) []Entity {
	return append([]Entity(nil), reg.exclusions[k]...)
}
