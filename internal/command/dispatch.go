package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dekarrin/quill/internal/match"
)

// DefaultMaxTies is the most candidates a single registration can produce
// when objects in the input match more than one entity equally well.
const DefaultMaxTies = 16

// ScopeType is how a handler was bound.
type ScopeType int

const (
	GenericScope ScopeType = iota
	KindScope
	InstanceScope
)

func (st ScopeType) String() string {
	switch st {
	case GenericScope:
		return "generic"
	case KindScope:
		return "kind"
	case InstanceScope:
		return "instance"
	default:
		return fmt.Sprintf("ScopeType(%d)", int(st))
	}
}

// Scope identifies the registration a candidate came from.
type Scope struct {
	Type     ScopeType
	Kind     *Kind
	Instance Entity
}

func (s Scope) String() string {
	switch s.Type {
	case KindScope:
		return "kind:" + s.Kind.Name()
	case InstanceScope:
		return fmt.Sprintf("instance:%v", s.Instance)
	default:
		return s.Type.String()
	}
}

// Action runs one bound handler of a candidate.
type Action func() (string, error)

// Candidate is one possible interpretation of player input.
type Candidate struct {
	// Command is the definition the input matched.
	Command *Definition

	// Level is how well the input matched.
	Level match.Level

	// Scope is the registration whose handlers won for this interpretation.
	Scope Scope

	// Target is the entity bound to the "object" placeholder, if any.
	Target Entity

	Verb    string
	Objects map[string]Entity
	Strings map[string]string

	// Actions are the handlers to run, in order, with every argument already
	// bound.
	Actions []Action

	handlers []Handler
}

// Run runs every action of the candidate in order and joins their output
// with newlines. It stops at the first action to return an error.
func (c Candidate) Run() (string, error) {
	var outputs []string
	for _, act := range c.Actions {
		out, err := act()
		if err != nil {
			return strings.Join(outputs, "\n"), err
		}
		if out != "" {
			outputs = append(outputs, out)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

// Result is the outcome of evaluating a line of input.
type Result struct {
	// Level is the level every candidate matched at. If it is match.NoMatch,
	// there are no candidates.
	Level match.Level

	// Candidates are the surviving interpretations, in order of first
	// discovery.
	Candidates []Candidate
}

// Ambiguous returns whether more than one interpretation survived.
func (r Result) Ambiguous() bool {
	return len(r.Candidates) > 1
}

// Dispatcher evaluates player input against every registration in a
// Registry.
type Dispatcher struct {
	// Registry holds the commands and handlers input is evaluated against.
	Registry *Registry

	// SelfWords are the words that refer to the focus object. If nil,
	// DefaultSelfWords is used.
	SelfWords []string

	// MaxSteps is the step budget of each parse attempt. If zero,
	// DefaultMaxSteps is used.
	MaxSteps int

	// MaxTies caps how many candidates one registration produces for tied
	// objects. If zero, DefaultMaxTies is used.
	MaxTies int

	// Log receives debug output of each evaluation. If nil, nothing is
	// logged.
	Log *zap.Logger
}

// NewDispatcher creates a Dispatcher for reg that logs to log.
func NewDispatcher(reg *Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{Registry: reg, Log: log}
}

func (d *Dispatcher) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Evaluate parses text as a command from player and returns every best
// interpretation of it. Objects are searched for in the player's inventory
// and room, in each of extras, and in focus; the words in SelfWords refer to
// focus.
//
// Every kind-bound registration is tried with only entities of that kind
// visible, every generic registration with all entities visible, and every
// instance registration with only that instance visible. Only the candidates
// at the best level found are kept. Candidates of the same command with the
// same bindings are then merged so that instance handlers replace all others
// and kind handlers of the most specific kind run before generic handlers.
// Across commands, a target claimed by a registration of a more specific kind
// is only offered through that registration.
func (d *Dispatcher) Evaluate(text string, player Player, focus Entity, extras ...Entity) Result {
	reg := d.Registry
	log := d.log()

	base := NewSearchContext(player, focus, extras...)
	if d.SelfWords != nil {
		base = base.WithSelfWords(d.SelfWords)
	}

	best := match.NoMatch
	var kept []Candidate
	consider := func(cands []Candidate) {
		for _, c := range cands {
			if c.Level > best {
				best = c.Level
				kept = []Candidate{c}
			} else if c.Level == best && best != match.NoMatch {
				kept = append(kept, c)
			}
		}
	}

	for _, b := range reg.byKind {
		ctx := base.WithKind(b.kind).Excluding(reg.exclusions[b.kind]...)
		scope := Scope{Type: KindScope, Kind: b.kind}
		cands := d.attempt(text, b.def, ctx, scope, b.handlers)

		var valid []Candidate
		for _, c := range cands {
			if c.Target == nil || !c.Target.Kind().Is(b.kind) {
				continue
			}
			valid = append(valid, c)
		}
		consider(valid)
	}

	for _, b := range reg.generic {
		cands := d.attempt(text, b.def, base, Scope{Type: GenericScope}, b.handlers)
		consider(cands)
	}

	for _, b := range reg.instances {
		ctx := base.LimitTo(b.entity)
		scope := Scope{Type: InstanceScope, Kind: b.entity.Kind(), Instance: b.entity}
		cands := d.attempt(text, b.def, ctx, scope, b.handlers)

		var valid []Candidate
		for _, c := range cands {
			if c.Target != b.entity {
				continue
			}
			valid = append(valid, c)
		}
		consider(valid)
	}

	if best == match.NoMatch {
		log.Debug("no match", zap.String("input", text))
		return Result{Level: match.NoMatch}
	}

	merged := mergeTies(preferSpecific(kept))
	for i := range merged {
		merged[i].bind(player)
	}

	log.Debug("evaluated input",
		zap.String("input", text),
		zap.Stringer("level", best),
		zap.Int("candidates", len(merged)),
	)

	return Result{Level: best, Candidates: merged}
}

// attempt parses text for a single registration and returns a candidate for
// each way of resolving its tied objects.
func (d *Dispatcher) attempt(text string, def *Definition, ctx SearchContext, scope Scope, handlers []Handler) []Candidate {
	log := d.log()

	b, ok, err := def.tree.ParseWithBudget(text, ctx, d.MaxSteps)
	if err != nil {
		if errors.Is(err, ErrStepBudget) {
			log.Warn("parse abandoned", zap.String("command", def.String()), zap.Stringer("scope", scope), zap.Error(err))
		}
		return nil
	}
	if !ok {
		return nil
	}

	for _, arg := range def.Args {
		if !b.Has(arg) {
			log.Debug("missing argument", zap.String("command", def.String()), zap.String("arg", arg))
			return nil
		}
	}

	log.Debug("matched",
		zap.String("command", def.String()),
		zap.Stringer("scope", scope),
		zap.Stringer("level", b.Level),
		zap.Int("readings", 1+len(b.Alternatives)),
	)

	maxTies := d.MaxTies
	if maxTies <= 0 {
		maxTies = DefaultMaxTies
	}

	readings := append([]Bindings{b}, b.Alternatives...)

	var cands []Candidate
	for _, r := range readings {
		for _, objs := range expandTies(r.Objects, r.Ties, maxTies) {
			if len(cands) >= maxTies {
				return cands
			}
			cands = append(cands, Candidate{
				Command:  def,
				Level:    r.Level,
				Scope:    scope,
				Target:   objs[PlaceholderObject],
				Verb:     r.Verb,
				Objects:  objs,
				Strings:  r.Strings,
				handlers: append([]Handler(nil), handlers...),
			})
		}
	}
	return cands
}

// expandTies gives one copy of objs for every combination of tied entities,
// up to max copies. Combinations are ordered by placeholder name and then by
// the order each entity was found in.
func expandTies(objs map[string]Entity, ties map[string][]Entity, max int) []map[string]Entity {
	var names []string
	for name := range ties {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []map[string]Entity{copyObjects(objs)}
	for _, name := range names {
		var next []map[string]Entity
		for _, base := range combos {
			for _, e := range ties[name] {
				if len(next) >= max {
					break
				}
				m := copyObjects(base)
				m[name] = e
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos
}

func copyObjects(objs map[string]Entity) map[string]Entity {
	m := make(map[string]Entity, len(objs))
	for k, v := range objs {
		m[k] = v
	}
	return m
}

// preferSpecific drops every kind-bound candidate whose target is also the
// target of a candidate bound to a more specific kind, whatever command that
// candidate is for. Generic and instance candidates are kept as they are.
func preferSpecific(cands []Candidate) []Candidate {
	closest := map[Entity]int{}
	for _, c := range cands {
		if c.Scope.Type != KindScope || c.Target == nil {
			continue
		}
		dist := c.Target.Kind().distance(c.Scope.Kind)
		if cur, ok := closest[c.Target]; !ok || dist < cur {
			closest[c.Target] = dist
		}
	}

	kept := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Scope.Type == KindScope && c.Target != nil {
			if c.Target.Kind().distance(c.Scope.Kind) > closest[c.Target] {
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept
}

func sameBindings(a, b Candidate) bool {
	if a.Command != b.Command || len(a.Objects) != len(b.Objects) || len(a.Strings) != len(b.Strings) {
		return false
	}
	for k, v := range a.Objects {
		if other, ok := b.Objects[k]; !ok || other != v {
			return false
		}
	}
	for k, v := range a.Strings {
		if other, ok := b.Strings[k]; !ok || other != v {
			return false
		}
	}
	return true
}

// mergeTies combines candidates that are the same command with the same
// bindings into one candidate each, keeping the order in which each was first
// seen.
func mergeTies(cands []Candidate) []Candidate {
	var groups [][]Candidate
	for _, c := range cands {
		placed := false
		for i := range groups {
			if sameBindings(groups[i][0], c) {
				groups[i] = append(groups[i], c)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []Candidate{c})
		}
	}

	merged := make([]Candidate, len(groups))
	for i := range groups {
		merged[i] = mergeGroup(groups[i])
	}
	return merged
}

// mergeGroup picks the handlers that run for a group of candidates that all
// mean the same thing. Instance handlers win outright. Otherwise the handlers
// of the most specific kind run, followed by any generic ones.
func mergeGroup(group []Candidate) Candidate {
	var instances, kinds, generics []Candidate
	for _, c := range group {
		switch c.Scope.Type {
		case InstanceScope:
			instances = append(instances, c)
		case KindScope:
			kinds = append(kinds, c)
		default:
			generics = append(generics, c)
		}
	}

	if len(instances) > 0 {
		return combine(instances)
	}

	if len(kinds) > 0 {
		closest := -1
		for _, c := range kinds {
			dist := c.Target.Kind().distance(c.Scope.Kind)
			if closest < 0 || dist < closest {
				closest = dist
			}
		}
		var specific []Candidate
		for _, c := range kinds {
			if c.Target.Kind().distance(c.Scope.Kind) == closest {
				specific = append(specific, c)
			}
		}
		out := combine(specific)
		for _, g := range generics {
			out.handlers = append(out.handlers, g.handlers...)
		}
		return out
	}

	return combine(generics)
}

// combine returns the first candidate with the handlers of all of them.
func combine(cands []Candidate) Candidate {
	out := cands[0]
	out.handlers = nil
	for _, c := range cands {
		out.handlers = append(out.handlers, c.handlers...)
	}
	return out
}

// bind creates the candidate's actions from its handlers.
func (c *Candidate) bind(player Player) {
	call := Call{
		Player:  player,
		Target:  c.Target,
		Verb:    c.Verb,
		Objects: c.Objects,
		Strings: c.Strings,
	}
	for _, name := range c.Command.Args {
		if e, ok := c.Objects[name]; ok {
			call.Args = append(call.Args, e)
		} else {
			call.Args = append(call.Args, c.Strings[name])
		}
	}

	c.Actions = make([]Action, 0, len(c.handlers))
	for _, h := range c.handlers {
		h := h
		c.Actions = append(c.Actions, func() (string, error) {
			return h(call)
		})
	}
}
