package command

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/quill/internal/match"
)

// DefaultMaxSteps is the number of node visits a single parse may make before
// it is abandoned.
const DefaultMaxSteps = 20000

// ErrStepBudget is returned when a parse is abandoned for taking too many
// steps.
var ErrStepBudget = errors.New("parse step budget exhausted")

// Bindings holds what a successful parse bound to each placeholder of a
// pattern.
type Bindings struct {
	// Level is the weakest level at which any object was resolved from the
	// input text, or match.Full if no object was.
	Level match.Level

	// Verb is the verb synonym that was matched, if the pattern has a verb.
	Verb string

	// Objects holds the entity bound to each object placeholder. A
	// placeholder that took the "none" default is present with a nil value.
	Objects map[string]Entity

	// Strings holds the text bound to each string placeholder. A placeholder
	// that took the "none" default is present with an empty value.
	Strings map[string]string

	// Ties holds, for object placeholders whose text matched more than one
	// entity equally well, every one of those entities. The entity in Objects
	// is always the first of them.
	Ties map[string][]Entity

	// Alternatives are other readings of the text, equally good, that came
	// from narrowing an object_in placeholder to a different one of the
	// containers its text matched.
	Alternatives []Bindings
}

// Has returns whether the placeholder called name was bound, including to a
// "none" default.
func (b Bindings) Has(name string) bool {
	if _, ok := b.Objects[name]; ok {
		return true
	}
	_, ok := b.Strings[name]
	return ok
}

type slotKind int

const (
	slotVerb slotKind = iota
	slotObject
	slotString
)

// slot is a single binding made during a parse.
type slot struct {
	kind     slotKind
	name     string
	text     string
	entity   Entity
	ties     []Entity
	level    match.Level
	fromText bool
}

// Parse parses text against the tree in the given context using the default
// step budget. It returns the bindings made and whether the parse succeeded.
func (t *Tree) Parse(text string, ctx SearchContext) (Bindings, bool) {
	b, ok, _ := t.ParseWithBudget(text, ctx, DefaultMaxSteps)
	return b, ok
}

// ParseWithBudget is the same as Parse but stops after maxSteps node visits.
// If it had to stop, the parse fails and ErrStepBudget is returned. A
// maxSteps of zero or less uses DefaultMaxSteps.
//
// The first way of splitting the text over the pattern that succeeds is
// used; the tree and ctx are not modified. If the text for an object_in
// placeholder matches several containers equally well, the parse is repeated
// narrowed to each of them in turn. The first reading at the best level is
// returned and any others at that level are in its Alternatives.
func (t *Tree) ParseWithBudget(text string, ctx SearchContext, maxSteps int) (Bindings, bool, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	text = strings.Join(strings.Fields(text), " ")

	var readings []Bindings
	steps := 0
	for pick, containers := 0, 1; pick < containers; pick++ {
		p := &parser{tree: t, maxSteps: maxSteps, steps: steps, inPick: pick}
		_, slots, ok := p.parse(t.root, text, ctx)
		if p.exhausted {
			if len(readings) > 0 {
				break
			}
			return Bindings{}, false, ErrStepBudget
		}
		steps = p.steps
		if p.inTies > containers {
			containers = p.inTies
		}
		if !ok {
			continue
		}

		b := makeBindings(slots)
		if !sameContainer(readings, b) {
			readings = append(readings, b)
		}
	}

	if len(readings) == 0 {
		return Bindings{}, false, nil
	}

	best := readings[0]
	for _, r := range readings[1:] {
		if r.Level > best.Level {
			best = r
		}
	}
	var alts []Bindings
	for _, r := range readings {
		if r.Level == best.Level && !sameContainer([]Bindings{best}, r) {
			alts = append(alts, r)
		}
	}
	best.Alternatives = alts
	return best, true, nil
}

// sameContainer returns whether any of readings narrowed its object_in
// placeholder to the same container as b.
func sameContainer(readings []Bindings, b Bindings) bool {
	in, ok := b.Objects[PlaceholderObjectIn]
	for _, r := range readings {
		other, otherOK := r.Objects[PlaceholderObjectIn]
		if ok == otherOK && in == other {
			return true
		}
	}
	return false
}

func makeBindings(slots []slot) Bindings {
	b := Bindings{
		Level:   match.Full,
		Objects: map[string]Entity{},
		Strings: map[string]string{},
		Ties:    map[string][]Entity{},
	}

	resolved := false
	for _, s := range slots {
		switch s.kind {
		case slotVerb:
			b.Verb = s.text
		case slotObject:
			b.Objects[s.name] = s.entity
			if len(s.ties) > 1 {
				b.Ties[s.name] = s.ties
			}
		case slotString:
			b.Strings[s.name] = s.text
		}

		if s.fromText {
			if !resolved || s.level < b.Level {
				b.Level = s.level
			}
			resolved = true
		}
	}

	return b
}

type parser struct {
	tree      *Tree
	steps     int
	maxSteps  int
	exhausted bool

	// inPick is which of the tied containers an object_in placeholder is
	// narrowed to. inTies is the most containers any object_in text matched.
	inPick int
	inTies int
}

func (p *parser) isParseFirst(idx int) bool {
	return idx >= 0 && p.tree.nodes[idx].parseFirst
}

// parse matches text against the subtree rooted at idx. It returns the
// context to use for the rest of the parse, which differs from ctx only if an
// object_in placeholder narrowed it.
func (p *parser) parse(idx int, text string, ctx SearchContext) (SearchContext, []slot, bool) {
	if idx < 0 {
		return ctx, nil, text == ""
	}

	p.steps++
	if p.steps > p.maxSteps {
		p.exhausted = true
	}
	if p.exhausted {
		return ctx, nil, false
	}

	n := p.tree.nodes[idx]
	switch n.kind {
	case FixedText:
		return p.parseFixed(n, []string{n.literal}, text, ctx)
	case VerbSet:
		return p.parseFixed(n, n.synonyms, text, ctx)
	default:
		return p.parseSpan(n, text, ctx)
	}
}

// children parses the left and right subtrees of n. If only one of them is
// parse-first it is done before the other, and any narrowing it does applies
// to the other.
func (p *parser) children(n node, leftText, rightText string, ctx SearchContext) (SearchContext, []slot, bool) {
	first, second := n.left, n.right
	firstText, secondText := leftText, rightText
	if p.isParseFirst(n.right) && !p.isParseFirst(n.left) {
		first, second = second, first
		firstText, secondText = secondText, firstText
	}

	ctx, firstSlots, ok := p.parse(first, firstText, ctx)
	if !ok {
		return ctx, nil, false
	}
	ctx, secondSlots, ok := p.parse(second, secondText, ctx)
	if !ok {
		return ctx, nil, false
	}

	slots := make([]slot, 0, len(firstSlots)+len(secondSlots))
	slots = append(slots, firstSlots...)
	slots = append(slots, secondSlots...)
	return ctx, slots, true
}

// parseFixed matches nodes anchored on literal text. Each literal is tried in
// order at each place it occurs in text, and the first split for which both
// children match is used.
func (p *parser) parseFixed(n node, literals []string, text string, ctx SearchContext) (SearchContext, []slot, bool) {
	for _, lit := range literals {
		for _, pos := range occurrences(text, lit) {
			leftText := strings.TrimSpace(text[:pos])
			rightText := strings.TrimSpace(text[pos+len(lit):])

			newCtx, slots, ok := p.children(n, leftText, rightText, ctx)
			if !ok {
				if p.exhausted {
					return ctx, nil, false
				}
				continue
			}

			if n.kind == VerbSet {
				slots = append(slots, slot{kind: slotVerb, name: PlaceholderVerb, text: lit})
			}
			return newCtx, slots, true
		}
	}
	return ctx, nil, false
}

// parseSpan matches nodes that consume a run of whole words. Every way of
// splitting text into left, middle and right parts is tried, from the
// smallest left part and largest middle first.
func (p *parser) parseSpan(n node, text string, ctx SearchContext) (SearchContext, []slot, bool) {
	bounds := wordBounds(text)

	lefts := []int{0}
	if n.left >= 0 {
		lefts = bounds
	}

	for _, l := range lefts {
		rights := []int{len(text)}
		if n.right >= 0 {
			rights = rights[:0]
			for i := len(bounds) - 1; i >= 0 && bounds[i] >= l; i-- {
				rights = append(rights, bounds[i])
			}
		}

		for _, r := range rights {
			if p.exhausted {
				return ctx, nil, false
			}

			leftText := strings.TrimSpace(text[:l])
			middle := strings.TrimSpace(text[l:r])
			rightText := strings.TrimSpace(text[r:])

			newCtx, slots, ok := p.children(n, leftText, rightText, ctx)
			if !ok {
				continue
			}

			switch n.kind {
			case Optional:
				if middle == "" {
					defSlots, ok := applyDefaults(n.defaults, newCtx)
					if !ok {
						return ctx, nil, false
					}
					return newCtx, append(slots, defSlots...), true
				}
				innerCtx, innerSlots, ok := p.parse(n.inner, middle, newCtx)
				if ok {
					return innerCtx, append(slots, innerSlots...), true
				}
			case ObjectRef, ObjectInRef:
				if middle == "" {
					continue
				}
				lvl, found := searchFor(n.name, newCtx).Find(middle)
				if len(found) == 0 {
					continue
				}
				s := slot{kind: slotObject, name: n.name, entity: found[0], level: lvl, fromText: true}
				if n.kind == ObjectInRef {
					if len(found) > p.inTies {
						p.inTies = len(found)
					}
					if p.inPick >= len(found) {
						continue
					}
					s.entity = found[p.inPick]
					newCtx = newCtx.Narrow(s.entity)
				} else {
					s.ties = found
				}
				return newCtx, append(slots, s), true
			case StringArg:
				if middle == "" {
					continue
				}
				return newCtx, append(slots, slot{kind: slotString, name: n.name, text: middle}), true
			}
		}
	}

	return ctx, nil, false
}

// applyDefaults binds the default value of each directive. If any of them
// cannot be bound, false is returned.
func applyDefaults(defs []Default, ctx SearchContext) ([]slot, bool) {
	slots := make([]slot, 0, len(defs))
	for _, d := range defs {
		if d.Name == PlaceholderStringArg {
			slots = append(slots, slot{kind: slotString, name: d.Name})
			continue
		}

		s := slot{kind: slotObject, name: d.Name}
		switch d.Value {
		case DefaultAny:
			vis := searchFor(d.Name, ctx).Visible()
			if len(vis) == 0 {
				return nil, false
			}
			s.entity = vis[0]
		case DefaultRoom:
			if ctx.player == nil || ctx.player.Room() == nil {
				return nil, false
			}
			s.entity = ctx.player.Room()
		case DefaultNone:
			s.entity = nil
		}
		slots = append(slots, s)
	}
	return slots, true
}

// searchFor gives the context that the placeholder called name is resolved
// in. Only the "object" placeholder is subject to the kind, exclusion and
// limit filters of ctx; every other placeholder sees everything in scope.
func searchFor(name string, ctx SearchContext) SearchContext {
	if name == PlaceholderObject {
		return ctx
	}
	return ctx.unfiltered()
}

// wordBounds returns every index of text at which it can be split between
// whole words: its start, each space, and its end.
func wordBounds(text string) []int {
	bounds := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			bounds = append(bounds, i)
		}
	}
	if len(text) > 0 {
		bounds = append(bounds, len(text))
	}
	return bounds
}

// occurrences returns the index of every place in text that lit appears,
// ignoring case. If lit begins or ends with a letter or digit, that end must
// not be directly adjacent to another letter or digit in text.
func occurrences(text, lit string) []int {
	if lit == "" {
		return nil
	}

	first, _ := utf8.DecodeRuneInString(lit)
	last, _ := utf8.DecodeLastRuneInString(lit)
	checkStart := isWordRune(first)
	checkEnd := isWordRune(last)

	var found []int
	for i := 0; i+len(lit) <= len(text); i++ {
		if !strings.EqualFold(text[i:i+len(lit)], lit) {
			continue
		}
		if checkStart && i > 0 {
			before, _ := utf8.DecodeLastRuneInString(text[:i])
			if isWordRune(before) {
				continue
			}
		}
		if checkEnd && i+len(lit) < len(text) {
			after, _ := utf8.DecodeRuneInString(text[i+len(lit):])
			if isWordRune(after) {
				continue
			}
		}
		found = append(found, i)
	}
	return found
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
