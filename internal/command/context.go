package command

import (
	"strings"

	"github.com/dekarrin/quill/internal/match"
)

// DefaultSelfWords are the words that refer to the current focus object.
var DefaultSelfWords = []string{"it", "that", "yourself"}

// SearchContext is the set of entities that text in a command may refer to.
// It is an immutable value; every method that changes what is visible returns
// a new SearchContext and leaves the receiver untouched.
type SearchContext struct {
	player    Player
	focus     Entity
	scopes    []Entity
	kind      *Kind
	excluded  []Entity
	allowed   []Entity
	limited   bool
	selfWords []string
}

// NewSearchContext creates a SearchContext for player. Entities are searched
// for in the player's inventory, then the player's room, then each of extras,
// then focus. Nil scopes are skipped.
func NewSearchContext(player Player, focus Entity, extras ...Entity) SearchContext {
	ctx := SearchContext{
		player:    player,
		focus:     focus,
		selfWords: DefaultSelfWords,
	}

	var scopes []Entity
	if player != nil {
		scopes = append(scopes, player.Inventory(), player.Room())
	}
	scopes = append(scopes, extras...)
	scopes = append(scopes, focus)

	for _, s := range scopes {
		if s != nil {
			ctx.scopes = append(ctx.scopes, s)
		}
	}

	return ctx
}

// Player returns the player the context was created for.
func (ctx SearchContext) Player() Player {
	return ctx.player
}

// Focus returns the focus object of the context. It may be nil.
func (ctx SearchContext) Focus() Entity {
	return ctx.focus
}

// Scopes returns the entities whose contents are searched, in search order.
func (ctx SearchContext) Scopes() []Entity {
	return append([]Entity(nil), ctx.scopes...)
}

// WithSelfWords returns a context in which the given words refer to the focus
// object.
func (ctx SearchContext) WithSelfWords(words []string) SearchContext {
	ctx.selfWords = append([]string(nil), words...)
	return ctx
}

// WithKind returns a context in which only entities of Kind k are visible.
func (ctx SearchContext) WithKind(k *Kind) SearchContext {
	ctx.kind = k
	return ctx
}

// Excluding returns a context in which the given entities are never visible.
func (ctx SearchContext) Excluding(es ...Entity) SearchContext {
	excl := make([]Entity, 0, len(ctx.excluded)+len(es))
	excl = append(excl, ctx.excluded...)
	excl = append(excl, es...)
	ctx.excluded = excl
	return ctx
}

// LimitTo returns a context in which only the given entities can be visible.
// Calling LimitTo on an already limited context further restricts it.
func (ctx SearchContext) LimitTo(es ...Entity) SearchContext {
	if ctx.limited {
		var both []Entity
		for _, e := range es {
			if contains(ctx.allowed, e) {
				both = append(both, e)
			}
		}
		ctx.allowed = both
	} else {
		ctx.allowed = append([]Entity(nil), es...)
	}
	ctx.limited = true
	return ctx
}

// Narrow returns a context that searches only e and its contents. All other
// restrictions of the context still apply.
func (ctx SearchContext) Narrow(e Entity) SearchContext {
	ctx.scopes = []Entity{e}
	return ctx
}

// unfiltered returns a context with the same scopes as ctx but none of its
// kind, exclusion or limit filters.
func (ctx SearchContext) unfiltered() SearchContext {
	ctx.kind = nil
	ctx.excluded = nil
	ctx.allowed = nil
	ctx.limited = false
	return ctx
}

// admits returns whether e passes the filters of the context.
func (ctx SearchContext) admits(e Entity) bool {
	if e == nil || e.IsSecret() {
		return false
	}
	if ctx.kind != nil && !e.Kind().Is(ctx.kind) {
		return false
	}
	if contains(ctx.excluded, e) {
		return false
	}
	if ctx.limited && !contains(ctx.allowed, e) {
		return false
	}
	return true
}

// Visible returns every entity that text may refer to in this context. For
// each scope in order, its children are given followed by the scope itself.
// An entity reachable from more than one scope is only given once.
func (ctx SearchContext) Visible() []Entity {
	var visible []Entity
	seen := map[Entity]bool{}

	add := func(e Entity) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true
		if ctx.admits(e) {
			visible = append(visible, e)
		}
	}

	for _, scope := range ctx.scopes {
		for _, child := range scope.Children() {
			add(child)
		}
		add(scope)
	}

	return visible
}

// FocusVisible returns whether the focus object is one of the visible
// entities of the context.
func (ctx SearchContext) FocusVisible() bool {
	if ctx.focus == nil {
		return false
	}
	return contains(ctx.Visible(), ctx.focus)
}

// Find gives every visible entity that fragment refers to at the best level
// any of them matched at. If fragment is one of the self words and the focus
// object is visible, the focus object is the sole result at
// match.FullWithDetail. An entity matching at match.FullWithDetail ends the
// search immediately.
func (ctx SearchContext) Find(fragment string) (match.Level, []Entity) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return match.NoMatch, nil
	}

	if ctx.isSelfWord(fragment) && ctx.FocusVisible() {
		return match.FullWithDetail, []Entity{ctx.focus}
	}

	best := match.NoMatch
	var found []Entity
	for _, e := range ctx.Visible() {
		lvl := e.MatchName(fragment)
		if lvl == match.NoMatch {
			continue
		}
		if lvl == match.FullWithDetail {
			return lvl, []Entity{e}
		}
		if lvl > best {
			best = lvl
			found = []Entity{e}
		} else if lvl == best {
			found = append(found, e)
		}
	}

	return best, found
}

func (ctx SearchContext) isSelfWord(fragment string) bool {
	fragment = strings.Join(strings.Fields(fragment), " ")
	for _, w := range ctx.selfWords {
		if strings.EqualFold(w, fragment) {
			return true
		}
	}
	return false
}

func contains(es []Entity, e Entity) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}
