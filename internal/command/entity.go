package command

import (
	"github.com/dekarrin/quill/internal/match"
)

// Entity is anything a player can refer to by name in a command. Entities
// are compared by identity, so implementations must be pointer types.
type Entity interface {
	// Kind returns the declared type of the entity.
	Kind() *Kind

	// Children returns the entities directly inside of this one that a player
	// could refer to while this entity is in scope.
	Children() []Entity

	// MatchName gives how well fragment describes the entity.
	MatchName(fragment string) match.Level

	// IsSecret returns whether the entity is hidden from the player.
	IsSecret() bool
}

// Player is whoever is issuing commands.
type Player interface {
	// Inventory returns the entity that holds everything the player carries.
	Inventory() Entity

	// Room returns the entity the player is currently in.
	Room() Entity
}

// Capability is a named ability that a Kind can declare and that a
// Definition can require of any Kind its handlers are bound to.
type Capability string

// Kind is a named type of Entity. Kinds form a single-inheritance hierarchy;
// an entity of a Kind is also considered to be of every ancestor of that Kind.
type Kind struct {
	name   string
	parent *Kind
	caps   map[Capability]bool
}

// NewKind creates a new Kind with the given name whose parent is parent. If
// parent is nil, the Kind is a root of the hierarchy. The new Kind has all
// capabilities of its parent in addition to the ones given.
func NewKind(name string, parent *Kind, caps ...Capability) *Kind {
	k := &Kind{
		name:   name,
		parent: parent,
		caps:   make(map[Capability]bool, len(caps)),
	}
	for _, c := range caps {
		k.caps[c] = true
	}
	return k
}

// Name returns the name of the Kind.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Parent returns the Kind that k was derived from, or nil if k is a root.
func (k *Kind) Parent() *Kind {
	if k == nil {
		return nil
	}
	return k.parent
}

// Is returns whether k is other or a descendant of other.
func (k *Kind) Is(other *Kind) bool {
	if other == nil {
		return false
	}
	for cur := k; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors k has.
func (k *Kind) Depth() int {
	if k == nil {
		return -1
	}
	d := 0
	for cur := k.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}

// Has returns whether k or any of its ancestors declares capability c.
func (k *Kind) Has(c Capability) bool {
	for cur := k; cur != nil; cur = cur.parent {
		if cur.caps[c] {
			return true
		}
	}
	return false
}

func (k *Kind) String() string {
	return k.Name()
}

// distance gives how many generations separate an entity of Kind k from the
// ancestor kind anc. If k is not anc or a descendant of it, -1 is returned.
func (k *Kind) distance(anc *Kind) int {
	if !k.Is(anc) {
		return -1
	}
	return k.Depth() - anc.Depth()
}
