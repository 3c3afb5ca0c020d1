package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/match"
)

// File item.go holds symbols related to items, containers, and the player's
// inventory.

// ErrNoRoom is returned when something is put into a Container that does not
// have the space for it.
var ErrNoRoom = errors.New("not enough space")

// Thing is anything that can be placed in a Room or inside of another Thing.
// Every Thing is built on an Item, which Base returns.
type Thing interface {
	command.Entity

	// Base returns the Item that holds the common properties of the Thing.
	Base() *Item

	// ShortDescription is how the Thing is named in lists, e.g. "a rusty tin
	// can".
	ShortDescription() string
}

// holder is anything that Things can be placed in.
type holder interface {
	command.Entity
	things() *[]Thing
}

// Item is an object in the world. Items may themselves contain other Things;
// unlike a Container, an Item has no limit on what it holds and players cannot
// put things into it.
type Item struct {
	// ID uniquely identifies the Item for the life of the program.
	ID uuid.UUID

	// Label is the upper case name the world definition uses to refer to the
	// Item.
	Label string

	// Article is used before the Item's name, e.g. "a", "some", "8".
	Article string

	// Name is what the Item is called.
	Name string

	// Aliases are other names that refer to the Item.
	Aliases []string

	// Description is shown when the Item is looked at. If blank, one is made
	// from the Item's name and material.
	Description string

	Material *Material

	// Location is a phrase saying where the Item is in its room, e.g. "on the
	// floor". It is blank for Things that are not directly in a room.
	Location string

	// Verb agrees with Name in descriptions, usually "is" or "are".
	Verb string

	// Scenery items are described separately from other items and cannot be
	// taken.
	Scenery bool

	// Secret items cannot be seen or referred to by the player.
	Secret bool

	// Size is how much space the Item takes up in a Container.
	Size int

	contents []Thing
	in       holder
	resolver *match.Resolver
}

// NewItem creates an Item of size 1 made of the Nondescript material.
func NewItem(label, article, name string) *Item {
	return &Item{
		ID:       uuid.New(),
		Label:    strings.ToUpper(label),
		Article:  article,
		Name:     name,
		Material: Nondescript,
		Verb:     "is",
		Size:     1,
	}
}

func (it *Item) Base() *Item {
	return it
}

func (it *Item) Kind() *command.Kind {
	return KindItem
}

func (it *Item) IsSecret() bool {
	return it.Secret
}

func (it *Item) Children() []command.Entity {
	return entities(it.contents)
}

func (it *Item) things() *[]Thing {
	return &it.contents
}

// Contents returns every Thing directly inside the Item.
func (it *Item) Contents() []Thing {
	return append([]Thing(nil), it.contents...)
}

// Holder returns the Room or Thing that the Item is currently in, or nil if it
// is not in anything.
func (it *Item) Holder() command.Entity {
	if it.in == nil {
		return nil
	}
	return it.in
}

// Put places t inside the Item, removing it from wherever it was before.
func (it *Item) Put(t Thing) {
	place(t, it, "")
}

func (it *Item) ShortDescription() string {
	if it.Material.isNondescript() {
		return it.Article + " " + it.Name
	}
	return it.Article + " " + it.Material.Name + " " + it.Name
}

// Look returns what the player sees when examining the Item.
func (it *Item) Look() string {
	if it.Description != "" {
		return it.Description
	}
	if it.Material.isNondescript() {
		return fmt.Sprintf("You see %s %s", it.Article, it.Name)
	}
	return fmt.Sprintf("You see %s %s made of %s", it.Article, it.Name, it.Material.Name)
}

// MatchName gives how well fragment refers to the Item. Naming the Item along
// with its material or location is a match.FullWithDetail; otherwise the best
// match against its name and aliases is used.
func (it *Item) MatchName(fragment string) match.Level {
	r := it.matcher()

	norm := r.Normalize(fragment)
	if norm == "" {
		return match.NoMatch
	}
	for _, d := range it.details() {
		if norm == r.Normalize(d) {
			return match.FullWithDetail
		}
	}

	best := r.Compare(fragment, it.Name)
	for _, al := range it.Aliases {
		if lvl := r.Compare(fragment, al); lvl > best {
			best = lvl
		}
	}
	return best
}

func (it *Item) details() []string {
	var ds []string
	if !it.Material.isNondescript() {
		if it.Location != "" {
			ds = append(ds, it.Material.Name+" "+it.Name+" "+it.Location)
		}
		ds = append(ds, it.Material.Name+" "+it.Name)
	}
	if it.Location != "" {
		ds = append(ds, it.Name+" "+it.Location)
	}
	return ds
}

func (it *Item) matcher() *match.Resolver {
	if it.resolver == nil {
		return match.Default
	}
	return it.resolver
}

func (it *Item) String() string {
	return fmt.Sprintf("Item(%q, %q)", it.Label, it.Name)
}

// Container is an Item that the player can put things into, up to its
// Capacity.
type Container struct {
	Item

	// Capacity is the total Size of the things the Container can hold.
	Capacity int
}

// NewContainer creates an empty Container with the given capacity.
func NewContainer(label, article, name string, capacity int) *Container {
	c := &Container{Item: *NewItem(label, article, name), Capacity: capacity}
	c.Size = capacity
	return c
}

func (c *Container) Kind() *command.Kind {
	return KindContainer
}

// UsedSpace is the total Size of everything in the Container.
func (c *Container) UsedSpace() int {
	used := 0
	for _, t := range c.contents {
		used += t.Base().Size
	}
	return used
}

// Fits returns whether t could be added to the Container.
func (c *Container) Fits(t Thing) bool {
	return c.UsedSpace()+t.Base().Size <= c.Capacity
}

// Add moves t into the Container. If there is not enough space, ErrNoRoom is
// returned and t is not moved.
func (c *Container) Add(t Thing) error {
	if !c.Fits(t) {
		return fmt.Errorf("add %s to %s: %w", t.Base().Name, c.Name, ErrNoRoom)
	}
	place(t, c, "")
	return nil
}

// Holds returns whether t is directly inside the Container.
func (c *Container) Holds(t Thing) bool {
	return t != nil && t.Base().in == holder(c)
}

func (c *Container) String() string {
	return fmt.Sprintf("Container(%q, %d/%d)", c.Label, c.UsedSpace(), c.Capacity)
}

// place moves t into h at the given location phrase.
func place(t Thing, h holder, location string) {
	detach(t)

	b := t.Base()
	b.in = h
	b.Location = location

	list := h.things()
	*list = append(*list, t)
}

// detach removes t from whatever it is in.
func detach(t Thing) {
	b := t.Base()
	if b.in == nil {
		return
	}

	list := b.in.things()
	for i, x := range *list {
		if x == t {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			break
		}
	}
	b.in = nil
	b.Location = ""
}

// walk calls fn on every Thing in things and everything inside of them.
func walk(things []Thing, fn func(Thing)) {
	for _, t := range things {
		fn(t)
		walk(t.Base().contents, fn)
	}
}

func entities(things []Thing) []command.Entity {
	if len(things) == 0 {
		return nil
	}
	es := make([]command.Entity, len(things))
	for i := range things {
		es[i] = things[i]
	}
	return es
}
