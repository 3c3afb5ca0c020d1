// Package game implements the game world, the commands a player can give in
// it, and game state advancement.
package game

// File room.go includes symbols for holding data on rooms and the things in
// them.

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/match"
)

// Room is a scene in the game. It holds every Thing in it along with where in
// the room each one is.
type Room struct {
	ID uuid.UUID

	// Label is how the room is referred to by world definitions. It must be
	// unique from all other Rooms.
	Label string

	// Name is used in short descriptions, e.g. "a dining room".
	Name string

	// Description is shown when the room is looked at. If blank, one is made
	// from the room's name.
	Description string

	contents []Thing
	resolver *match.Resolver
}

// NewRoom creates an empty Room.
func NewRoom(label, name, description string) *Room {
	return &Room{
		ID:          uuid.New(),
		Label:       strings.ToUpper(label),
		Name:        name,
		Description: description,
	}
}

func (room *Room) Kind() *command.Kind {
	return KindRoom
}

func (room *Room) Children() []command.Entity {
	return entities(room.contents)
}

func (room *Room) IsSecret() bool {
	return false
}

func (room *Room) things() *[]Thing {
	return &room.contents
}

// MatchName matches the room by its name. The word "room" is always a Full
// match for it.
func (room *Room) MatchName(fragment string) match.Level {
	r := room.resolver
	if r == nil {
		r = match.Default
	}

	lvl := r.Compare(fragment, room.Name)
	if lvl < match.Full && r.Normalize(fragment) == "room" {
		return match.Full
	}
	return lvl
}

// Add places t in the room at the given location phrase, removing it from
// wherever it was before.
func (room *Room) Add(t Thing, location string) {
	place(t, room, location)
}

// Things returns everything directly in the room.
func (room *Room) Things() []Thing {
	return append([]Thing(nil), room.contents...)
}

// ThingByLabel returns the Thing in the room, at any depth, with the given
// label. If there is none, nil is returned.
func (room *Room) ThingByLabel(label string) Thing {
	label = strings.ToUpper(label)

	var found Thing
	walk(room.contents, func(t Thing) {
		if found == nil && t.Base().Label == label {
			found = t
		}
	})
	return found
}

// Look gives the description of the room followed by descriptions of its
// scenery and then the rest of its visible items. pick selects one phrasing
// out of several.
func (room *Room) Look(pick func([]string) string) string {
	var desc string
	if room.Description != "" {
		desc = room.Description + "\n\n"
	} else {
		desc = "You are in " + room.Name + ".  "
	}

	var scenery, items []Thing
	for _, t := range room.contents {
		if t.IsSecret() {
			continue
		}
		if t.Base().Scenery {
			scenery = append(scenery, t)
		} else {
			items = append(items, t)
		}
	}

	if sceneryDesc := describeThings(scenery, pick); sceneryDesc != "" {
		desc += sceneryDesc + "\n\n"
	}
	desc += describeThings(items, pick)

	return strings.TrimSpace(desc)
}

func (room *Room) String() string {
	return fmt.Sprintf("Room<%s %q>", room.Label, room.Name)
}
