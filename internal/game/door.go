package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/match"
)

// Door is an Item that leads to another Room. A locked door must be unlocked
// with its key, or by saying its password to it, before it can be entered.
type Door struct {
	Item

	// Locked doors cannot be opened or entered.
	Locked bool

	// Dest is the label of the Room the Door leads to. It may be blank for a
	// door to nowhere.
	Dest string

	// Key is the name of the item that unlocks the Door. If blank, "key" is
	// used.
	Key string

	// Password, if set, unlocks the Door when it is said to it.
	Password string

	dest *Room
}

// NewDoor creates an unlocked wooden Door leading to the room labeled dest.
func NewDoor(label, article, name, dest string) *Door {
	d := &Door{Item: *NewItem(label, article, name), Dest: strings.ToUpper(dest)}
	d.Material = Wood
	return d
}

func (d *Door) Kind() *command.Kind {
	return KindDoor
}

// Destination returns the Room the door leads to, or nil if it leads nowhere.
func (d *Door) Destination() *Room {
	return d.dest
}

func (d *Door) ShortDescription() string {
	desc := d.Item.ShortDescription()
	if d.Locked {
		return desc
	}
	if d.dest == nil {
		return desc + " to nowhere"
	}
	return desc + " to " + d.dest.Name
}

// MatchName matches the Door by its own name, or by the name of where it goes
// once it is unlocked.
func (d *Door) MatchName(fragment string) match.Level {
	if !d.Locked && d.dest != nil {
		if lvl := d.matcher().Compare(fragment, d.dest.Name); lvl > match.NoMatch {
			return lvl
		}
	}
	return d.Item.MatchName(fragment)
}

// Unlocks returns whether key is the Door's key.
func (d *Door) Unlocks(key Thing) bool {
	if key == nil {
		return false
	}
	want := d.Key
	if want == "" {
		want = "key"
	}
	return d.matcher().Normalize(key.Base().Name) == d.matcher().Normalize(want)
}

// CheckPassword returns whether said is the Door's password. A Door without a
// password never accepts one.
func (d *Door) CheckPassword(said string) bool {
	if d.Password == "" {
		return false
	}
	r := d.matcher()
	return r.Normalize(said) == r.Normalize(d.Password)
}

func (d *Door) String() string {
	return fmt.Sprintf("Door(%q -> %s)", d.Label, d.Dest)
}
