package game

import "github.com/dekarrin/quill/internal/command"

// DefaultPocketSize is the capacity of a player's pockets if a world does not
// give one.
const DefaultPocketSize = 3

// Player is the person playing the game. Everything they carry is in their
// Pockets.
type Player struct {
	Name    string
	Pockets *Container

	room *Room
}

// NewPlayer creates a Player with empty pockets of the given size. A size of
// less than 1 is replaced with DefaultPocketSize.
func NewPlayer(name string, pocketSize int) *Player {
	if pocketSize < 1 {
		pocketSize = DefaultPocketSize
	}
	return &Player{
		Name:    name,
		Pockets: NewContainer("@POCKETS", "some", "pockets", pocketSize),
	}
}

func (p *Player) Inventory() command.Entity {
	return p.Pockets
}

func (p *Player) Room() command.Entity {
	if p.room == nil {
		return nil
	}
	return p.room
}

// CurrentRoom returns the Room the player is in.
func (p *Player) CurrentRoom() *Room {
	return p.room
}

// MoveTo puts the player in room.
func (p *Player) MoveTo(room *Room) {
	p.room = room
}

// Has returns whether t is directly in the player's pockets.
func (p *Player) Has(t Thing) bool {
	return p.Pockets.Holds(t)
}

// possessive gives "your" for things the player is carrying, at any depth, and
// "the" for everything else.
func (p *Player) possessive(t Thing) string {
	if t == Thing(p.Pockets) {
		return "your"
	}
	for h := t.Base().in; h != nil; {
		if h == holder(p.Pockets) {
			return "your"
		}
		ht, ok := h.(Thing)
		if !ok {
			break
		}
		h = ht.Base().in
	}
	return "the"
}
