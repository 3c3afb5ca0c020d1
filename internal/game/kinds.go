package game

import "github.com/dekarrin/quill/internal/command"

// Capabilities that kinds of entities in the game may have.
const (
	CanHold command.Capability = "holds"
	CanOpen command.Capability = "openable"
	CanLock command.Capability = "lockable"
)

// The kinds of every entity in the game. They must be declared with a
// Registry, parents first, before handlers are bound to them.
var (
	KindEntity    = command.NewKind("entity", nil)
	KindRoom      = command.NewKind("room", KindEntity)
	KindItem      = command.NewKind("item", KindEntity)
	KindContainer = command.NewKind("container", KindItem, CanHold, CanOpen)
	KindDoor      = command.NewKind("door", KindItem, CanOpen, CanLock)
)

// AllKinds is every kind in the game, in an order suitable for declaring them.
var AllKinds = []*command.Kind{KindEntity, KindRoom, KindItem, KindContainer, KindDoor}
