package command

import (
	"github.com/dekarrin/quill/internal/match"
)

var (
	kEntity    = NewKind("entity", nil)
	kItem      = NewKind("item", kEntity)
	kContainer = NewKind("container", kItem, "holds")
	kRoom      = NewKind("room", kEntity)
	kDoor      = NewKind("door", kEntity, "openable")
)

type fakeEntity struct {
	name     string
	detail   string
	kind     *Kind
	children []Entity
	secret   bool
}

func ent(name string, kind *Kind, children ...Entity) *fakeEntity {
	return &fakeEntity{name: name, kind: kind, children: children}
}

func (e *fakeEntity) Kind() *Kind        { return e.kind }
func (e *fakeEntity) Children() []Entity { return e.children }
func (e *fakeEntity) IsSecret() bool     { return e.secret }
func (e *fakeEntity) String() string     { return e.name }

func (e *fakeEntity) MatchName(fragment string) match.Level {
	if e.detail != "" && match.Normalize(fragment) == match.Normalize(e.detail) {
		return match.FullWithDetail
	}
	return match.Compare(fragment, e.name)
}

type fakePlayer struct {
	inv  Entity
	room Entity
}

func (p *fakePlayer) Inventory() Entity { return p.inv }
func (p *fakePlayer) Room() Entity      { return p.room }

// world is a small set of entities used across tests.
type world struct {
	player  *fakePlayer
	pockets *fakeEntity
	room    *fakeEntity
	sword   *fakeEntity
	tinCan  *fakeEntity
	trashCn *fakeEntity
	bag     *fakeEntity
	bagLint *fakeEntity
	flrLint *fakeEntity
	door    *fakeEntity
	coin    *fakeEntity
}

func newWorld() *world {
	w := &world{}
	w.coin = ent("gold coin", kItem)
	w.pockets = ent("pockets", kContainer, w.coin)
	w.sword = ent("sword", kItem)
	w.tinCan = ent("tin can", kItem)
	w.trashCn = ent("trash can", kItem)
	w.bagLint = ent("lint", kItem)
	w.bag = ent("bag", kContainer, w.bagLint)
	w.flrLint = ent("lint", kItem)
	w.door = ent("door", kDoor)
	w.room = ent("cellar", kRoom, w.sword, w.tinCan, w.trashCn, w.bag, w.flrLint, w.door)
	w.player = &fakePlayer{inv: w.pockets, room: w.room}
	return w
}

var (
	defLook = MustDefine(Definition{
		Name:     "LOOK",
		Pattern:  "{verb}[ {object:room}]",
		Verbs:    []string{"look", "look around", "look at", "examine"},
		Examples: []string{"look around", "look at the tin can"},
	})
	defTake = MustDefine(Definition{
		Name:    "TAKE",
		Pattern: "{verb} {object} [from {object_in:room}]",
		Verbs:   []string{"take", "get", "pick up"},
	})
	defOpen = MustDefine(Definition{
		Name:     "OPEN",
		Pattern:  "{verb} {object}[ with {object_arg:None}]",
		Verbs:    []string{"open"},
		Args:     []string{"object_arg"},
		Requires: []Capability{"openable"},
	})
	defSmell = MustDefine(Definition{
		Name:    "SMELL",
		Pattern: "{verb} {object}",
		Verbs:   []string{"smell", "sniff"},
	})
	defSay = MustDefine(Definition{
		Name:    "SAY",
		Pattern: `{verb} "{string_arg}"[ to {object:room}]`,
		Verbs:   []string{"say", "whisper"},
		Args:    []string{"string_arg"},
	})
	defHelp = MustDefine(Definition{
		Name:        "HELP",
		Description: "See game help",
		Pattern:     "{verb}[ with][ {string_arg:None}]",
		Verbs:       []string{"help", "?"},
		Args:        []string{"string_arg"},
	})
	defPutIn = MustDefine(Definition{
		Name:    "PUT_IN",
		Pattern: "{verb} {object_arg} in {object}",
		Verbs:   []string{"put", "place"},
		Args:    []string{"object_arg"},
	})
	defQuit = MustDefine(Definition{
		Name:    "QUIT",
		Pattern: "{verb}",
		Verbs:   []string{"quit", "q"},
	})
)

func newTestRegistry() *Registry {
	reg := NewRegistry()
	if err := reg.Declare(kEntity, kItem, kContainer, kRoom, kDoor); err != nil {
		panic(err)
	}
	return reg
}

// recorder makes handlers that note when they are run.
type recorder struct {
	calls []string
	last  Call
}

func (r *recorder) handler(name string) Handler {
	return func(c Call) (string, error) {
		r.calls = append(r.calls, name)
		r.last = c
		return name, nil
	}
}
