package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dekarrin/rosed"
	"go.uber.org/zap"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/match"
	"github.com/dekarrin/quill/internal/qerrors"
	"github.com/dekarrin/quill/internal/util"
)

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

// DefaultPlayerName is used when no player name is given.
const DefaultPlayerName = "Kara Anderson"

// State is the game's entire state.
type State struct {
	// World is all rooms that exist and their current state, by label.
	World map[string]*Room

	// Player is the one playing the game.
	Player *Player

	// focus is the thing the last command was done to. It is what "it" refers
	// to.
	focus command.Entity

	quitting     bool
	debugEnabled bool

	reg        *command.Registry
	dispatcher *command.Dispatcher

	io  IODevice
	rng *rand.Rand
	log *zap.Logger
}

type IODevice struct {
	// The width of each line of output.
	Width int

	// a function to send output. If s is empty, an empty line is sent.
	Output func(s string, a ...interface{}) error

	// a function to use to get string input. If prompt is blank, no prompt is
	// sent before the input is read.
	Input func(prompt string) (string, error)

	// a function to use to get int input. If prompt is blank, no prompt is
	// sent before the input is read. If invalid input is received, keeps
	// prompting until a valid one is entered.
	InputInt func(prompt string) (int, error)
}

// Options are the tunable parts of a new State. The zero value uses a
// default for everything.
type Options struct {
	// PlayerName is the name of the player.
	PlayerName string

	// Resolver matches what the player types to things in the world. If nil,
	// match.Default is used.
	Resolver *match.Resolver

	// SelfWords refer to the thing the last command was done to. If nil,
	// command.DefaultSelfWords is used.
	SelfWords []string

	// MaxSteps and MaxTies are passed on to the command dispatcher.
	MaxSteps int
	MaxTies  int

	// Seed seeds the choice of phrasing. If zero, the current time is used.
	Seed int64

	// Log receives debug output. If nil, nothing is logged.
	Log *zap.Logger

	// Debug enables the DEBUG command.
	Debug bool
}

// New creates a new State from the given world. It performs basic sanity
// checks to ensure that a valid world is being passed in and links every door
// to the room it leads to.
//
// ioDev is the input/output device to use when the user needs to be prompted
// for more info, or for showing to the user. ioDev.Width is how wide the
// output should be. State will try to make all output fit within this width.
// If not set or < 2, it will be automatically assumed to be 80.
func New(world World, ioDev IODevice, opts Options) (*State, error) {
	if ioDev.Width < 2 {
		ioDev.Width = 80
	}
	if ioDev.Input == nil {
		return nil, fmt.Errorf("io device must define an Input function")
	}
	if ioDev.InputInt == nil {
		return nil, fmt.Errorf("io device must define an InputInt function")
	}
	if ioDev.Output == nil {
		return nil, fmt.Errorf("io device must define an Output function")
	}

	if opts.PlayerName == "" {
		opts.PlayerName = DefaultPlayerName
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	gs := &State{
		World:        world.Rooms,
		io:           ioDev,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		log:          opts.Log,
		debugEnabled: opts.Debug,
	}
	if gs.World == nil {
		gs.World = map[string]*Room{}
	}

	start, ok := gs.World[strings.ToUpper(world.Start)]
	if !ok {
		return nil, fmt.Errorf("starting room with label %q does not exist in passed-in rooms", world.Start)
	}

	if err := gs.linkDoors(); err != nil {
		return nil, err
	}

	gs.Player = NewPlayer(opts.PlayerName, world.PocketSize)
	gs.Player.MoveTo(start)
	for _, t := range world.Inventory {
		if err := gs.Player.Pockets.Add(t); err != nil {
			return nil, fmt.Errorf("starting inventory: %w", err)
		}
	}

	if opts.Resolver != nil {
		gs.useResolver(opts.Resolver)
	}

	gs.reg = command.NewRegistry()
	if err := gs.registerHandlers(); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	gs.dispatcher = command.NewDispatcher(gs.reg, opts.Log.Named("dispatch"))
	gs.dispatcher.SelfWords = opts.SelfWords
	gs.dispatcher.MaxSteps = opts.MaxSteps
	gs.dispatcher.MaxTies = opts.MaxTies

	return gs, nil
}

// linkDoors points every door in the world at the room it leads to.
func (gs *State) linkDoors() error {
	for _, label := range util.OrderedKeys(gs.World) {
		var err error
		walk(gs.World[label].contents, func(t Thing) {
			d, ok := t.(*Door)
			if !ok || d.Dest == "" || err != nil {
				return
			}
			dest, ok := gs.World[strings.ToUpper(d.Dest)]
			if !ok {
				err = fmt.Errorf("room %q: door %q leads to room %q, which does not exist", label, d.Label, d.Dest)
				return
			}
			d.dest = dest
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (gs *State) useResolver(r *match.Resolver) {
	set := func(t Thing) { t.Base().resolver = r }

	for _, room := range gs.World {
		room.resolver = r
		walk(room.contents, set)
	}
	set(gs.Player.Pockets)
	walk(gs.Player.Pockets.contents, set)
}

// Registry returns the registry of every command the game understands.
func (gs *State) Registry() *command.Registry {
	return gs.reg
}

// Focus returns the thing the last command was done to, or nil.
func (gs *State) Focus() command.Entity {
	return gs.focus
}

// Quitting returns whether the player has confirmed they want to quit.
func (gs *State) Quitting() bool {
	return gs.quitting
}

// Look gets the description of the room the player is in, wrapped to the
// output width.
func (gs *State) Look() string {
	return gs.wrap(gs.Player.CurrentRoom().Look(gs.pick))
}

// Advance advances the game state based on the given line of input. If the
// input cannot be understood it is returned as an error created with
// qerrors.Interpreterf and the game state is not advanced. Otherwise the
// output of the command is written to the IO device.
//
// If the input could mean more than one thing, the player is asked to pick
// one before anything is done.
func (gs *State) Advance(line string) error {
	res := gs.dispatcher.Evaluate(line, gs.Player, gs.focus)
	if res.Level == match.NoMatch {
		return qerrors.Interpreterf("I don't know how to %q. Type HELP to see what you can do.", strings.TrimSpace(line))
	}

	cand := res.Candidates[0]
	if res.Ambiguous() {
		var ok bool
		var err error
		cand, ok, err = gs.choose(res.Candidates)
		if err != nil {
			return err
		}
		if !ok {
			return gs.io.Output("\nNevermind then\n\n")
		}
	}

	gs.log.Debug("running command",
		zap.String("command", cand.Command.Name),
		zap.Stringer("scope", cand.Scope),
		zap.Stringer("level", cand.Level),
		zap.String("target", describeEntity(cand.Target)),
	)

	startRoom := gs.Player.CurrentRoom()
	output, err := cand.Run()
	if err != nil {
		return fmt.Errorf("%s: %w", cand.Command.Name, err)
	}

	// nothing from the room the player just left stays in focus.
	t, ok := cand.Target.(Thing)
	if ok && t.Kind().Is(KindItem) && gs.Player.CurrentRoom() == startRoom {
		gs.focus = t
	} else {
		gs.focus = nil
	}

	if strings.TrimSpace(output) == "" {
		output = gs.pick(nothingHappens)
	}

	return gs.io.Output("\n%s\n\n", output)
}

// choose asks the player which of cands they meant. If they do not pick one,
// false is returned.
func (gs *State) choose(cands []command.Candidate) (command.Candidate, bool, error) {
	ed := rosed.Edit("That could mean more than one thing. Which did you mean?\n").
		WithOptions(textFormatOptions).
		Wrap(gs.io.Width)
	for i, c := range cands {
		ed = ed.Insert(rosed.End, fmt.Sprintf("\n  %d) %s", i+1, describeCandidate(c)))
	}
	ed = ed.Insert(rosed.End, "\n  0) never mind\n")

	if err := gs.io.Output("\n%s\n", ed.String()); err != nil {
		return command.Candidate{}, false, err
	}

	choice, err := gs.io.InputInt("> ")
	if err != nil {
		return command.Candidate{}, false, fmt.Errorf("get choice: %w", err)
	}
	if choice < 1 || choice > len(cands) {
		return command.Candidate{}, false, nil
	}
	return cands[choice-1], true, nil
}

func (gs *State) helpTable() string {
	var table [][2]string
	for _, def := range gs.reg.Commands() {
		table = append(table, [2]string{strings.ToUpper(def.Verbs[0]), def.Description})
	}

	return rosed.Edit("").WithOptions(
		textFormatOptions.
			WithParagraphSeparator("\n").
			WithNoTrailingLineSeparators(true)).
		Insert(rosed.End, "Here are the commands you can use (type HELP and a command to learn more about it):\n").
		InsertDefinitionsTable(rosed.End, table, gs.io.Width).String()
}

// pick returns one of options at random.
func (gs *State) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[gs.rng.Intn(len(options))]
}

func (gs *State) wrap(s string) string {
	return rosed.Edit(s).WrapOpts(gs.io.Width, textFormatOptions).String()
}

// describeCandidate gives the command a candidate would carry out in words,
// e.g. "take a rusty tin can".
func describeCandidate(c command.Candidate) string {
	desc := c.Verb
	if c.Target != nil {
		desc += " " + describeEntity(c.Target)
	}
	for _, name := range util.OrderedKeys(c.Objects) {
		e := c.Objects[name]
		t, ok := e.(Thing)
		if !ok || e == c.Target {
			continue
		}
		switch name {
		case command.PlaceholderObjectIn:
			desc += " from " + t.ShortDescription()
		case command.PlaceholderObjectArg:
			desc += ", using " + t.ShortDescription()
		}
	}
	for _, name := range util.OrderedKeys(c.Strings) {
		if s := c.Strings[name]; s != "" {
			desc += fmt.Sprintf(" %q", s)
		}
	}
	return desc
}

func describeEntity(e command.Entity) string {
	switch v := e.(type) {
	case nil:
		return ""
	case Thing:
		return v.ShortDescription()
	case *Room:
		return v.Name
	default:
		return fmt.Sprintf("%v", e)
	}
}
