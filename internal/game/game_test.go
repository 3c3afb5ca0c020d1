package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dekarrin/quill/internal/qerrors"
)

// scriptedIO is an IODevice backed by canned answers.
type scriptedIO struct {
	out     strings.Builder
	answers []string
	choices []int
}

func (sio *scriptedIO) device() IODevice {
	return IODevice{
		Width: 80,
		Output: func(s string, a ...interface{}) error {
			fmt.Fprintf(&sio.out, s, a...)
			return nil
		},
		Input: func(prompt string) (string, error) {
			if len(sio.answers) == 0 {
				return "", fmt.Errorf("no more answers for %q", prompt)
			}
			ans := sio.answers[0]
			sio.answers = sio.answers[1:]
			return ans, nil
		},
		InputInt: func(prompt string) (int, error) {
			if len(sio.choices) == 0 {
				return 0, fmt.Errorf("no more choices for %q", prompt)
			}
			c := sio.choices[0]
			sio.choices = sio.choices[1:]
			return c, nil
		},
	}
}

// take returns everything output so far and clears it.
func (sio *scriptedIO) take() string {
	s := sio.out.String()
	sio.out.Reset()
	return strings.TrimSpace(s)
}

type testWorld struct {
	world    World
	kitchen  *Room
	hall     *Room
	tinCan   *Item
	sodaCan  *Item
	chest    *Container
	table    *Item
	door     *Door
	vault    *Door
	key      *Item
	painting *Item
}

func newTestWorld() *testWorld {
	w := &testWorld{
		kitchen:  NewRoom("KITCHEN", "the kitchen", "A small kitchen."),
		hall:     NewRoom("HALL", "the hall", ""),
		tinCan:   NewItem("TIN_CAN", "a", "tin can"),
		sodaCan:  NewItem("SODA_CAN", "a", "soda can"),
		chest:    NewContainer("CHEST", "a", "chest", 4),
		table:    NewItem("TABLE", "a", "table"),
		door:     NewDoor("KITCHEN_DOOR", "a", "door", "HALL"),
		vault:    NewDoor("VAULT", "a", "vault door", ""),
		key:      NewItem("KEY", "a", "key"),
		painting: NewItem("PAINTING", "a", "painting"),
	}

	w.table.Scenery = true
	w.painting.Scenery = true
	w.key.Material = Metal
	w.door.Locked = true
	w.vault.Locked = true
	w.vault.Password = "open sesame"
	w.vault.Key = "crowbar"

	w.kitchen.Add(w.tinCan, "on the counter")
	w.kitchen.Add(w.sodaCan, "on the counter")
	w.kitchen.Add(w.chest, "in the corner")
	w.kitchen.Add(w.table, "in the middle of the room")
	w.kitchen.Add(w.door, "to the north")
	w.kitchen.Add(w.vault, "to the south")
	w.hall.Add(w.painting, "")

	w.world = World{
		Title:     "Test World",
		Rooms:     map[string]*Room{"KITCHEN": w.kitchen, "HALL": w.hall},
		Start:     "kitchen",
		Inventory: []Thing{w.key},
	}
	return w
}

func newTestState(t *testing.T, w *testWorld, opts Options) (*State, *scriptedIO) {
	sio := &scriptedIO{}
	opts.Seed = 1
	gs, err := New(w.world, sio.device(), opts)
	if err != nil {
		t.Fatalf("create state: %v", err)
	}
	return gs, sio
}

func Test_New(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(w *testWorld, dev *IODevice)
		expectErr bool
	}{
		{
			name:   "valid world",
			mutate: func(w *testWorld, dev *IODevice) {},
		},
		{
			name: "missing start room",
			mutate: func(w *testWorld, dev *IODevice) {
				w.world.Start = "CELLAR"
			},
			expectErr: true,
		},
		{
			name: "door to a room that does not exist",
			mutate: func(w *testWorld, dev *IODevice) {
				w.door.Dest = "CELLAR"
			},
			expectErr: true,
		},
		{
			name: "starting inventory too big",
			mutate: func(w *testWorld, dev *IODevice) {
				w.key.Size = 10
			},
			expectErr: true,
		},
		{
			name: "no input function",
			mutate: func(w *testWorld, dev *IODevice) {
				dev.Input = nil
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld()
			sio := &scriptedIO{}
			dev := sio.device()
			tc.mutate(w, &dev)

			gs, err := New(w.world, dev, Options{})

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(w.kitchen, gs.Player.CurrentRoom())
			assert.True(gs.Player.Has(w.key))
			assert.Equal(w.hall, w.door.Destination())
			assert.Equal(DefaultPlayerName, gs.Player.Name)
		})
	}
}

func Test_State_Advance(t *testing.T) {
	testCases := []struct {
		name   string
		before []string
		input  string
		expect string
		check  func(assert *assert.Assertions, w *testWorld, gs *State)
	}{
		{
			name:   "take an item",
			input:  "take tin can",
			expect: "You put the tin can in your pockets",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.True(gs.Player.Has(w.tinCan))
				assert.Equal(w.tinCan, gs.Focus())
			},
		},
		{
			name:   "take scenery",
			input:  "take the table",
			expect: "You can't take that",
		},
		{
			name:   "take a door uses the door handler",
			input:  "take door",
			expect: "It's firmly attached to the wall. You can't take that",
		},
		{
			name:   "drop an item",
			input:  "drop key",
			expect: "You drop the key",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.False(gs.Player.Has(w.key))
				assert.Equal(Thing(w.key), w.kitchen.ThingByLabel("KEY"))
				assert.Equal("on the floor", w.key.Location)
			},
		},
		{
			name:   "drop what you do not have",
			input:  "drop the soda can",
			expect: "You can't drop a thing you don't have",
		},
		{
			name:   "show inventory",
			input:  "inventory",
			expect: "You look in your pockets.  You see...\n * a metal key",
		},
		{
			name:   "look in a container",
			input:  "look in chest",
			expect: "You look in the chest.  There's nothing there.",
		},
		{
			name:   "open a locked door",
			input:  "open door",
			expect: "It's locked",
		},
		{
			name:   "unlock a door with its key",
			input:  "unlock door with key",
			expect: "You unlock the door with the key! It can now open.",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.False(w.door.Locked)
			},
		},
		{
			name:   "unlock a door with the wrong thing",
			input:  "unlock vault door with key",
			expect: "You can't unlock it with that",
		},
		{
			name:   "unlock a door without saying with what",
			input:  "unlock door",
			expect: "What do you want to unlock it with?",
		},
		{
			name:   "enter a door once unlocked",
			before: []string{"unlock door with key"},
			input:  "go to the hall",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.Equal(w.hall, gs.Player.CurrentRoom())
			},
		},
		{
			name:   "enter a locked door",
			input:  "enter door",
			expect: "It's locked",
		},
		{
			name:   "put a thing in a container",
			input:  "put key in chest",
			expect: "You put the key in the chest",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.True(w.chest.Holds(w.key))
			},
		},
		{
			name:   "put a thing where it already is",
			input:  "put key in pockets",
			expect: "The key is already in your pockets",
		},
		{
			name:   "say something",
			input:  `say "hello"`,
			expect: `You say "hello"`,
		},
		{
			name:   "say the password to a door",
			input:  `whisper "Open Sesame" to the vault door`,
			expect: "You whisper \"Open Sesame\" to the vault door\nThe vault door clicks. It's unlocked now.",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.False(w.vault.Locked)
			},
		},
		{
			name:   "smell the focus object",
			before: []string{"look at key"},
			input:  "smell it",
			check: func(assert *assert.Assertions, w *testWorld, gs *State) {
				assert.Equal(w.key, gs.Focus())
			},
		},
		{
			name:   "help on one command",
			input:  "help take",
			expect: Take.HelpString(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld()
			gs, sio := newTestState(t, w, Options{})
			for _, line := range tc.before {
				if !assert.NoError(gs.Advance(line)) {
					return
				}
			}
			sio.take()

			err := gs.Advance(tc.input)

			if !assert.NoError(err) {
				return
			}
			actual := sio.take()
			if tc.expect != "" {
				assert.Equal(tc.expect, actual)
			}
			if tc.check != nil {
				tc.check(assert, w, gs)
			}
		})
	}
}

func Test_State_Advance_enterShowsNewRoom(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld()
	w.door.Locked = false
	gs, sio := newTestState(t, w, Options{})

	assert.NoError(gs.Advance("enter door"))

	assert.Contains(sio.take(), "You are in the hall.")
	assert.Equal(w.hall, gs.Player.CurrentRoom())
	assert.Nil(gs.Focus(), "the door left behind is not in focus")

	err := gs.Advance("look at door")
	assert.True(qerrors.IsInterpreter(err), "the kitchen door cannot be seen from the hall")

	err = gs.Advance("smell it")
	assert.True(qerrors.IsInterpreter(err))
}

func Test_State_Advance_focusStaysInRoom(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld()
	w.door.Locked = false
	gs, _ := newTestState(t, w, Options{})

	assert.NoError(gs.Advance("look at door"))
	assert.Equal(w.door, gs.Focus(), "a door looked at without leaving is in focus")
}

func Test_State_Advance_smell(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld()
	gs, sio := newTestState(t, w, Options{})

	assert.NoError(gs.Advance("sniff the metal key"))

	assert.Contains([]string{"It smells metallic", "It smells like rust"}, sio.take())
}

func Test_State_Advance_ambiguous(t *testing.T) {
	testCases := []struct {
		name       string
		choice     int
		expectLast string
		expectHas  func(w *testWorld) *Item
	}{
		{
			name:       "choose the second",
			choice:     2,
			expectLast: "You put the soda can in your pockets",
			expectHas:  func(w *testWorld) *Item { return w.sodaCan },
		},
		{
			name:       "choose the first",
			choice:     1,
			expectLast: "You put the tin can in your pockets",
			expectHas:  func(w *testWorld) *Item { return w.tinCan },
		},
		{
			name:       "choose none",
			choice:     0,
			expectLast: "Nevermind then",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld()
			gs, sio := newTestState(t, w, Options{})
			sio.choices = []int{tc.choice}

			err := gs.Advance("take can")

			if !assert.NoError(err) {
				return
			}
			out := sio.take()
			assert.Contains(out, "1) take a tin can")
			assert.Contains(out, "2) take a soda can")
			assert.Contains(out, "0) never mind")
			assert.True(strings.HasSuffix(out, tc.expectLast), "output ends with %q:\n%s", tc.expectLast, out)

			if tc.expectHas != nil {
				assert.True(gs.Player.Has(tc.expectHas(w)))
			} else {
				assert.False(gs.Player.Has(w.tinCan))
				assert.False(gs.Player.Has(w.sodaCan))
			}
		})
	}
}

func Test_State_Advance_quit(t *testing.T) {
	testCases := []struct {
		name       string
		answer     string
		expect     string
		expectQuit bool
	}{
		{name: "confirmed", answer: "y", expect: "Thanks for playing!  Later...", expectQuit: true},
		{name: "confirmed in full", answer: " YES ", expect: "Thanks for playing!  Later...", expectQuit: true},
		{name: "declined", answer: "n", expect: "Nevermind then", expectQuit: false},
		{name: "blank", answer: "", expect: "Nevermind then", expectQuit: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld()
			gs, sio := newTestState(t, w, Options{})
			sio.answers = []string{tc.answer}

			err := gs.Advance("quit")

			assert.NoError(err)
			assert.Equal(tc.expect, sio.take())
			assert.Equal(tc.expectQuit, gs.Quitting())
		})
	}
}

func Test_State_Advance_notUnderstood(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld()
	gs, sio := newTestState(t, w, Options{})

	err := gs.Advance("dance wildly")

	assert.True(qerrors.IsInterpreter(err))
	assert.Equal(`I don't know how to "dance wildly". Type HELP to see what you can do.`, qerrors.GameMessage(err))
	assert.Empty(sio.take())
}

func Test_State_Advance_help(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld()
	gs, sio := newTestState(t, w, Options{})

	assert.NoError(gs.Advance("help"))

	out := sio.take()
	assert.Contains(out, "Here are the commands you can use")
	assert.Contains(out, "LOOK")
	assert.Contains(out, "PUT")
	assert.NotContains(out, "DEBUG")
}

func Test_State_Advance_debug(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		assert := assert.New(t)
		w := newTestWorld()
		gs, _ := newTestState(t, w, Options{})

		err := gs.Advance("debug room")

		assert.True(qerrors.IsInterpreter(err))
	})

	t.Run("parse", func(t *testing.T) {
		assert := assert.New(t)
		w := newTestWorld()
		gs, sio := newTestState(t, w, Options{Debug: true})

		assert.NoError(gs.Advance("debug parse take can"))

		out := sio.take()
		assert.Contains(out, "2 interpretation(s) at level Partial")
		assert.False(gs.Player.Has(w.tinCan), "parsing does not run anything")
	})

	t.Run("teleport", func(t *testing.T) {
		assert := assert.New(t)
		w := newTestWorld()
		gs, sio := newTestState(t, w, Options{Debug: true})

		assert.NoError(gs.Advance("debug room hall"))

		assert.Equal(`Poof! You are now in "HALL"`, sio.take())
		assert.Equal(w.hall, gs.Player.CurrentRoom())
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		assert := assert.New(t)
		w := newTestWorld()
		gs, _ := newTestState(t, w, Options{Debug: true})

		err := gs.Advance("debug weather")

		assert.True(qerrors.IsInterpreter(err))
		assert.Equal(`I don't know how to debug "weather"`, qerrors.GameMessage(err))
		assert.Contains(err.Error(), "unknown debug subcommand WEATHER")
	})

	t.Run("unknown room", func(t *testing.T) {
		assert := assert.New(t)
		w := newTestWorld()
		gs, _ := newTestState(t, w, Options{Debug: true})

		err := gs.Advance("debug room cellar")

		assert.True(qerrors.IsInterpreter(err))
	})
}

func Test_State_Advance_debugThing(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    []string
		expectErr bool
	}{
		{name: "in another room", input: "debug thing painting", expect: []string{"Info for PAINTING", "Scenery"}},
		{name: "in a container", input: "debug thing coin", expect: []string{"Info for COIN"}},
		{name: "in pockets", input: "debug thing key", expect: []string{"Info for KEY", "metal"}},
		{name: "nowhere", input: "debug thing spoon", expectErr: true},
		{name: "listing", input: "debug things", expect: []string{"PAINTING", "HALL", "COIN", "CHEST", "@POCKETS"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld()
			coin := NewItem("COIN", "a", "coin")
			if err := w.chest.Add(coin); err != nil {
				t.Fatal(err)
			}
			gs, sio := newTestState(t, w, Options{Debug: true})

			err := gs.Advance(tc.input)

			if tc.expectErr {
				assert.True(qerrors.IsInterpreter(err))
				return
			}
			if !assert.NoError(err) {
				return
			}
			out := sio.take()
			for _, want := range tc.expect {
				assert.Contains(out, want)
			}
		})
	}
}

func Test_State_Advance_logsCommand(t *testing.T) {
	assert := assert.New(t)
	core, logs := observer.New(zap.DebugLevel)
	w := newTestWorld()
	gs, _ := newTestState(t, w, Options{Log: zap.New(core)})

	assert.NoError(gs.Advance("take tin can"))

	entries := logs.FilterMessage("running command").All()
	if !assert.Len(entries, 1) {
		return
	}
	fields := entries[0].ContextMap()
	assert.Equal("TAKE", fields["command"])
	assert.Equal("kind:item", fields["scope"])
}

func Test_State_Look(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld()
	gs, _ := newTestState(t, w, Options{})

	look := gs.Look()

	assert.True(strings.HasPrefix(look, "A small kitchen."))
	assert.Contains(look, "table")
	assert.Contains(look, "chest")
}

func Test_State_Advance_noRoom(t *testing.T) {
	testCases := []struct {
		name          string
		setup         func(w *testWorld, gs *State)
		input         string
		expectMessage string
	}{
		{
			name: "container is full",
			setup: func(w *testWorld, gs *State) {
				w.chest.Capacity = 1
				if err := w.chest.Add(w.sodaCan); err != nil {
					panic(err)
				}
			},
			input:         "put tin can in chest",
			expectMessage: "There isn't room for that in the chest",
		},
		{
			name: "pockets are full",
			setup: func(w *testWorld, gs *State) {
				gs.Player.Pockets.Capacity = 1
			},
			input:         "take tin can",
			expectMessage: "There isn't room for that in your pockets",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld()
			gs, sio := newTestState(t, w, Options{})
			tc.setup(w, gs)

			err := gs.Advance(tc.input)

			assert.True(qerrors.IsInterpreter(err))
			assert.ErrorIs(err, ErrNoRoom)
			assert.Equal(tc.expectMessage, qerrors.GameMessage(err))
			assert.Empty(sio.take())
			assert.False(w.chest.Holds(w.tinCan))
			assert.False(gs.Player.Has(w.tinCan))
		})
	}
}
