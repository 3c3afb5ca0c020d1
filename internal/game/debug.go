package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/qerrors"
	"github.com/dekarrin/quill/internal/util"
)

// This file contains functions for handling the debug commands of game.State.

// Debug inspects the game world and the command interpreter. It is only
// understood when a State is created with Options.Debug set.
var Debug = command.MustDefine(command.Definition{
	Name:        "DEBUG",
	Description: "Inspect the game world and how input is understood",
	Pattern:     "{verb}[ {string_arg:none}]",
	Verbs:       []string{"debug"},
	Args:        []string{"string_arg"},
	Examples:    []string{"debug room", "debug room DINING_ROOM", "debug things", "debug thing KEY", "debug parse take the can"},
})

func (gs *State) debug(call command.Call) (string, error) {
	args := strings.TrimSpace(call.Text(command.PlaceholderStringArg))
	sub, rest, _ := strings.Cut(args, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToUpper(sub) {
	case "ROOM":
		return gs.executeDebugRoom(strings.ToUpper(rest))
	case "THINGS":
		return gs.ListThings(), nil
	case "THING":
		return gs.GetThingInfo(rest)
	case "PARSE":
		return gs.executeDebugParse(rest)
	case "":
		return "Type DEBUG ROOM, DEBUG THINGS, DEBUG THING label, or DEBUG PARSE text", nil
	default:
		return "", qerrors.Interpreter(fmt.Sprintf("I don't know how to debug %q", sub), "unknown debug subcommand "+strings.ToUpper(sub))
	}
}

func (gs *State) executeDebugRoom(roomLabel string) (string, error) {
	if roomLabel == "" {
		return gs.Player.CurrentRoom().String() + "\n\n(Type 'DEBUG ROOM label' to teleport to that room)", nil
	}

	room, ok := gs.World[roomLabel]
	if !ok {
		return "", qerrors.Interpreterf("There doesn't seem to be any rooms with label %q in this world", roomLabel)
	}

	gs.Player.MoveTo(room)
	gs.focus = nil

	return fmt.Sprintf("Poof! You are now in %q", roomLabel), nil
}

// executeDebugParse shows every interpretation of text without carrying any of
// them out.
func (gs *State) executeDebugParse(text string) (string, error) {
	if text == "" {
		return "", qerrors.Interpreterf("Give the text to parse after DEBUG PARSE")
	}

	res := gs.dispatcher.Evaluate(text, gs.Player, gs.focus)
	if len(res.Candidates) == 0 {
		return fmt.Sprintf("%q does not match any command (%s)", text, res.Level), nil
	}

	data := [][]string{{"Command", "Scope", "Meaning"}}
	for _, c := range res.Candidates {
		data = append(data, []string{c.Command.Name, c.Scope.String(), describeCandidate(c)})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	header := fmt.Sprintf("\n%d interpretation(s) at level %s", len(res.Candidates), res.Level)
	return rosed.Edit(header).
		InsertTableOpts(0, data, gs.io.Width, tableOpts).
		String(), nil
}

// ListThings returns a text table of every thing in the world and where it
// is.
func (gs *State) ListThings() string {
	data := [][]string{{"Thing", "Kind", "Where"}}

	add := func(where string, things []Thing) {
		walk(things, func(t Thing) {
			b := t.Base()
			in := where
			if h, ok := b.in.(Thing); ok {
				in = h.Base().Label
			}
			data = append(data, []string{b.Label, t.Kind().Name(), in})
		})
	}

	add("@POCKETS", gs.Player.Pockets.contents)
	for _, label := range util.OrderedKeys(gs.World) {
		add(label, gs.World[label].Things())
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, gs.io.Width, tableOpts).
		String()
}

// GetThingInfo returns a description of every property of the thing with
// the given label, wherever it is.
func (gs *State) GetThingInfo(label string) (string, error) {
	t := gs.findThing(label)
	if t == nil {
		return "", qerrors.Interpreterf("There doesn't seem to be anything with label %q in this world", label)
	}
	b := t.Base()

	info := [][2]string{
		{"Name", b.Name},
		{"ID", b.ID.String()},
		{"Kind", t.Kind().Name()},
		{"Material", b.Material.String()},
		{"Size", fmt.Sprintf("%d", b.Size)},
	}
	if len(b.Aliases) > 0 {
		info = append(info, [2]string{"Aliases", strings.Join(b.Aliases, ", ")})
	}
	if b.Location != "" {
		info = append(info, [2]string{"Location", b.Location})
	}
	if b.Scenery {
		info = append(info, [2]string{"Scenery", "yes"})
	}
	if b.Secret {
		info = append(info, [2]string{"Secret", "yes"})
	}

	switch v := t.(type) {
	case *Container:
		info = append(info, [2]string{"Capacity", fmt.Sprintf("%d/%d used", v.UsedSpace(), v.Capacity)})
	case *Door:
		dest := "(nowhere)"
		if v.dest != nil {
			dest = v.dest.Label
		}
		info = append(info, [2]string{"Leads To", dest})
		info = append(info, [2]string{"Locked", fmt.Sprintf("%t", v.Locked)})
	}

	// build at width + 2 then eliminate the left margin that
	// InsertDefinitionsTable always adds to remove the 2 extra
	// chars
	tableOpts := rosed.Options{ParagraphSeparator: "\n", NoTrailingLineSeparators: true}
	output := rosed.Edit("Info for "+b.Label+"\n"+
		"\n",
	).
		InsertDefinitionsTableOpts(math.MaxInt, info, gs.io.Width+2, tableOpts).
		LinesFrom(2).
		Apply(func(idx int, line string) []string {
			line = strings.Replace(line[2:], "  -", "  :", 1)
			return []string{line}
		}).
		String()

	return output, nil
}

func (gs *State) findThing(label string) Thing {
	label = strings.ToUpper(label)

	var found Thing
	find := func(t Thing) {
		if found == nil && t.Base().Label == label {
			found = t
		}
	}

	walk(gs.Player.Pockets.contents, find)
	if found != nil {
		return found
	}
	for _, roomLabel := range util.OrderedKeys(gs.World) {
		if t := gs.World[roomLabel].ThingByLabel(label); t != nil {
			return t
		}
	}
	return nil
}
