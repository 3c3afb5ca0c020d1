package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/qerrors"
)

// File handlers.go binds the built-in commands to what they do for each kind
// of entity.

// registerHandlers declares every kind with the state's registry and binds
// the handler of each command to the kinds it applies to.
func (gs *State) registerHandlers() error {
	reg := gs.reg

	if err := reg.Declare(AllKinds...); err != nil {
		return err
	}
	reg.Add(Commands...)

	byKind := []struct {
		def  *command.Definition
		kind *command.Kind
		h    command.Handler
	}{
		{Look, KindRoom, gs.lookRoom},
		{Look, KindItem, gs.lookItem},
		{Look, KindContainer, gs.lookInContainer},
		{Look, KindDoor, gs.lookDoor},
		{Take, KindItem, gs.takeItem},
		{Take, KindDoor, gs.takeDoor},
		{Discard, KindItem, gs.dropItem},
		{Open, KindDoor, gs.openDoor},
		{Open, KindContainer, gs.lookInContainer},
		{Smell, KindEntity, gs.smellEntity},
		{Smell, KindItem, gs.smellItem},
		{Taste, KindEntity, gs.tasteEntity},
		{Taste, KindItem, gs.tasteItem},
		{Unlock, KindDoor, gs.unlockDoor},
		{Enter, KindDoor, gs.enterDoor},
		{PutIn, KindContainer, gs.putIn},
	}
	for _, b := range byKind {
		if err := reg.Handle(b.def, b.kind, b.h); err != nil {
			return err
		}
	}

	generic := []struct {
		def *command.Definition
		h   command.Handler
	}{
		{ShowInventory, gs.showInventory},
		{Quit, gs.quit},
		{Help, gs.help},
		{Say, gs.say},
	}
	for _, b := range generic {
		if err := reg.HandleGeneric(b.def, b.h); err != nil {
			return err
		}
	}
	if gs.debugEnabled {
		if err := reg.HandleGeneric(Debug, gs.debug); err != nil {
			return err
		}
	}

	for _, room := range gs.World {
		var err error
		walk(room.contents, func(t Thing) {
			d, ok := t.(*Door)
			if !ok || d.Password == "" || err != nil {
				return
			}
			err = reg.HandleInstance(Say, d, gs.sayPassword(d))
		})
		if err != nil {
			return err
		}
	}

	// the player's own pockets are never something they can pick up or drop.
	return reg.Exclude(KindItem, gs.Player.Pockets)
}

func (gs *State) lookRoom(call command.Call) (string, error) {
	room, ok := call.Target.(*Room)
	if !ok {
		return "", errUnexpectedTarget(call)
	}
	return gs.wrap(room.Look(gs.pick)), nil
}

func (gs *State) lookItem(call command.Call) (string, error) {
	t, ok := call.Target.(Thing)
	if !ok {
		return "", errUnexpectedTarget(call)
	}
	return gs.wrap(t.Base().Look()), nil
}

func (gs *State) lookInContainer(call command.Call) (string, error) {
	c, ok := call.Target.(*Container)
	if !ok {
		return "", errUnexpectedTarget(call)
	}
	return listContents(c, gs.Player), nil
}

func (gs *State) lookDoor(call command.Call) (string, error) {
	d, ok := call.Target.(*Door)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	desc := d.Look()
	switch {
	case d.Locked:
		desc += ". It's locked."
	case d.dest == nil:
		desc += ". It doesn't seem to lead anywhere."
	default:
		desc += ". It leads to " + d.dest.Name + "."
	}
	return gs.wrap(desc), nil
}

func (gs *State) takeItem(call command.Call) (string, error) {
	t, ok := call.Target.(Thing)
	if !ok {
		return "", errUnexpectedTarget(call)
	}
	it := t.Base()

	if it.Scenery {
		return "You can't take that", nil
	}
	if gs.Player.Has(t) {
		return "You already have that", nil
	}
	if err := gs.Player.Pockets.Add(t); err != nil {
		if errors.Is(err, ErrNoRoom) {
			return "", qerrors.WrapInterpreterf(err, "There isn't room for that in your pockets")
		}
		return "", err
	}
	return fmt.Sprintf("You put the %s in your pockets", it.Name), nil
}

func (gs *State) takeDoor(call command.Call) (string, error) {
	return "It's firmly attached to the wall. You can't take that", nil
}

func (gs *State) dropItem(call command.Call) (string, error) {
	t, ok := call.Target.(Thing)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	if !gs.Player.Has(t) {
		return "You can't drop a thing you don't have", nil
	}
	gs.Player.CurrentRoom().Add(t, "on the floor")
	return fmt.Sprintf("You drop the %s", t.Base().Name), nil
}

func (gs *State) openDoor(call command.Call) (string, error) {
	d, ok := call.Target.(*Door)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	whereItGoes := "...nothing"
	if d.dest != nil {
		whereItGoes = d.dest.Name
	}

	if d.Secret {
		return "What are you trying to do?", nil
	}

	key, _ := call.Object(command.PlaceholderObjectArg).(Thing)
	if d.Locked && d.Unlocks(key) {
		d.Locked = false
		return gs.wrap(fmt.Sprintf("You unlock the %s with the %s and open it. Eureka! Through the door you see %s", d.Name, key.Base().Name, whereItGoes)), nil
	}
	if d.Locked {
		return "It's locked", nil
	}
	return gs.wrap("You opened it.  Through the door you see " + whereItGoes), nil
}

func (gs *State) unlockDoor(call command.Call) (string, error) {
	d, ok := call.Target.(*Door)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	if !d.Locked {
		return "It's not locked", nil
	}

	key, _ := call.Object(command.PlaceholderObjectArg).(Thing)
	if key == nil {
		return "What do you want to unlock it with?", nil
	}
	if !d.Unlocks(key) {
		return "You can't unlock it with that", nil
	}

	d.Locked = false
	return fmt.Sprintf("You unlock the %s with the %s! It can now open.", d.Name, key.Base().Name), nil
}

func (gs *State) enterDoor(call command.Call) (string, error) {
	d, ok := call.Target.(*Door)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	if d.Secret {
		return "", nil
	}
	if d.Locked {
		return "It's locked", nil
	}
	if d.dest == nil {
		return "It leads nowhere.  You're still in " + gs.Player.CurrentRoom().Name + ".", nil
	}

	gs.Player.MoveTo(d.dest)
	return gs.wrap(d.dest.Look(gs.pick)), nil
}

func (gs *State) smellEntity(call command.Call) (string, error) {
	return gs.pick(nothingToSmell), nil
}

func (gs *State) smellItem(call command.Call) (string, error) {
	t, ok := call.Target.(Thing)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	m := t.Base().Material
	if m == nil || len(m.Smells) == 0 {
		return gs.pick(nothingToSmell), nil
	}
	return "It smells " + gs.pick(m.Smells), nil
}

func (gs *State) tasteEntity(call command.Call) (string, error) {
	return gs.pick(nothingToTaste), nil
}

func (gs *State) tasteItem(call command.Call) (string, error) {
	t, ok := call.Target.(Thing)
	if !ok {
		return "", errUnexpectedTarget(call)
	}

	m := t.Base().Material
	if m == nil || len(m.Tastes) == 0 {
		return gs.pick(nothingToTaste), nil
	}
	return "It tastes " + gs.pick(m.Tastes), nil
}

func (gs *State) putIn(call command.Call) (string, error) {
	c, ok := call.Target.(*Container)
	if !ok {
		return "", errUnexpectedTarget(call)
	}
	t, ok := call.Object(command.PlaceholderObjectArg).(Thing)
	if !ok {
		return "", errUnexpectedTarget(call)
	}
	it := t.Base()

	if t == Thing(gs.Player.Pockets) {
		return "You can't put your pockets in anything", nil
	}
	if t == Thing(c) || inside(c, t) {
		return "You can't put something inside itself", nil
	}
	if it.Scenery {
		return "You can't move that", nil
	}
	if c.Holds(t) {
		return fmt.Sprintf("The %s is already in %s %s", it.Name, gs.Player.possessive(c), c.Name), nil
	}

	if err := c.Add(t); err != nil {
		if errors.Is(err, ErrNoRoom) {
			return "", qerrors.WrapInterpreterf(err, "There isn't room for that in %s %s", gs.Player.possessive(c), c.Name)
		}
		return "", err
	}
	return fmt.Sprintf("You put the %s in %s %s", it.Name, gs.Player.possessive(c), c.Name), nil
}

func (gs *State) showInventory(call command.Call) (string, error) {
	return listContents(gs.Player.Pockets, gs.Player), nil
}

func (gs *State) quit(call command.Call) (string, error) {
	answer, err := gs.io.Input("Are you sure you want to quit? (y/N) ")
	if err != nil {
		return "", fmt.Errorf("get quit confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "y" || answer == "yes" {
		gs.quitting = true
		return "Thanks for playing!  Later...", nil
	}
	return "Nevermind then", nil
}

func (gs *State) help(call command.Call) (string, error) {
	topic := call.Text(command.PlaceholderStringArg)
	if topic == "" {
		return gs.helpTable(), nil
	}
	return gs.reg.Help(topic), nil
}

func (gs *State) say(call command.Call) (string, error) {
	said := call.Text(command.PlaceholderStringArg)
	out := fmt.Sprintf("You %s %q", call.Verb, said)

	if t, ok := call.Target.(Thing); ok {
		out += " to the " + t.Base().Name
	}
	return out, nil
}

// sayPassword gives the handler for saying things to a door that has a
// password.
func (gs *State) sayPassword(d *Door) command.Handler {
	return func(call command.Call) (string, error) {
		said := call.Text(command.PlaceholderStringArg)
		out := fmt.Sprintf("You %s %q to the %s", call.Verb, said, d.Name)

		if !d.CheckPassword(said) {
			return out + "\n" + gs.pick(nothingHappens), nil
		}
		if !d.Locked {
			return out + "\nIt's already unlocked.", nil
		}

		d.Locked = false
		return out + fmt.Sprintf("\nThe %s clicks. It's unlocked now.", d.Name), nil
	}
}

// inside returns whether c is somewhere inside t.
func inside(c *Container, t Thing) bool {
	for h := c.in; h != nil; {
		ht, ok := h.(Thing)
		if !ok {
			return false
		}
		if ht == t {
			return true
		}
		h = ht.Base().in
	}
	return false
}

func errUnexpectedTarget(call command.Call) error {
	return fmt.Errorf("handler got unexpected target %T for %q", call.Target, call.Verb)
}
