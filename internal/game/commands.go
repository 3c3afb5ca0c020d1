package game

import "github.com/dekarrin/quill/internal/command"

// The commands a player can give. Each is bound to handlers in
// registerHandlers.
var (
	Look = command.MustDefine(command.Definition{
		Name:        "LOOK",
		Description: "Examine an item or your surroundings",
		Pattern:     "{verb}[ {object:room}]",
		Verbs:       []string{"look", "look around", "look at", "look inside", "look in", "examine", "scrutinize"},
		Examples:    []string{"look around", "look in bag", "look at the tin can"},
	})

	Take = command.MustDefine(command.Definition{
		Name:        "TAKE",
		Description: "Take something and add it to your inventory",
		Pattern:     "{verb} {object} [from {object_in:room}]",
		Verbs:       []string{"take", "get", "pick up", "acquire", "grab", "snatch"},
		Examples:    []string{"take sword", "pick up coins", "snatch lint from the bag"},
	})

	Discard = command.MustDefine(command.Definition{
		Name:        "DISCARD",
		Description: "Discard an item",
		Pattern:     "{verb} {object}",
		Verbs:       []string{"drop", "get rid of", "lose", "discard", "ditch"},
		Examples:    []string{"drop string", "ditch the broadsword"},
	})

	ShowInventory = command.MustDefine(command.Definition{
		Name:        "SHOW_INVENTORY",
		Description: "Show the player's inventory",
		Pattern:     "{verb}",
		Verbs:       []string{"i", "inventory", "show inventory", "what do i have"},
	})

	Quit = command.MustDefine(command.Definition{
		Name:        "QUIT",
		Description: "Quit the game",
		Pattern:     "{verb}",
		Verbs:       []string{"quit", "exit", "q", "end", "stop"},
	})

	Open = command.MustDefine(command.Definition{
		Name:        "OPEN",
		Description: "Open a door or container",
		Pattern:     "{verb} {object}[ with {object_arg:none}]",
		Verbs:       []string{"open"},
		Args:        []string{"object_arg"},
		Examples:    []string{"open the door", "open the chest with the crowbar"},
		Requires:    []command.Capability{CanOpen},
	})

	Help = command.MustDefine(command.Definition{
		Name:        "HELP",
		Description: "See game help",
		Pattern:     "{verb}[ with][ {string_arg:none}]",
		Verbs:       []string{"help", "what do i do", "?", "ugg"},
		Args:        []string{"string_arg"},
	})

	Smell = command.MustDefine(command.Definition{
		Name:        "SMELL",
		Description: "Smell a thing",
		Pattern:     "{verb} {object}",
		Verbs:       []string{"smell", "sniff"},
		Examples:    []string{"smell yourself", "smell the tin can"},
	})

	Taste = command.MustDefine(command.Definition{
		Name:        "TASTE",
		Description: "Taste a thing",
		Pattern:     "{verb} {object}",
		Verbs:       []string{"taste", "lick"},
		Examples:    []string{"taste your lint", "taste the door"},
	})

	Unlock = command.MustDefine(command.Definition{
		Name:        "UNLOCK",
		Description: "Unlock a locked thing",
		Pattern:     "{verb} {object}[ with {object_arg:none}]",
		Verbs:       []string{"unlock", "force open", "pry open"},
		Args:        []string{"object_arg"},
		Examples:    []string{"unlock the door with the metal key", "force open the chest with the pry bar"},
		Requires:    []command.Capability{CanLock},
	})

	Enter = command.MustDefine(command.Definition{
		Name:        "ENTER",
		Description: "Enter a room",
		Pattern:     "{verb} {object}",
		Verbs: []string{
			"enter", "penetrate", "run in to", "run into", "run through",
			"sally forth towards", "go into", "go in to", "go to", "go",
		},
		Examples: []string{"enter the dining room", "run through the door", "penetrate the arboretum"},
	})

	Say = command.MustDefine(command.Definition{
		Name:        "SAY",
		Description: "Say something out loud",
		Pattern:     `{verb} "{string_arg}"[ to {object:room}]`,
		Verbs:       []string{"say", "speak", "announce", "yell", "scream", "whisper"},
		Args:        []string{"string_arg"},
		Examples:    []string{`say "abracadabra"`, `whisper "password" to door`, `say "you are an idiot" to the vagabond`},
	})

	PutIn = command.MustDefine(command.Definition{
		Name:        "PUT_IN",
		Description: "Put a thing in a container",
		Pattern:     "{verb} {object_arg} in {object}",
		Verbs:       []string{"put", "place", "store", "sequester"},
		Args:        []string{"object_arg"},
		Examples:    []string{"put the knife in the cabinet", "store the scroll in the chest", "sequester the Congress in Hell"},
		Requires:    []command.Capability{CanHold},
	})
)

// Commands is every built-in command, in the order they are listed in help.
var Commands = []*command.Definition{
	Look, Take, Discard, ShowInventory, Quit, Open, Help, Smell, Taste, Unlock, Enter, Say, PutIn,
}
