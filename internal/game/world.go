package game

// World is everything needed to start a game.
type World struct {
	// Title is the name of the game.
	Title string

	// Intro is shown to the player when the game starts.
	Intro string

	// Rooms has every room in the world, by label, already holding its
	// things.
	Rooms map[string]*Room

	// Start is the label of the room the player starts in.
	Start string

	// Inventory is what the player starts out carrying.
	Inventory []Thing

	// PocketSize is the capacity of the player's pockets. If less than 1,
	// DefaultPocketSize is used.
	PocketSize int
}
