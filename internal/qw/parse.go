package qw

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dekarrin/quill/internal/game"
)

// these two are getting chucked into a char class so order matters
const labelChars = `]A-Z0-9_!?#%^&*().,<>/+=[|{}:;-`
const aliasChars = `]A-Z0-9_!?#%^&*().,<>/+=[|{}:; '-`

var (
	labelRegexp             = regexp.MustCompile(fmt.Sprintf(`^[%s]+$`, labelChars))
	aliasRegexp             = regexp.MustCompile(fmt.Sprintf(`^(?:[%s][%s]*)?[%s]+$`, labelChars, aliasChars, labelChars))
	identifierBadCharRegexp = regexp.MustCompile(fmt.Sprintf(`[^%s]`, labelChars))
	aliasBadCharRegexp      = regexp.MustCompile(fmt.Sprintf(`[^%s]`, aliasChars))
)

func parseManifest(m topLevelManifest) (Manifest, error) {
	manif := Manifest{
		Files: make([]string, 0, len(m.Files)),
	}

	for idx, f := range m.Files {
		if strings.TrimSpace(f) == "" {
			return manif, fmt.Errorf("files[%d]: must not be blank", idx)
		}
		manif.Files = append(manif.Files, f)
	}

	return manif, nil
}

type stringSet map[string]bool

type worldSymbols struct {
	roomLabels stringSet
	itemLabels stringSet
}

func parseWorldData(data topLevelWorldData) (game.World, error) {
	world := game.World{
		Title:      data.World.Title,
		Intro:      data.World.Intro,
		Rooms:      make(map[string]*game.Room),
		PocketSize: data.World.PocketSize,
	}

	// first, get all of our game symbols so we can immediately check validity
	// of every reference as we go through it.
	symbols, err := scanSymbols(data)
	if err != nil {
		return world, err
	}

	// validate start
	if data.World.Start == "" {
		return world, fmt.Errorf("world: must have non-blank 'start' field")
	}
	if _, ok := symbols.roomLabels[strings.ToUpper(data.World.Start)]; !ok {
		return world, fmt.Errorf("world: start: no room with label %q exists", data.World.Start)
	}
	world.Start = strings.ToUpper(data.World.Start)

	if data.World.PocketSize < 0 {
		return world, fmt.Errorf("world: pocket_size: must not be negative")
	}

	// validate starting inventory
	for idx, it := range data.World.Inventory {
		if err := validateItemDef(it, symbols); err != nil {
			return world, fmt.Errorf("world: inventory[%d]: %w", idx, err)
		}
		if it.Location != "" {
			return world, fmt.Errorf("world: inventory[%d]: 'location' is not used for carried items", idx)
		}

		t, err := it.toGameThing()
		if err != nil {
			return world, fmt.Errorf("world: inventory[%d]: %w", idx, err)
		}
		world.Inventory = append(world.Inventory, t)
	}

	// validate rooms
	for _, r := range data.Rooms {
		if err := validateRoomDef(r, symbols); err != nil {
			return world, fmt.Errorf("rooms[%q]: %w", r.Label, err)
		}

		room, err := r.toGameRoom()
		if err != nil {
			return world, fmt.Errorf("rooms[%q]: %w", r.Label, err)
		}
		world.Rooms[room.Label] = room
	}

	return world, nil
}

// this builds up a pre-list of 'seen' labels so we can check for references
// later. Labels are checked for conflicts within their own class of objects
// and for validity; item aliases are checked for validity.
//
// Error is returned if any alias or label fails to follow its naming rules or
// if any of them conflicts with another. Otherwise, global symbols are
// returned so that they can be used to check references to them. The global
// symbols returned will all be converted to upper case already.
func scanSymbols(top topLevelWorldData) (worldSymbols, error) {
	syms := worldSymbols{
		roomLabels: make(stringSet),
		itemLabels: make(stringSet),
	}

	var scanItems func(items []item, where string) error
	scanItems = func(items []item, where string) error {
		for _, it := range items {
			itLabelUpper := strings.ToUpper(it.Label)
			if err := checkLabel(itLabelUpper, syms.itemLabels, "an item"); err != nil {
				return fmt.Errorf("%s: item %q: %w", where, it.Label, err)
			}
			syms.itemLabels[itLabelUpper] = true

			// aliases only need to be unique within the one item
			itAliases := make(stringSet)
			for _, alias := range it.Aliases {
				aliasUpper := strings.ToUpper(alias)
				if err := checkAlias(aliasUpper, itAliases); err != nil {
					return fmt.Errorf("%s: item %q: alias %q: %w", where, it.Label, alias, err)
				}
				itAliases[aliasUpper] = true
			}

			if err := scanItems(it.Contents, fmt.Sprintf("%s: item %q", where, it.Label)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range top.Rooms {
		rLabelUpper := strings.ToUpper(r.Label)
		if err := checkLabel(rLabelUpper, syms.roomLabels, "a room"); err != nil {
			return syms, fmt.Errorf("room %q: %w", r.Label, err)
		}
		syms.roomLabels[rLabelUpper] = true

		if err := scanItems(r.Items, fmt.Sprintf("room %q", r.Label)); err != nil {
			return syms, err
		}
	}

	if err := scanItems(top.World.Inventory, "world: inventory"); err != nil {
		return syms, err
	}

	return syms, nil
}

// validation does not check for symbol uniqueness or name rules violations, but
// it DOES check to ensure that valid symbols are being pointed to by references
// within the room (such as the dest of a door).
func validateRoomDef(r room, syms worldSymbols) error {
	if r.Label == "" {
		return fmt.Errorf("must have non-blank 'label' field")
	}
	if r.Name == "" {
		return fmt.Errorf("must have non-blank 'name' field")
	}

	for idx, it := range r.Items {
		if err := validateItemDef(it, syms); err != nil {
			return fmt.Errorf("items[%d]: %w", idx, err)
		}
	}

	return nil
}

func validateItemDef(it item, syms worldSymbols) error {
	if it.Label == "" {
		return fmt.Errorf("must have non-blank 'label' field")
	}
	if it.Name == "" {
		return fmt.Errorf("must have non-blank 'name' field")
	}
	if it.Size < 0 {
		return fmt.Errorf("size: must not be negative")
	}
	if _, ok := game.LookupMaterial(it.Material); !ok {
		return fmt.Errorf("material: no material called %q exists", it.Material)
	}

	for idx, al := range it.Aliases {
		if al == "" {
			return fmt.Errorf("aliases[%d]: must not be blank", idx)
		}
	}

	kind := it.kind()
	switch kind {
	case typeItem:
		if it.Capacity != 0 {
			return fmt.Errorf("'capacity' is only used for type 'CONTAINER'")
		}
	case typeContainer:
		if it.Capacity < 1 {
			return fmt.Errorf("type 'CONTAINER' must have a 'capacity' of at least 1")
		}
	case typeDoor:
		if it.Capacity != 0 {
			return fmt.Errorf("'capacity' is only used for type 'CONTAINER'")
		}
		if len(it.Contents) > 0 {
			return fmt.Errorf("type 'DOOR' cannot have 'contents'")
		}
		if it.Dest != "" {
			if _, ok := syms.roomLabels[strings.ToUpper(it.Dest)]; !ok {
				return fmt.Errorf("dest: no room has label %q", strings.ToUpper(it.Dest))
			}
		}
	default:
		return fmt.Errorf("type: must be one of 'ITEM', 'CONTAINER', or 'DOOR', not %q", kind)
	}

	if kind != typeDoor {
		if it.Dest != "" || it.Locked || it.Key != "" || it.Password != "" {
			return fmt.Errorf("'dest', 'locked', 'key', and 'password' are only used for type 'DOOR'")
		}
	}

	for idx, inner := range it.Contents {
		if err := validateItemDef(inner, syms); err != nil {
			return fmt.Errorf("contents[%d]: %w", idx, err)
		}
		if inner.Location != "" {
			return fmt.Errorf("contents[%d]: 'location' is only used for items directly in a room", idx)
		}
	}

	return nil
}

func checkAlias(alias string, conflictSet stringSet) error {
	if _, ok := conflictSet[alias]; ok {
		return fmt.Errorf("alias conflicts with another alias")
	}

	if !aliasRegexp.MatchString(alias) {
		// we know the alias is bad; first check if it's due to a space at start
		// or end so we can give a special message
		if strings.HasPrefix(alias, " ") {
			return fmt.Errorf("aliases cannot start with a space")
		}
		if strings.HasSuffix(alias, " ") {
			return fmt.Errorf("aliases cannot end with a space")
		}

		badChar := aliasBadCharRegexp.FindString(alias)
		if badChar == "" {
			badChar = identifierBadCharRegexp.FindString(alias)
		}
		if badChar == "" {
			// something has gone horribly wrong with coding of regular expressions
			panic(fmt.Sprintf("could not identify bad char in alias %q", alias))
		}

		return fmt.Errorf("aliases cannot contain the character %q", badChar)
	}

	return nil
}

func checkLabel(label string, conflictSet stringSet, labeled string) error {
	if label == "" {
		return fmt.Errorf("label must not be blank")
	}
	if _, ok := conflictSet[label]; ok {
		return fmt.Errorf("label %q has already been used for %s", label, labeled)
	}

	if !labelRegexp.MatchString(label) {
		badChar := identifierBadCharRegexp.FindString(label)
		if badChar == "" {
			// something has gone horribly wrong with coding of regular expressions
			panic(fmt.Sprintf("could not identify bad char in label %q", label))
		}

		return fmt.Errorf("%q has the %q character in it which is not allowed for labels", label, badChar)
	}

	return nil
}
