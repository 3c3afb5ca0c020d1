package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/quill/internal/util"
)

// File phrasing.go holds the canned text the game uses to describe things.

var itemDescriptions = []string{
	"There %[3]s %[1]s %[2]s.",
	"%[2]s you see %[1]s.",
	"%[1]s %[3]s %[2]s.",
}

var nothingHappens = []string{
	"... Nothing happens.",
	"(cricket)....   (cricket)....   ",
	"It wasn't very effective.",
	"Oh, sorry, was that supposed to make sense?  It didn't.",
	"A tiny ripple moves out possibly affecting something somewhere eventually.  Just not here or now.",
	"Yeah, that really didn't do anything",
}

var nothingToSmell = []string{
	"You don't smell anything in particular.",
	"It smells like... nothing, really.",
}

var nothingToTaste = []string{
	"It doesn't taste like anything.",
	"You lick it. Nothing interesting happens to your tongue.",
}

// describeThings describes things grouped by where they are, with one
// sentence per location in the order each location is first seen.
func describeThings(things []Thing, pick func([]string) string) string {
	if len(things) == 0 {
		return ""
	}

	var order []string
	groups := map[string][]Thing{}
	for _, t := range things {
		loc := t.Base().Location
		if _, ok := groups[loc]; !ok {
			order = append(order, loc)
		}
		groups[loc] = append(groups[loc], t)
	}

	descs := make([]string, 0, len(order))
	for _, loc := range order {
		grp := groups[loc]

		names := make([]string, len(grp))
		for i := range grp {
			names[i] = grp[i].ShortDescription()
		}

		verb := "are"
		if len(grp) == 1 {
			verb = grp[0].Base().Verb
		}

		if loc == "" {
			loc = "here"
		}

		desc := fmt.Sprintf(pick(itemDescriptions), util.MakeTextList(names, false, true), loc, verb)
		descs = append(descs, util.Capitalize(desc))
	}

	return strings.Join(descs, " ")
}

// listContents gives the bulleted list of what is in a container, as seen by
// player.
func listContents(c *Container, player *Player) string {
	result := fmt.Sprintf("You look in %s %s.", player.possessive(c), c.Name)

	if len(c.contents) == 0 {
		return result + "  There's nothing there."
	}

	names := make([]string, 0, len(c.contents))
	for _, t := range c.contents {
		if t.IsSecret() {
			continue
		}
		names = append(names, t.ShortDescription())
	}
	if len(names) == 0 {
		return result + "  There's nothing there."
	}
	return result + "  You see...\n * " + strings.Join(names, "\n * ")
}
