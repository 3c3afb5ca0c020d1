package qw

import (
	"fmt"
	"strings"

	"github.com/dekarrin/quill/internal/game"
	"github.com/dekarrin/quill/internal/util"
)

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelWorldData is the top-level structure containing all keys in a
// complete QW 'DATA' type file.
type topLevelWorldData struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
	World  world  `toml:"world"`
	Rooms  []room `toml:"room"`
}

type world struct {
	Title      string `toml:"title"`
	Intro      string `toml:"intro"`
	Start      string `toml:"start"`
	PocketSize int    `toml:"pocket_size"`
	Inventory  []item `toml:"inventory"`
}

type room struct {
	Label       string `toml:"label"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Items       []item `toml:"item"`
}

func (tr room) toGameRoom() (*game.Room, error) {
	r := game.NewRoom(tr.Label, tr.Name, tr.Description)

	for i := range tr.Items {
		t, err := tr.Items[i].toGameThing()
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", tr.Items[i].Label, err)
		}
		r.Add(t, tr.Items[i].Location)
	}

	return r, nil
}

// item types.
const (
	typeItem      = "ITEM"
	typeContainer = "CONTAINER"
	typeDoor      = "DOOR"
)

type item struct {
	Type        string   `toml:"type"`
	Label       string   `toml:"label"`
	Article     string   `toml:"article"`
	Name        string   `toml:"name"`
	Aliases     []string `toml:"aliases"`
	Description string   `toml:"description"`
	Material    string   `toml:"material"`
	Location    string   `toml:"location"`
	Verb        string   `toml:"verb"`
	Scenery     bool     `toml:"scenery"`
	Secret      bool     `toml:"secret"`
	Size        int      `toml:"size"`

	// containers only
	Capacity int `toml:"capacity"`

	// doors only
	Dest     string `toml:"dest"`
	Locked   bool   `toml:"locked"`
	Key      string `toml:"key"`
	Password string `toml:"password"`

	Contents []item `toml:"contents"`
}

func (ti item) kind() string {
	if ti.Type == "" {
		return typeItem
	}
	return strings.ToUpper(ti.Type)
}

// toGameThing creates the Thing the item defines, along with everything in
// it. The item must already have been validated.
func (ti item) toGameThing() (game.Thing, error) {
	article := ti.Article
	if article == "" {
		article = util.ArticleFor(ti.Name, false)
	}

	var t game.Thing
	var base *game.Item
	switch ti.kind() {
	case typeContainer:
		c := game.NewContainer(ti.Label, article, ti.Name, ti.Capacity)
		t, base = c, &c.Item
	case typeDoor:
		d := game.NewDoor(ti.Label, article, ti.Name, ti.Dest)
		d.Locked = ti.Locked
		d.Key = ti.Key
		d.Password = ti.Password
		t, base = d, &d.Item
	default:
		it := game.NewItem(ti.Label, article, ti.Name)
		t, base = it, it
	}

	base.Description = ti.Description
	base.Scenery = ti.Scenery
	base.Secret = ti.Secret
	base.Aliases = append([]string(nil), ti.Aliases...)
	if ti.Verb != "" {
		base.Verb = ti.Verb
	}
	if ti.Size > 0 {
		base.Size = ti.Size
	}
	if ti.Material != "" {
		mat, ok := game.LookupMaterial(ti.Material)
		if !ok {
			return nil, fmt.Errorf("material: no material called %q exists", ti.Material)
		}
		base.Material = mat
	}

	for i := range ti.Contents {
		inner, err := ti.Contents[i].toGameThing()
		if err != nil {
			return nil, fmt.Errorf("contents[%d]: %w", i, err)
		}
		if c, ok := t.(*game.Container); ok {
			if err := c.Add(inner); err != nil {
				return nil, fmt.Errorf("contents[%d]: %w", i, err)
			}
		} else {
			base.Put(inner)
		}
	}

	return t, nil
}
