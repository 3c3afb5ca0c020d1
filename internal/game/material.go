package game

import "strings"

// File material.go holds the materials that items can be made of.

// Material is what an item, surface, or structure is made of. It decides how
// the thing smells and tastes.
type Material struct {
	// Name is shown in descriptions unless the material is Nondescript.
	Name string

	// Smells and Tastes are the possible descriptions of the material's smell
	// and taste. One is picked at random each time. Either may be empty.
	Smells []string
	Tastes []string

	Combustible bool
	Fragile     bool
	Consumable  bool

	// Liquid is true for materials that cannot hold a shape.
	Liquid bool
}

func (m *Material) String() string {
	return m.Name
}

var (
	Nondescript = &Material{Name: "non-descript"}

	Metal = &Material{
		Name:   "metal",
		Smells: []string{"metallic", "like rust"},
		Tastes: []string{"metallic"},
	}

	RustyTin = &Material{
		Name:   "rusty tin",
		Smells: []string{"like rust"},
		Tastes: []string{"sharp... maybe you shouldn't taste it anymore", "metallic", "rusty"},
	}

	BrittleMetal = &Material{
		Name:    "metal",
		Smells:  []string{"metallic", "like rust"},
		Tastes:  []string{"metallic"},
		Fragile: true,
	}

	Stone = &Material{
		Name:   "stone",
		Smells: []string{"earthy", "...rocky? rocky", "stoned"},
		Tastes: []string{"earthy"},
	}

	Concrete = &Material{Name: "concrete"}

	Dirt = &Material{
		Name:   "dirt",
		Smells: []string{"earthy", "like the great outdoors", "like glorious worm poo"},
		Tastes: []string{"earthy", "like the physical manifestation of the idea 'why did I just taste dirt'"},
	}

	Mud = &Material{
		Name:   "mud",
		Smells: []string{"muddy"},
		Tastes: []string{"like you need a mental exam for tasting mud.  It's mud, bro"},
		Liquid: true,
	}

	Wood = &Material{
		Name: "wood",
		Smells: []string{
			"of pine",
			"of cherry",
			"faintly of eucalyptus",
			"strongly of cedar",
			"of hickory",
			"like baking ham",
		},
		Tastes:      []string{"pulpy"},
		Combustible: true,
	}

	Glass = &Material{Name: "glass", Fragile: true}

	Water = &Material{
		Name:       "water",
		Smells:     []string{"like water"},
		Tastes:     []string{"like water"},
		Liquid:     true,
		Consumable: true,
	}

	Ice = &Material{
		Name:    "ice",
		Smells:  []string{"like cold water"},
		Tastes:  []string{"an unflavored popsicle"},
		Fragile: true,
	}

	ThickIce = &Material{
		Name:   "thick ice",
		Smells: []string{"like cold water"},
		Tastes: []string{"an unflavored popsicle"},
	}

	Leather   = &Material{Name: "leather"}
	Paper     = &Material{Name: "paper", Combustible: true}
	Cardboard = &Material{Name: "cardboard", Combustible: true}
)

// MaterialsByString maps the label of each built-in material to it. Labels
// are upper case with underscores for spaces.
var MaterialsByString = map[string]*Material{
	"DEFAULT":       Nondescript,
	"METAL":         Metal,
	"RUSTY_TIN":     RustyTin,
	"BRITTLE_METAL": BrittleMetal,
	"STONE":         Stone,
	"CONCRETE":      Concrete,
	"DIRT":          Dirt,
	"MUD":           Mud,
	"WOOD":          Wood,
	"GLASS":         Glass,
	"WATER":         Water,
	"ICE":           Ice,
	"THICK_ICE":     ThickIce,
	"LEATHER":       Leather,
	"PAPER":         Paper,
	"CARDBOARD":     Cardboard,
}

// LookupMaterial returns the built-in material with the given label. Case is
// ignored and spaces may be used in place of underscores. An empty label gives
// Nondescript.
func LookupMaterial(label string) (*Material, bool) {
	if label == "" {
		return Nondescript, true
	}
	label = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
	m, ok := MaterialsByString[label]
	return m, ok
}

func (m *Material) isNondescript() bool {
	return m == nil || m == Nondescript
}
