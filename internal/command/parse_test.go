package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/quill/internal/match"
)

func Test_Tree_Parse(t *testing.T) {
	w := newWorld()

	testCases := []struct {
		name        string
		def         *Definition
		input       string
		ctx         func(w *world) SearchContext
		expectOK    bool
		expectVerb  string
		expectObjs  map[string]Entity
		expectStrs  map[string]string
		expectLevel match.Level
	}{
		{
			name:        "verb alone takes room default",
			def:         defLook,
			input:       "look",
			expectOK:    true,
			expectVerb:  "look",
			expectObjs:  map[string]Entity{"object": w.room},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:        "multi-word verb",
			def:         defLook,
			input:       "look around",
			expectOK:    true,
			expectVerb:  "look around",
			expectObjs:  map[string]Entity{"object": w.room},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:        "verb then object",
			def:         defLook,
			input:       "LOOK   at the Sword",
			expectOK:    true,
			expectVerb:  "look",
			expectObjs:  map[string]Entity{"object": w.sword},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:        "partial name",
			def:         defSmell,
			input:       "sniff tin",
			expectOK:    true,
			expectVerb:  "sniff",
			expectObjs:  map[string]Entity{"object": w.tinCan},
			expectStrs:  map[string]string{},
			expectLevel: match.Incomplete,
		},
		{
			name:     "unknown object",
			def:      defSmell,
			input:    "smell the elephant",
			expectOK: false,
		},
		{
			name:     "wrong verb",
			def:      defSmell,
			input:    "taste sword",
			expectOK: false,
		},
		{
			name:     "blank input",
			def:      defQuit,
			input:    "   ",
			expectOK: false,
		},
		{
			name:        "object in narrows the search",
			def:         defTake,
			input:       "take lint from bag",
			expectOK:    true,
			expectVerb:  "take",
			expectObjs:  map[string]Entity{"object": w.bagLint, "object_in": w.bag},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:        "object in takes room default when omitted",
			def:         defTake,
			input:       "pick up sword",
			expectOK:    true,
			expectVerb:  "pick up",
			expectObjs:  map[string]Entity{"object": w.sword, "object_in": w.room},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:        "object arg defaults to none",
			def:         defOpen,
			input:       "open door",
			expectOK:    true,
			expectVerb:  "open",
			expectObjs:  map[string]Entity{"object": w.door, "object_arg": nil},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:        "object arg given",
			def:         defOpen,
			input:       "open door with sword",
			expectOK:    true,
			expectVerb:  "open",
			expectObjs:  map[string]Entity{"object": w.door, "object_arg": w.sword},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:     "object arg given but not present",
			def:      defOpen,
			input:    "open door with key",
			expectOK: false,
		},
		{
			name:        "string keeps original case",
			def:         defSay,
			input:       `say "Open   Sesame" to the door`,
			expectOK:    true,
			expectVerb:  "say",
			expectObjs:  map[string]Entity{"object": w.door},
			expectStrs:  map[string]string{"string_arg": "Open Sesame"},
			expectLevel: match.Full,
		},
		{
			name:        "string without target",
			def:         defSay,
			input:       `whisper "hello"`,
			expectOK:    true,
			expectVerb:  "whisper",
			expectObjs:  map[string]Entity{"object": w.room},
			expectStrs:  map[string]string{"string_arg": "hello"},
			expectLevel: match.Full,
		},
		{
			name:        "help with topic",
			def:         defHelp,
			input:       "help with look",
			expectOK:    true,
			expectVerb:  "help",
			expectObjs:  map[string]Entity{},
			expectStrs:  map[string]string{"string_arg": "look"},
			expectLevel: match.Full,
		},
		{
			name:        "help without topic",
			def:         defHelp,
			input:       "?",
			expectOK:    true,
			expectVerb:  "?",
			expectObjs:  map[string]Entity{},
			expectStrs:  map[string]string{"string_arg": ""},
			expectLevel: match.Full,
		},
		{
			name:        "literal between objects",
			def:         defPutIn,
			input:       "put gold coin in bag",
			expectOK:    true,
			expectVerb:  "put",
			expectObjs:  map[string]Entity{"object": w.bag, "object_arg": w.coin},
			expectStrs:  map[string]string{},
			expectLevel: match.Full,
		},
		{
			name:     "literal only matches whole words",
			def:      defPutIn,
			input:    "put sword inbag",
			expectOK: false,
		},
		{
			name:        "pronoun refers to focus",
			def:         defSmell,
			input:       "smell it",
			ctx:         func(w *world) SearchContext { return NewSearchContext(w.player, w.sword) },
			expectOK:    true,
			expectVerb:  "smell",
			expectObjs:  map[string]Entity{"object": w.sword},
			expectStrs:  map[string]string{},
			expectLevel: match.FullWithDetail,
		},
		{
			name:     "pronoun without focus",
			def:      defSmell,
			input:    "smell it",
			expectOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ctx := NewSearchContext(w.player, nil)
			if tc.ctx != nil {
				ctx = tc.ctx(w)
			}

			actual, ok := tc.def.Tree().Parse(tc.input, ctx)
			if !tc.expectOK {
				assert.False(ok)
				return
			}
			if !assert.True(ok) {
				return
			}

			assert.Equal(tc.expectVerb, actual.Verb)
			assert.Equal(tc.expectObjs, actual.Objects)
			assert.Equal(tc.expectStrs, actual.Strings)
			assert.Equal(tc.expectLevel, actual.Level)
		})
	}
}

func Test_Tree_Parse_ties(t *testing.T) {
	assert := assert.New(t)
	w := newWorld()

	b, ok := defSmell.Tree().Parse("smell can", NewSearchContext(w.player, nil))
	if !assert.True(ok) {
		return
	}

	assert.Equal(match.Partial, b.Level)
	assert.Equal(Entity(w.tinCan), b.Objects["object"])
	assert.Equal([]Entity{w.tinCan, w.trashCn}, b.Ties["object"])
}

func Test_Tree_Parse_narrowingDoesNotLeak(t *testing.T) {
	assert := assert.New(t)
	w := newWorld()
	ctx := NewSearchContext(w.player, nil)

	_, ok := defTake.Tree().Parse("take lint from bag", ctx)
	assert.True(ok)

	// the context used before must be unaffected by the narrowing
	lvl, found := ctx.Find("sword")
	assert.Equal(match.Full, lvl)
	assert.Equal([]Entity{w.sword}, found)
}

func Test_Tree_Parse_tiedContainers(t *testing.T) {
	lint := ent("lint", kItem)
	otherLint := ent("lint", kItem)

	testCases := []struct {
		name        string
		paperBag    *fakeEntity
		clothBag    *fakeEntity
		expectIn    func(paper, cloth *fakeEntity) Entity
		expectAlt   func(paper, cloth *fakeEntity) []Entity
		expectMatch bool
	}{
		{
			name:        "only the second container holds it",
			paperBag:    ent("paper bag", kContainer),
			clothBag:    ent("cloth bag", kContainer, lint),
			expectMatch: true,
			expectIn:    func(paper, cloth *fakeEntity) Entity { return cloth },
		},
		{
			name:        "both containers hold one",
			paperBag:    ent("paper bag", kContainer, otherLint),
			clothBag:    ent("cloth bag", kContainer, lint),
			expectMatch: true,
			expectIn:    func(paper, cloth *fakeEntity) Entity { return paper },
			expectAlt:   func(paper, cloth *fakeEntity) []Entity { return []Entity{cloth} },
		},
		{
			name:     "neither container holds it",
			paperBag: ent("paper bag", kContainer),
			clothBag: ent("cloth bag", kContainer),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			room := ent("attic", kRoom, tc.paperBag, tc.clothBag)
			player := &fakePlayer{inv: ent("pockets", kContainer), room: room}

			b, ok := defTake.Tree().Parse("take lint from bag", NewSearchContext(player, nil))

			if !tc.expectMatch {
				assert.False(ok)
				return
			}
			if !assert.True(ok) {
				return
			}
			assert.Equal(tc.expectIn(tc.paperBag, tc.clothBag), b.Objects["object_in"])
			assert.Equal(match.Partial, b.Level)

			var alts []Entity
			for _, alt := range b.Alternatives {
				alts = append(alts, alt.Objects["object_in"])
				assert.Equal(b.Level, alt.Level)
			}
			var expectAlts []Entity
			if tc.expectAlt != nil {
				expectAlts = tc.expectAlt(tc.paperBag, tc.clothBag)
			}
			assert.Equal(expectAlts, alts)
		})
	}
}

func Test_Tree_ParseWithBudget(t *testing.T) {
	assert := assert.New(t)
	w := newWorld()

	_, ok, err := defTake.Tree().ParseWithBudget("take lint from bag", NewSearchContext(w.player, nil), 2)
	assert.False(ok)
	assert.ErrorIs(err, ErrStepBudget)

	_, ok, err = defTake.Tree().ParseWithBudget("take lint from bag", NewSearchContext(w.player, nil), 0)
	assert.True(ok)
	assert.NoError(err)
}

func Test_Tree_Parse_anyDefault(t *testing.T) {
	assert := assert.New(t)
	w := newWorld()

	def := MustDefine(Definition{Pattern: "{verb}[ {object:any}]", Verbs: []string{"poke"}})

	b, ok := def.Tree().Parse("poke", NewSearchContext(w.player, nil).WithKind(kItem))
	if !assert.True(ok) {
		return
	}
	// first visible item is the first thing in the player's inventory
	assert.Equal(Entity(w.coin), b.Objects["object"])

	_, ok = def.Tree().Parse("poke", NewSearchContext(w.player, nil).LimitTo())
	assert.False(ok, "a default that cannot be bound fails the parse")
}

func Test_occurrences(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		lit    string
		expect []int
	}{
		{name: "none", text: "take sword", lit: "to", expect: nil},
		{name: "inside a word is skipped", text: "toad to door", lit: "to", expect: []int{5}},
		{name: "case is ignored", text: "Go TO door", lit: "to", expect: []int{3}},
		{name: "punctuation needs no boundary", text: `say "hi"`, lit: `"`, expect: []int{4, 7}},
		{name: "multi word", text: "pick up pick upstairs", lit: "pick up", expect: []int{0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := occurrences(tc.text, tc.lit)

			assert.Equal(tc.expect, actual)
		})
	}
}
