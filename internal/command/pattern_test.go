package command

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func Test_Compile_treeShape(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		verbs   []string
		expect  string
	}{
		{
			name:    "just verb",
			pattern: "{verb}",
			verbs:   []string{"quit"},
			expect:  `(verb _ _)`,
		},
		{
			name:    "verb and object",
			pattern: "{verb} {object}",
			verbs:   []string{"smell"},
			expect:  `(object (verb _ _) _)`,
		},
		{
			name:    "optional object with room default",
			pattern: "{verb}[ {object:room}]",
			verbs:   []string{"look"},
			expect:  `(opt[object=room] (object _ _) (verb _ _) _)`,
		},
		{
			name:    "object in",
			pattern: "{verb} {object} [from {object_in:room}]",
			verbs:   []string{"take"},
			expect:  `(object (verb _ _) (opt[object_in=room] (text "from" _ (object_in _ _)) _ _))`,
		},
		{
			name:    "object arg defaulting to none",
			pattern: "{verb} {object}[ with {object_arg:None}]",
			verbs:   []string{"open"},
			expect:  `(object (verb _ _) (opt[object_arg=none] (text "with" _ (object:object_arg _ _)) _ _))`,
		},
		{
			name:    "quoted string",
			pattern: `{verb} "{string_arg}"[ to {object:room}]`,
			verbs:   []string{"say"},
			expect:  `(text "\"" (text "\"" (verb _ _) (string _ _)) (opt[object=room] (text "to" _ (object _ _)) _ _))`,
		},
		{
			name:    "literal between placeholders",
			pattern: "{verb} {object_arg} in {object}",
			verbs:   []string{"put"},
			expect:  `(text "in" (object:object_arg (verb _ _) _) (object _ _))`,
		},
		{
			name:    "adjacent optionals",
			pattern: "{verb}[ with][ {string_arg:None}]",
			verbs:   []string{"help"},
			expect:  `(opt (text "with" _ _) (verb _ _) (opt[string_arg=none] (string _ _) _ _))`,
		},
		{
			name:    "nested optionals carry inner defaults",
			pattern: "{verb}[ at[ the]{object:any}]",
			verbs:   []string{"look"},
			expect:  `(opt[object=any] (text "at" _ (object (opt (text "the" _ _) _ _) _)) (verb _ _) _)`,
		},
		{
			name:    "literal whitespace is collapsed",
			pattern: "{verb}   {object}  with   care",
			verbs:   []string{"hold"},
			expect:  `(text "with care" (object (verb _ _) _) _)`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Compile(tc.pattern, tc.verbs)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual.String())
		})
	}
}

func Test_Compile_errors(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		verbs   []string
	}{
		{name: "empty pattern", pattern: ""},
		{name: "only whitespace", pattern: "   "},
		{name: "unterminated placeholder", pattern: "{verb", verbs: []string{"go"}},
		{name: "empty placeholder", pattern: "{} thing"},
		{name: "nested brace", pattern: "{ob{ject}}"},
		{name: "unmatched close brace", pattern: "take }"},
		{name: "unknown placeholder", pattern: "{verb} {thing}", verbs: []string{"go"}},
		{name: "unknown default", pattern: "{verb}[ {object:everywhere}]", verbs: []string{"go"}},
		{name: "string with non-none default", pattern: "{verb}[ {string_arg:room}]", verbs: []string{"go"}},
		{name: "default outside optional", pattern: "{verb} {object:room}", verbs: []string{"go"}},
		{name: "verb with default", pattern: "[{verb:none}]", verbs: []string{"go"}},
		{name: "verb without verbs", pattern: "{verb} {object}"},
		{name: "unmatched close bracket", pattern: "{verb} ]", verbs: []string{"go"}},
		{name: "unterminated optional", pattern: "{verb} [{object}", verbs: []string{"go"}},
		{name: "empty optional", pattern: "{verb} [ ]", verbs: []string{"go"}},
		{name: "duplicate placeholder", pattern: "{verb} {object} {object}", verbs: []string{"go"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Compile(tc.pattern, tc.verbs)
			if !assert.Error(err) {
				return
			}

			var compErr *CompilationError
			assert.True(errors.As(err, &compErr))
			assert.Equal(tc.pattern, compErr.Pattern)
		})
	}
}

func Test_Compile_deterministic(t *testing.T) {
	patterns := []string{
		"{verb}[ {object:room}]",
		"{verb} {object} [from {object_in:room}]",
		`{verb} "{string_arg}"[ to {object:room}]`,
		"{verb}[ with][ {string_arg:None}]",
	}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			first, err := Compile(p, []string{"a", "b"})
			if err != nil {
				t.Fatal(err)
			}
			second, err := Compile(p, []string{"a", "b"})
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(first, second, cmp.AllowUnexported(Tree{}, node{})); diff != "" {
				t.Errorf("trees differ (-first +second):\n%s", diff)
			}
		})
	}
}

func Test_Compile_parseFirst(t *testing.T) {
	assert := assert.New(t)

	tree, err := Compile("{verb} {object} [from {object_in:room}]", []string{"take"})
	if !assert.NoError(err) {
		return
	}

	root := tree.nodes[tree.root]
	assert.True(root.parseFirst, "root contains object_in")
	assert.False(tree.nodes[root.left].parseFirst, "verb does not")
	assert.True(tree.nodes[root.right].parseFirst, "optional containing object_in does")
}

func Test_Define(t *testing.T) {
	assert := assert.New(t)

	verbs := []string{"smell", "sniff"}
	def, err := Define(Definition{Name: "SMELL", Pattern: "{verb} {object}", Verbs: verbs})
	if !assert.NoError(err) {
		return
	}

	// changing the caller's slice must not change the definition
	verbs[0] = "changed"
	assert.Equal([]string{"smell", "sniff"}, def.Verbs)
	assert.True(def.HasObject())
	assert.True(def.HasVerb("  SNIFF "))
	assert.False(def.HasVerb("taste"))

	_, err = Define(Definition{Name: "BAD", Pattern: "{verb} {nope}", Verbs: verbs})
	assert.Error(err)

	assert.Panics(func() {
		MustDefine(Definition{Name: "BAD", Pattern: "[", Verbs: verbs})
	})

	assert.False(defQuit.HasObject())
	assert.False(defHelp.HasObject())
}

func Test_Definition_HelpString(t *testing.T) {
	assert := assert.New(t)

	expect := "Examine things:\n  - look, examine\n\n Ex: \"look at the can\""
	def := MustDefine(Definition{
		Description: "Examine things",
		Pattern:     "{verb}[ {object:room}]",
		Verbs:       []string{"look", "examine"},
		Examples:    []string{"look at the can"},
	})
	assert.Equal(expect, def.HelpString())

	assert.Equal("See game help:\n  - help, ?", defHelp.HelpString())
}
