package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Resolver_Normalize(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "empty",
			input:  "",
			expect: "",
		},
		{
			name:   "case is folded",
			input:  "Rusty TIN Can",
			expect: "rusty tin can",
		},
		{
			name:   "articles are removed",
			input:  "the sword",
			expect: "sword",
		},
		{
			name:   "whitespace is collapsed",
			input:  "  an   old \t lamp ",
			expect: "old lamp",
		},
		{
			name:   "only stop words",
			input:  "the a an",
			expect: "",
		},
		{
			name:   "stop words only removed as whole words",
			input:  "theater ticket",
			expect: "theater ticket",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Default.Normalize(tc.input)
			assert.Equal(tc.expect, actual)

			// normalizing twice must not change the result
			assert.Equal(actual, Default.Normalize(actual))
		})
	}
}

func Test_Resolver_Compare(t *testing.T) {
	testCases := []struct {
		name     string
		fragment string
		cand     string
		expect   Level
	}{
		{
			name:     "exact",
			fragment: "sword",
			cand:     "sword",
			expect:   Full,
		},
		{
			name:     "exact ignoring article and case",
			fragment: "The Sword",
			cand:     "sword",
			expect:   Full,
		},
		{
			name:     "trailing word",
			fragment: "can",
			cand:     "tin can",
			expect:   Partial,
		},
		{
			name:     "close misspelling",
			fragment: "swords",
			cand:     "sword",
			expect:   Partial,
		},
		{
			name:     "start of name",
			fragment: "tin",
			cand:     "tin can",
			expect:   Incomplete,
		},
		{
			name:     "start of trailing word",
			fragment: "ca",
			cand:     "tin can",
			expect:   Incomplete,
		},
		{
			name:     "single letter prefix does not count",
			fragment: "c",
			cand:     "can",
			expect:   NoMatch,
		},
		{
			name:     "unrelated",
			fragment: "lamp",
			cand:     "sword",
			expect:   NoMatch,
		},
		{
			name:     "empty fragment",
			fragment: "",
			cand:     "sword",
			expect:   NoMatch,
		},
		{
			name:     "stop words only",
			fragment: "the",
			cand:     "sword",
			expect:   NoMatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Compare(tc.fragment, tc.cand)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Similarity(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1.0, Similarity("lamp", "lamp"))
	assert.Greater(Similarity("swords", "sword"), DefaultThreshold)
	assert.Less(Similarity("lamp", "sword"), DefaultThreshold)

	// shared prefix raises score
	assert.Greater(Similarity("abcx", "abcy"), Similarity("xabc", "yabc"))
}

func Test_NewResolver_thresholdOutOfRange(t *testing.T) {
	assert := assert.New(t)

	r := NewResolver(nil, 0)
	assert.Equal(DefaultThreshold, r.Threshold)

	r = NewResolver(nil, 1.5)
	assert.Equal(DefaultThreshold, r.Threshold)

	r = NewResolver([]string{"The"}, 0.5)
	assert.Equal(0.5, r.Threshold)
	assert.Equal("sword", r.Normalize("THE sword"))
}

func Test_Level_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("NoMatch", NoMatch.String())
	assert.Equal("FullWithDetail", FullWithDetail.String())
	assert.Equal("Level(9)", Level(9).String())
	assert.True(Incomplete < Partial && Partial < Full && Full < FullWithDetail)
}
