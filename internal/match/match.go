// Package match contains the fuzzy name matching used to resolve text typed by
// a player to the entities that text could be describing.
package match

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Level is how confidently a piece of text refers to something. Levels are
// ordered; a higher Level is always a better match than a lower one.
type Level int

const (
	NoMatch Level = iota
	Incomplete
	Partial
	Full
	FullWithDetail
)

func (lvl Level) String() string {
	switch lvl {
	case NoMatch:
		return "NoMatch"
	case Incomplete:
		return "Incomplete"
	case Partial:
		return "Partial"
	case Full:
		return "Full"
	case FullWithDetail:
		return "FullWithDetail"
	default:
		return fmt.Sprintf("Level(%d)", int(lvl))
	}
}

// DefaultThreshold is the similarity above which two differing names are
// considered a Partial match.
const DefaultThreshold = 0.8

// DefaultStopWords are words that carry no identifying information when
// naming an entity and are ignored during comparison.
var DefaultStopWords = []string{
	"a", "an", "the", "some", "at", "in", "inside", "into", "on", "my", "your", "of",
}

// Default is the Resolver used when no other is configured.
var Default = NewResolver(DefaultStopWords, DefaultThreshold)

// Resolver compares text fragments to entity names. A Resolver is not safe
// for concurrent use.
type Resolver struct {
	// StopWords are removed from both sides of a comparison.
	StopWords map[string]bool

	// Threshold is the minimum similarity, exclusive, for a Partial match.
	Threshold float64

	folder cases.Caser
}

// NewResolver creates a Resolver that ignores the given stop words and uses the
// given similarity threshold. A threshold outside of (0, 1] is replaced with
// DefaultThreshold.
func NewResolver(stopWords []string, threshold float64) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	r := &Resolver{
		StopWords: make(map[string]bool, len(stopWords)),
		Threshold: threshold,
		folder:    cases.Fold(),
	}
	for _, w := range stopWords {
		w = strings.TrimSpace(r.folder.String(w))
		if w != "" {
			r.StopWords[w] = true
		}
	}
	return r
}

// Normalize case-folds s, removes stop words, and collapses all runs of
// whitespace to a single space. Normalize(Normalize(s)) == Normalize(s).
func (r *Resolver) Normalize(s string) string {
	words := strings.Fields(r.folder.String(s))
	kept := words[:0]
	for _, w := range words {
		if !r.StopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Compare gives the Level at which fragment refers to something named name.
//
// Equal names are a Full match. A fragment equal or highly similar to any
// trailing run of words of the name ("can" for "tin can") is a Partial match,
// and a fragment that starts such a run is an Incomplete one. Empty fragments
// never match.
func (r *Resolver) Compare(fragment, name string) Level {
	frag := r.Normalize(fragment)
	cand := r.Normalize(name)
	if frag == "" || cand == "" {
		return NoMatch
	}
	if frag == cand {
		return Full
	}

	words := strings.Fields(cand)
	for k := len(words); k > 0; k-- {
		suffix := strings.Join(words[len(words)-k:], " ")
		if frag == suffix {
			return Partial
		}
		if Similarity(frag, suffix) > r.Threshold {
			return Partial
		}
	}

	if utf8.RuneCountInString(frag) >= 2 {
		for k := len(words); k > 0; k-- {
			suffix := strings.Join(words[len(words)-k:], " ")
			if strings.HasPrefix(suffix, frag) {
				return Incomplete
			}
		}
	}

	return NoMatch
}

// Compare uses the Default resolver to compare fragment and name.
func Compare(fragment, name string) Level {
	return Default.Compare(fragment, name)
}

// Normalize uses the Default resolver to normalize s.
func Normalize(s string) string {
	return Default.Normalize(s)
}

// Similarity gives a score between 0 and 1 for how alike a and b are, where 1
// means identical. It is the normalized edit distance between the two, raised
// by up to 0.4 of the remaining distance to 1 when the strings share a prefix
// of up to four runes.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(a, b)
	score := 1 - float64(dist)/float64(longest)

	prefix := 0
	for prefix < len(ra) && prefix < len(rb) && prefix < 4 && ra[prefix] == rb[prefix] {
		prefix++
	}
	score += 0.1 * float64(prefix) * (1 - score)

	if score < 0 {
		return 0
	}
	return score
}
