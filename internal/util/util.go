// Package util holds small text helpers shared by the rest of the module.
package util

import (
	"sort"
	"strings"
	"unicode"
)

// MakeTextList gives a natural-language list of the given items, e.g. "a, b
// and c". If oxford is true, lists of three or more items also get a comma
// before the final "and", e.g. "a, b, and c". Two items are always joined
// with a plain "and". An empty list gives "Nothing".
//
// If articles is true, each item is given an indefinite article with
// ArticleFor first.
func MakeTextList(items []string, articles, oxford bool) string {
	if len(items) < 1 {
		return "Nothing"
	}

	withArts := make([]string, len(items))
	for i := range items {
		item := items[i]
		if articles {
			iRunes := []rune(item)
			art := ArticleFor(item, false)

			leadingUpper := unicode.IsUpper(iRunes[0])
			allCaps := leadingUpper && len(iRunes) > 1 && unicode.IsUpper(iRunes[1])
			if leadingUpper && !allCaps {
				iRunes[0] = unicode.ToLower(iRunes[0])
				item = string(iRunes)
				art = strings.ToLower(art)
			}

			item = art + " " + item
		}
		withArts[i] = item
	}

	switch len(withArts) {
	case 1:
		return withArts[0]
	case 2:
		return withArts[0] + " and " + withArts[1]
	default:
		last := len(withArts) - 1
		sep := " and "
		if oxford {
			sep = ", and "
		}
		return strings.Join(withArts[:last], ", ") + sep + withArts[last]
	}
}

// ArticleFor returns the article for the given string. It will be capitalized
// the same as the string. If definite is true, the returned value will be "the"
// capitalized as described; otherwise, it will be "a"/"an" capitalized as
// described.
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)

	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := unicode.IsUpper(sRunes[0])
	allCaps := leadingUpper
	if leadingUpper && len(sRunes) > 1 {
		allCaps = unicode.IsUpper(sRunes[1])
	}

	art := ""
	if definite {
		if allCaps {
			art = "THE"
		} else if leadingUpper {
			art = "The"
		} else {
			art = "the"
		}
	} else {
		if allCaps || leadingUpper {
			art = "A"
		} else {
			art = "a"
		}

		first := unicode.ToUpper(sRunes[0])
		if first == 'A' || first == 'E' || first == 'I' || first == 'O' || first == 'U' {
			if allCaps {
				art += "N"
			} else {
				art += "n"
			}
		}
	}

	return art
}

// Capitalize returns s with its first letter in upper case.
func Capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
