package index

import (
	"regexp"
	"strings"
)

// searchWildcard matches the prefix-search wildcards *^ and *^-.
var searchWildcard = regexp.MustCompile(`\*\^(-?)`)

// expandWildcards substitutes the wildcard forms inside a mark body using
// the current visible label:
//
//	*^   full quoted path of the first existing entry whose label has the
//	     visible label as prefix
//	*^-  only that entry's own quoted label
//	**   emphasis-stripped, lowercased visible label
//	*    emphasis-stripped visible label
//
// Prefix search sees only entries created so far; when nothing matches, the
// search wildcards fall back to plain *.
func (ix *Index) expandWildcards(label, text string) string {
	if label == "" {
		return text
	}

	matches := searchWildcard.FindAllStringSubmatchIndex(text, -1)
	if len(matches) > 0 {
		found := ix.PrefixSearch(label)
		var replaceLabel, replacePath string
		if found != nil {
			replaceLabel = `"` + found.Label + `"`
			replacePath = joinQuotedPath(found.PathList())
		}
		for i := len(matches) - 1; i >= 0; i-- {
			m := matches[i]
			replacement := "*"
			if found != nil {
				labelOnly := m[2] >= 0 && m[3] > m[2]
				if labelOnly {
					replacement = replaceLabel
				} else {
					replacement = replacePath
				}
				ix.debugf("prefix match for %q: %s", label, replacement)
			}
			text = text[:m[0]] + replacement + text[m[1]:]
		}
	}

	plain := stripEmphasis(label)
	text = strings.ReplaceAll(text, "**", strings.ToLower(plain))
	text = strings.ReplaceAll(text, "*", plain)
	return text
}
