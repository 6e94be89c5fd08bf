package index

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ConcordanceRule pairs a compiled term pattern with the mark body to
// synthesize at each match.
type ConcordanceRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

var (
	tabRun  = regexp.MustCompile(`\t+`)
	htmlTag = regexp.MustCompile(`<[^>\n]*>`)
)

// ParseConcordance parses the TSV concordance format: one
// pattern<TAB>replacement pair per line, # comments and blank lines skipped.
// A leading = forces case sensitivity, \= is a literal =, and otherwise a
// pattern containing uppercase letters is case-sensitive while an
// all-lowercase one is not. Invalid patterns are skipped and reported in the
// joined error; valid rules are still returned.
func ParseConcordance(text string) ([]ConcordanceRule, error) {
	var rules []ConcordanceRule
	var errs []error

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(tabRun.ReplaceAllString(strings.TrimRight(line, "\n"), "\t"), "\t")
		pattern := cols[0]
		replacement := ""
		if len(cols) > 1 {
			replacement = strings.TrimSpace(cols[1])
		}

		caseSensitive := false
		switch {
		case strings.HasPrefix(pattern, `\=`):
			pattern = pattern[1:]
		case strings.HasPrefix(pattern, "="):
			pattern = pattern[1:]
			caseSensitive = true
		case pattern != strings.ToLower(pattern):
			caseSensitive = true
		}
		if !caseSensitive {
			pattern = "(?i)" + pattern
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("concordance pattern %q: %w", cols[0], err))
			continue
		}
		rules = append(rules, ConcordanceRule{Pattern: re, Replacement: replacement})
	}

	return rules, errors.Join(errs...)
}

type span struct{ start, end int }

// ApplyConcordance inserts [term]{^replacement} marks at every rule match
// that does not intersect an existing mark, index placeholder, HTML tag, or
// an earlier rule's match. Earlier rules win competing spans. The document
// is rebuilt in one forward pass.
func (ix *Index) ApplyConcordance(doc string, rules []ConcordanceRule) string {
	excluded := excludedSpans(doc)

	type term struct {
		span
		text        string
		replacement string
	}
	var terms []term

	for _, rule := range rules {
		var claimed []span
		for _, m := range rule.Pattern.FindAllStringIndex(doc, -1) {
			if intersects(excluded, m[0], m[1]) {
				continue
			}
			terms = append(terms, term{
				span:        span{m[0], m[1]},
				text:        doc[m[0]:m[1]],
				replacement: rule.Replacement,
			})
			claimed = append(claimed, span{m[0], m[1]})
		}
		excluded = append(excluded, claimed...)
		sort.Slice(excluded, func(i, j int) bool { return excluded[i].start < excluded[j].start })
	}

	sort.Slice(terms, func(i, j int) bool { return terms[i].start < terms[j].start })

	var out strings.Builder
	out.Grow(len(doc) + 32*len(terms))
	pos := 0
	for _, t := range terms {
		out.WriteString(doc[pos:t.start])
		fmt.Fprintf(&out, "[%s]{^%s}", t.text, t.replacement)
		pos = t.end
	}
	out.WriteString(doc[pos:])

	ix.infof("concordance applied: %d rules generated %d index marks", len(rules), len(terms))
	return out.String()
}

// excludedSpans collects the document regions concordance matching must not
// touch: existing marks, index placeholders, and HTML tags.
func excludedSpans(doc string) []span {
	var spans []span
	for _, re := range []*regexp.Regexp{placeholderPattern, markPattern, htmlTag} {
		for _, m := range re.FindAllStringIndex(doc, -1) {
			spans = append(spans, span{m[0], m[1]})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

// intersects reports whether [start, end) overlaps any excluded span.
func intersects(spans []span, start, end int) bool {
	for _, s := range spans {
		if s.end <= start {
			continue
		}
		if s.start >= end {
			return false
		}
		return true
	}
	return false
}
