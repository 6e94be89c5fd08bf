package index

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var headingAttr = regexp.MustCompile(`[.#][\w:-]+|[\w:-]+=(?:"[^"]*"|'[^']*'|\S*)|[\w.-]+`)

// sectionTracker follows Markdown headings between marks in section mode,
// maintaining a stack of sibling counters per heading level so each mark can
// be stamped with a dotted section path like "2.1.3". Headings are rewritten
// to HTML with slug ids and self-links as a side effect.
type sectionTracker struct {
	ix       *Index
	counters []int
}

func newSectionTracker(ix *Index) *sectionTracker {
	return &sectionTracker{ix: ix}
}

// current returns the dotted section path for the position reached so far.
func (s *sectionTracker) current() string {
	if s == nil || !s.ix.opts.SectionMode || len(s.counters) == 0 {
		return ""
	}
	parts := make([]string, len(s.counters))
	for i, c := range s.counters {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".")
}

// consume advances the tracker over chunk, updating section counters and
// rewriting headings. Outside section mode, chunk passes through untouched.
func (s *sectionTracker) consume(chunk string) string {
	if !s.ix.opts.SectionMode {
		return chunk
	}
	return headingPattern.ReplaceAllStringFunc(chunk, func(line string) string {
		m := headingPattern.FindStringSubmatch(line)
		level := len(m[1])
		title := strings.TrimSpace(m[2])
		attrs := m[3]

		if !unlistedHeading(attrs) {
			s.advance(level)
		}
		return renderHeading(level, title, attrs)
	})
}

// advance updates the counter stack for a heading at the given level:
// same-level headings increment, deeper levels push, shallower levels pop
// and then increment.
func (s *sectionTracker) advance(level int) {
	switch {
	case level > len(s.counters):
		for len(s.counters) < level {
			s.counters = append(s.counters, 1)
		}
	case level == len(s.counters):
		s.counters[level-1]++
	default:
		s.counters = s.counters[:level]
		s.counters[level-1]++
	}
}

// unlistedHeading reports whether the attribute block opts the heading out
// of section numbering.
func unlistedHeading(attrs string) bool {
	return strings.Contains(attrs, ".no-toc") || strings.Contains(attrs, ".unlisted")
}

// renderHeading converts an ATX heading to HTML, honoring an attribute block
// of the form {.class #id key=val}. Headings without an explicit id get a
// slug derived from the title, and every heading links to itself.
func renderHeading(level int, title, attrs string) string {
	var id string
	var classes []string
	var extra strings.Builder

	for _, item := range headingAttr.FindAllString(attrs, -1) {
		switch {
		case strings.HasPrefix(item, "."):
			classes = append(classes, item[1:])
		case strings.HasPrefix(item, "#"):
			id = item[1:]
		case strings.Contains(item, "="):
			key, val, _ := strings.Cut(item, "=")
			val = strings.Trim(val, `"'`)
			fmt.Fprintf(&extra, " %s=%q", key, val)
		}
	}
	if id == "" {
		id = slugify(title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<h%d id=%q`, level, id)
	if len(classes) > 0 {
		fmt.Fprintf(&b, ` class=%q`, strings.Join(classes, " "))
	}
	b.WriteString(extra.String())
	fmt.Fprintf(&b, `><a href="#%s">%s</a></h%d>`, id, title, level)
	return b.String()
}
