package index

import (
	"regexp"
	"strings"
)

// Directive is the ephemeral parsed form of one mark body. It is applied to
// the entry tree by the scanner and never persisted.
type Directive struct {
	Path       []string
	AliasDef   string
	AliasRef   string
	XRefs      []XRefTarget
	SortKey    string
	Emphasis   bool
	Continuing bool
}

// XRefTarget is one parsed cross-reference segment from a mark body.
type XRefTarget struct {
	Kind    string
	Inbound bool
	Path    []string
}

var (
	sortKeyToken  = regexp.MustCompile(`~"([^"]*)"|~'([^']*)'`)
	aliasDefToken = regexp.MustCompile(`##([A-Za-z0-9_-]+)`)
	aliasRefToken = regexp.MustCompile(`#([A-Za-z0-9_-]+)`)
	bareSortToken = regexp.MustCompile(`~"[^"]*"|~'[^']*'|~[\w-]+`)
	internalSuff  = regexp.MustCompile(`\[([^\]]+)\]`)
)

// extractInternalSuffix pulls an internal [suffix] annotation (for example
// "passim") out of a mark body, returning the trimmed body and the suffix.
func extractInternalSuffix(body string) (string, string) {
	m := internalSuff.FindStringSubmatchIndex(body)
	if m == nil {
		return body, ""
	}
	return body[:m[0]] + body[m[1]:], body[m[2]:m[3]]
}

// parseMarkBody tokenizes a mark body into a Directive. Each step removes
// its matched substring before the next runs, so the stripping order is
// load-bearing: trailing markers, sort key, alias definition, alias
// reference, cross-reference tail, and finally the main path.
//
// The returned leftover string is non-empty when some content could not be
// assigned to any field; callers report it but still apply the directive.
func parseMarkBody(body string) (*Directive, string) {
	d := &Directive{}
	s := strings.TrimSpace(body)

	// Trailing markers are mutually exclusive; only one is consumed.
	if strings.HasSuffix(s, endMarker) {
		d.Continuing = true
		s = strings.TrimRight(strings.TrimSuffix(s, endMarker), " \t")
	} else if strings.HasSuffix(s, emphasisMarker) {
		d.Emphasis = true
		s = strings.TrimRight(strings.TrimSuffix(s, emphasisMarker), " \t")
	}

	if m := sortKeyToken.FindStringSubmatchIndex(s); m != nil {
		if m[2] >= 0 {
			d.SortKey = s[m[2]:m[3]]
		} else {
			d.SortKey = s[m[4]:m[5]]
		}
		s = s[:m[0]] + s[m[1]:]
	}

	// Alias definition: any occurrence; the last one wins.
	for _, m := range aliasDefToken.FindAllStringSubmatch(s, -1) {
		d.AliasDef = m[1]
	}
	s = aliasDefToken.ReplaceAllString(s, "")

	// Alias reference: a single # not preceded by another # (all ## runs are
	// gone by now).
	if m := aliasRefToken.FindStringSubmatchIndex(s); m != nil {
		d.AliasRef = s[m[2]:m[3]]
		s = s[:m[0]] + s[m[1]:]
	}

	// Cross-reference tail after the first unquoted |.
	if cut := indexUnquoted(s, '|'); cut >= 0 {
		tail := strings.TrimSpace(s[cut+1:])
		s = strings.TrimSpace(s[:cut])
		for _, seg := range splitQuoted(tail, ';') {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			d.XRefs = append(d.XRefs, parseXRefTarget(seg))
		}
	}

	// Whatever remains is the main path.
	leftover := ""
	s = strings.TrimSpace(s)
	if s != "" {
		var path []string
		for _, seg := range splitQuoted(s, rune(pathDelimiter[0])) {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			path = append(path, stripQuotes(seg))
		}
		if len(path) > 0 {
			d.Path = path
		} else {
			leftover = s
		}
	}

	return d, leftover
}

// parseXRefTarget parses one cross-reference segment: optional stacked +
// (see also) and @ (inbound) prefixes, then either an alias-only reference
// or a quoted path. Any trailing sort-key token is ignored.
func parseXRefTarget(seg string) XRefTarget {
	target := XRefTarget{Kind: RefSee}
prefixes:
	for len(seg) > 0 {
		switch seg[:1] {
		case alsoMarker:
			target.Kind = RefAlso
		case inboundMarker:
			target.Inbound = true
		default:
			break prefixes
		}
		seg = strings.TrimSpace(seg[1:])
	}

	seg = strings.TrimSpace(bareSortToken.ReplaceAllString(seg, ""))

	// Alias-only reference: #name with no explicit path. Known aliases were
	// expanded textually before parsing, so anything left falls back to the
	// literal name.
	if strings.HasPrefix(seg, aliasPrefix) && !strings.Contains(seg, pathDelimiter) {
		target.Path = []string{strings.TrimSpace(seg[1:])}
		return target
	}

	for _, part := range splitQuoted(seg, rune(pathDelimiter[0])) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		target.Path = append(target.Path, stripQuotes(part))
	}
	return target
}
