package index

import (
	"regexp"
	"strings"
)

var emphasisRun = regexp.MustCompile(`_([^_]+?)_`)

// emphasisHTML converts Markdown _emphasis_ runs to <em> markup.
func emphasisHTML(text string) string {
	return emphasisRun.ReplaceAllString(text, "<em>$1</em>")
}

// stripEmphasis removes Markdown _emphasis_ markers, keeping the inner text.
func stripEmphasis(text string) string {
	return emphasisRun.ReplaceAllString(text, "$1")
}

// htmlEscape escapes the characters that matter inside our generated markup.
func htmlEscape(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(text)
}

// renderVisible converts a captured visible-text token to display HTML:
// a fully _emphasised_ token becomes <em>…</em>, everything else passes
// through unchanged.
func renderVisible(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, "_") && strings.HasSuffix(text, "_") {
		return "<em>" + text[1:len(text)-1] + "</em>"
	}
	return text
}

// plainText strips a single level of emphasis or code quoting from a
// visible-text token, yielding the label used for entry lookup.
func plainText(text string) string {
	if len(text) >= 2 {
		if (strings.HasPrefix(text, "_") && strings.HasSuffix(text, "_")) ||
			(strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`")) {
			return text[1 : len(text)-1]
		}
	}
	return text
}

var (
	slugQuotes     = regexp.MustCompile("['\"“”‘’]+")
	slugNonAlnum   = regexp.MustCompile(`\W+`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// slugify converts a heading title to an anchor-friendly slug.
func slugify(text string) string {
	text = slugQuotes.ReplaceAllString(text, "")
	text = slugNonAlnum.ReplaceAllString(text, " ")
	text = slugWhitespace.ReplaceAllString(text, "-")
	text = strings.Trim(text, "-")
	return strings.ToLower(text)
}

// stripQuotes removes one matching pair of straight or curly double quotes.
func stripQuotes(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	r := []rune(text)
	if len(r) >= 2 && r[0] == '“' && r[len(r)-1] == '”' {
		return string(r[1 : len(r)-1])
	}
	return text
}

// splitQuoted splits s on sep, treating straight and curly double-quoted
// runs as opaque so quoted segments can carry delimiter characters.
func splitQuoted(s string, sep rune) []string {
	var parts []string
	var cur strings.Builder
	inStraight := false
	inCurly := false
	for _, r := range s {
		switch {
		case r == '"' && !inCurly:
			inStraight = !inStraight
			cur.WriteRune(r)
		case r == '“' && !inStraight:
			inCurly = true
			cur.WriteRune(r)
		case r == '”' && inCurly:
			inCurly = false
			cur.WriteRune(r)
		case r == sep && !inStraight && !inCurly:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// indexUnquoted returns the byte offset of the first sep outside quotes,
// or -1.
func indexUnquoted(s string, sep rune) int {
	inStraight := false
	inCurly := false
	for i, r := range s {
		switch {
		case r == '"' && !inCurly:
			inStraight = !inStraight
		case r == '“' && !inStraight:
			inCurly = true
		case r == '”' && inCurly:
			inCurly = false
		case r == sep && !inStraight && !inCurly:
			return i
		}
	}
	return -1
}
