package index

import (
	"regexp"
	"strings"
)

const latexCmdStart = `\index{`

// Brace-balancing never scans further than this past the command start, so
// a stray unclosed \index{ cannot stall the pass.
const latexScanWindow = 150

var (
	latexContinuation = regexp.MustCompile(`\|([()])$`)
	latexEmphasisCmd  = regexp.MustCompile(`(?i)\\(?:textbf|textit|textsl|emph)\{([^}]+)\}`)
	latexSortKey      = regexp.MustCompile(`^([^@]+)@`)
	latexLocEmphasis  = regexp.MustCompile(`\|(?:textbf|textit|textsl|emph)$`)
	latexXRef         = regexp.MustCompile(`\|(see(?:also)?)\s*\{([^}]+)\}$`)
	latexXRefSplit    = regexp.MustCompile(`,\s*`)
)

// ConvertLaTeX rewrites every balanced \index{...} command in doc to an
// equivalent {^...} mark, returning the converted document and how many
// commands were converted. Unbalanced commands are left untouched.
func ConvertLaTeX(doc string) (string, int) {
	var out strings.Builder
	out.Grow(len(doc))

	converted := 0
	pos := 0
	for {
		rel := strings.Index(doc[pos:], latexCmdStart)
		if rel < 0 {
			break
		}
		start := pos + rel
		contentStart := start + len(latexCmdStart)

		// Scan forward for the balancing close brace.
		braces := 1
		i := contentStart
		for braces > 0 && i < len(doc) && i-contentStart < latexScanWindow {
			switch doc[i] {
			case '{':
				braces++
			case '}':
				braces--
			}
			i++
		}
		if braces != 0 {
			out.WriteString(doc[pos:contentStart])
			pos = contentStart
			continue
		}

		out.WriteString(doc[pos:start])
		out.WriteString(latexToMark(doc[contentStart : i-1]))
		pos = i
		converted++
	}
	out.WriteString(doc[pos:])
	return out.String(), converted
}

// latexToMark translates the content of one \index{...} command into mark
// syntax: ! hierarchy to > paths, sortkey@ to ~"...", |see{}/|seealso{} to
// cross-references, |(/|) range continuations to /, and braceless trailing
// emphasis commands to !.
func latexToMark(content string) string {
	continuing := false
	if m := latexContinuation.FindStringSubmatch(content); m != nil {
		continuing = true
		content = content[:len(content)-len(m[0])]
	}

	content = latexEmphasisCmd.ReplaceAllString(content, "_${1}_")

	sortKey := ""
	if m := latexSortKey.FindStringSubmatch(content); m != nil {
		sortKey = m[1]
		content = content[len(m[0]):]
	}

	locEmphasis := false
	if m := latexLocEmphasis.FindStringIndex(content); m != nil {
		locEmphasis = true
		content = content[:m[0]]
	}

	xref := ""
	if m := latexXRef.FindStringSubmatchIndex(content); m != nil {
		refType := content[m[2]:m[3]]
		var segs []string
		for _, seg := range latexXRefSplit.Split(content[m[4]:m[5]], -1) {
			q := `"` + seg + `"`
			if refType == "seealso" {
				q = alsoMarker + q
			}
			segs = append(segs, q)
		}
		xref = strings.Join(segs, refsDelimiter)
		content = content[:m[0]]
	}

	var headingSegs []string
	for _, seg := range strings.Split(content, "!") {
		headingSegs = append(headingSegs, `"`+seg+`"`)
	}

	parts := []string{strings.Join(headingSegs, pathDelimiter)}
	if xref != "" {
		parts = append(parts, "|"+xref)
	}
	if sortKey != "" {
		parts = append(parts, `~"`+sortKey+`"`)
	}
	if continuing {
		parts = append(parts, endMarker)
	} else if locEmphasis {
		parts = append(parts, emphasisMarker)
	}
	return "{^" + strings.Join(parts, " ") + "}"
}
