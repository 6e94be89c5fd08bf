package index

import (
	"regexp"
	"strconv"
	"strings"
)

const placeholderSentinel = "\x00index\x00"

var (
	// markPattern matches [visible]{^body}, token{^body}, or a bare {^body}.
	// Group 1: bracketed visible text, group 2: adjacent token (code span,
	// emphasis run, or plain word), group 3: mark body.
	markPattern = regexp.MustCompile("(?:\\[([^\\]\\n<>]+)\\]|(`[^`\\n]+`|_[^_\\n]+_|[^\\s\\[\\]{}<>]+))?\\{\\^([^}\\n<]*)\\}")

	// placeholderPattern matches a whole-line index placeholder, modern
	// {index options} or legacy {^index}, before mark scanning ever sees it.
	placeholderPattern = regexp.MustCompile(`(?im)^\{\^?index([^}\n]*)\}[ \t]*$`)

	// headingPattern matches an ATX heading with an optional trailing
	// attribute block.
	headingPattern = regexp.MustCompile(`(?m)^(#{1,6})[ \t]*([^{\n]+?)[ \t]*(?:\{([^}\n]*)\})?[ \t]*$`)

	placeholderOption = regexp.MustCompile(`([\w-]+)(?:=("[^"]*"|'[^']*'|\S+))?`)
)

// Process runs the full pipeline on doc: placeholder extraction, the single
// forward scan that replaces marks with anchors while building the entry
// tree, the stray-entry merge, and final index insertion. It returns the
// transformed document.
func (ix *Index) Process(doc string) string {
	ix.reset()
	ix.infof("starting index creation")

	doc = strings.ReplaceAll(strings.ReplaceAll(doc, "\r\n", "\n"), "\r", "\n")
	doc, placeholderFound := ix.extractPlaceholder(doc)

	annotated := ix.scan(doc)

	// Ranges still open at end of pass stay behind as single locators.
	clear(ix.openRanges)

	ix.postProcess()

	rendered := ix.RenderHTML()
	ix.sizeCheck(annotated, rendered)
	ix.infof("index creation complete: %d entries", ix.Len())

	if placeholderFound {
		return strings.ReplaceAll(annotated, placeholderSentinel, rendered)
	}
	if ix.marksApplied > 0 {
		ix.warnf("no {index} placeholder found; appending index at end")
		return strings.TrimRight(annotated, "\n") + "\n\n" + rendered
	}
	return annotated
}

// extractPlaceholder replaces every index placeholder line with a sentinel
// (so the mark scanner cannot misread {^index} as an entry mark) and applies
// the first placeholder's options.
func (ix *Index) extractPlaceholder(doc string) (string, bool) {
	m := placeholderPattern.FindStringSubmatch(doc)
	if m == nil {
		return doc, false
	}
	ix.applyPlaceholderOptions(strings.TrimSpace(m[1]))
	return placeholderPattern.ReplaceAllString(doc, placeholderSentinel), true
}

// applyPlaceholderOptions applies {index ...} options through an explicit
// dispatch table. Unknown keys warn and are skipped.
func (ix *Index) applyPlaceholderOptions(opts string) {
	for _, m := range placeholderOption.FindAllStringSubmatch(opts, -1) {
		key := m[1]
		val := m[2]
		if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') {
			val = val[1 : len(val)-1]
		}
		switch key {
		case "prefix":
			ix.opts.IDPrefix = val
		case "see":
			ix.opts.SeeLabel = val
		case "also":
			ix.opts.SeeAlsoLabel = val
		case "headings":
			ix.opts.GroupHeadings = optionBool(val)
		case "run-in":
			ix.opts.RunInChildren = optionBool(val)
		case "emph-first":
			ix.opts.SortEmphasisFirst = optionBool(val)
		case "section":
			ix.opts.SectionMode = true
		default:
			ix.warnf("ignoring unknown index option %q", key)
		}
	}
}

func optionBool(val string) bool {
	switch strings.ToLower(val) {
	case "", "true", "1", "yes", "on":
		return true
	}
	return false
}

// scan walks the document once, left to right, copying unmatched spans into
// an append-only output buffer and replacing each mark with its computed
// span. Match positions come from the original text, so nothing is ever
// rescanned.
func (ix *Index) scan(doc string) string {
	var out strings.Builder
	out.Grow(len(doc) + len(doc)/8)

	sections := newSectionTracker(ix)
	enabled := true
	pos := 0

	for _, m := range markPattern.FindAllStringSubmatchIndex(doc, -1) {
		if m[0] < pos {
			continue
		}
		out.WriteString(sections.consume(doc[pos:m[0]]))
		pos = m[1]

		visible := ""
		if m[2] >= 0 {
			visible = doc[m[2]:m[3]]
		} else if m[4] >= 0 {
			visible = doc[m[4]:m[5]]
		}
		body := doc[m[6]:m[7]]
		ix.debugf("directive found: %s", doc[m[0]:m[1]])

		// Processing toggles strip themselves and flip the enabled flag.
		switch strings.TrimSpace(body) {
		case enableMark:
			if !enabled {
				ix.debugf("processing enabled")
			}
			enabled = true
			out.WriteString(renderVisible(visible))
			continue
		case disableMark:
			if enabled {
				ix.debugf("processing disabled")
			}
			enabled = false
			out.WriteString(renderVisible(visible))
			continue
		}

		if !enabled {
			// Content passes through unindexed; the mark itself vanishes.
			out.WriteString(renderVisible(visible))
			continue
		}

		out.WriteString(ix.applyMark(visible, body, sections.current()))
	}
	out.WriteString(sections.consume(doc[pos:]))

	return out.String()
}

// applyMark parses one enabled mark, mutates the entry tree, and returns the
// replacement span for the document.
func (ix *Index) applyMark(visible, body, section string) string {
	visibleHTML := renderVisible(visible)
	label := plainText(visible)

	body, suffixText := extractInternalSuffix(body)
	body = ix.aliases.Expand(body)
	body = ix.expandWildcards(label, body)

	d, leftover := parseMarkBody(body)
	if leftover != "" {
		ix.warnf("unparsed directive content %q (please report this)", leftover)
	}

	// Resolve the target path: explicit path, alias reference, then the
	// visible text as fallback.
	path := d.Path
	if path == nil && d.AliasRef != "" {
		if resolved, ok := ix.aliases.Resolve(d.AliasRef); ok {
			path = resolved
		} else if label != "" {
			// Unknown alias referenced before definition: index under the
			// visible label and let the merge pass reconcile it later.
			path = []string{label}
		}
	}
	if path == nil && label != "" {
		path = []string{label}
	}
	if len(path) == 0 {
		ix.warnf("no entry label in directive {^%s}; mark skipped", body)
		return visibleHTML
	}

	if d.AliasDef != "" {
		ix.aliases.Define(d.AliasDef, path)
	}

	entry, existed := ix.EntryAt(path[len(path)-1], path[:len(path)-1], true)
	if d.SortKey != "" {
		if entry.SortKey != "" && entry.SortKey != d.SortKey {
			ix.warnf("altering sort key for %q: was %q, now %q",
				entry.JoinedPath(), entry.SortKey, d.SortKey)
		}
		entry.SortKey = d.SortKey
	}

	// A plain "see" cross-reference replaces the locator; "see also" does
	// not. Inbound targets receive the reference instead of this entry.
	wantsLocator := true
	for _, xref := range d.XRefs {
		if len(xref.Path) == 0 {
			ix.warnf("cross-reference with no target in directive {^%s}; segment skipped", body)
			continue
		}
		if xref.Inbound {
			target, _ := ix.EntryAt(xref.Path[len(xref.Path)-1], xref.Path[:len(xref.Path)-1], true)
			target.AddCrossRef(xref.Kind, entry.PathList())
			continue
		}
		if xref.Kind == RefSee {
			wantsLocator = false
		}
		entry.AddCrossRef(xref.Kind, xref.Path)
		if existed {
			ix.debugf("added cross-references to existing entry %q", entry.Label)
		}
	}
	if !wantsLocator && (suffixText != "" || d.Emphasis) {
		ix.warnf("ignoring suffix/emphasis on cross-reference mark for %q", entry.Label)
	}

	// Alias-definition marks with no visible text stay invisible.
	suppressAnchor := strings.TrimSpace(visible) == "" && d.AliasDef != ""

	ix.marksApplied++

	if wantsLocator && !suppressAnchor {
		id := ix.nextLocatorID
		ix.nextLocatorID++
		ix.attachLocator(entry, path, d, id, suffixText, section)
		return ix.anchorSpan(id, section, visibleHTML)
	}
	if ix.opts.AlwaysAnchor && !suppressAnchor {
		id := ix.nextLocatorID
		ix.nextLocatorID++
		return ix.anchorSpan(id, section, visibleHTML)
	}
	return visibleHTML
}

// attachLocator records a locator on entry, honoring the open/close range
// semantics of the trailing / marker: the first continuing mark for a path
// opens a pending range, the next one closes it by setting the end id on the
// opening locator.
func (ix *Index) attachLocator(entry *Entry, path []string, d *Directive, id int, suffixText, section string) {
	key := pathKey(path)
	if d.Continuing {
		if open := ix.openRanges[key]; open != nil {
			open.EndID = id
			if suffixText != "" {
				open.EndSuffix = " " + renderVisible(suffixText)
			}
			if section != "" {
				open.EndSection = section
			}
			delete(ix.openRanges, key)
			ix.debugf("closed range for %q at %d", entry.JoinedPath(), id)
			return
		}
	}

	loc := &Locator{StartID: id, Emphasis: d.Emphasis, Section: section}
	if suffixText != "" {
		loc.Suffix = " " + renderVisible(suffixText)
	}
	entry.AddReference(loc)
	if d.Continuing {
		ix.openRanges[key] = loc
		ix.debugf("opened range for %q at %d", entry.JoinedPath(), id)
	}
}

func (ix *Index) anchorSpan(id int, section, visibleHTML string) string {
	var b strings.Builder
	b.WriteString(`<span id="`)
	b.WriteString(ix.opts.IDPrefix)
	b.WriteString(strconv.Itoa(id))
	b.WriteString(`" class="`)
	b.WriteString(sharedClass)
	if section != "" {
		b.WriteString(`" data-index-section="`)
		b.WriteString(section)
	}
	b.WriteString(`">`)
	b.WriteString(visibleHTML)
	b.WriteString(`</span>`)
	return b.String()
}
