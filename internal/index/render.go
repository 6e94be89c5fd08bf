package index

import (
	"fmt"
	"sort"
	"strings"
)

// RenderHTML renders the built entry tree as a nested <dl> index. Entries
// are grouped by the first character of their sort keys, children indent
// (or run in at the deepest level), and locators link back to the anchors
// emitted during scanning.
func (ix *Index) RenderHTML() string {
	if len(ix.entries) == 0 {
		ix.warnf("no index entries defined")
		return ""
	}

	var b strings.Builder
	b.WriteString(`<dl class="` + sharedClass + ` index">` + "\n")

	prevInitial := ""
	for i, entry := range ix.sortEntries(ix.entries) {
		initial := strings.ToUpper(firstChar(entry.sortOn(false)))
		if i == 0 || initial != prevInitial {
			ix.writeGroupHeading(&b, initial)
		}
		prevInitial = initial
		ix.renderEntry(&b, entry)
	}

	b.WriteString("</dl>\n")

	out := b.String()
	if ix.opts.IncludeHeader {
		out = ix.opts.HeaderText + "\n" + out
	}
	if ix.opts.IncludeFooter {
		out = out + ix.opts.FooterText + "\n"
	}
	return out
}

func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// writeGroupHeading emits the separator row that precedes each letter group,
// plus a visible letter row when group headings are enabled.
func (ix *Index) writeGroupHeading(b *strings.Builder, letter string) {
	b.WriteString("\t<dt class=\"group-separator\">&nbsp;</dt>\n")
	if ix.opts.GroupHeadings {
		fmt.Fprintf(b, "\t<dt class=\"group-separator group-heading\">%s</dt>\n", letter)
	}
}

// renderEntry emits one entry: heading, "see" cross-references, locators,
// children (indented or run-in), and "see also" cross-references.
func (ix *Index) renderEntry(b *strings.Builder, entry *Entry) {
	depth := entry.Depth() + 1
	indent := strings.Repeat("\t", max(2*depth-1, 1))

	runIn := ix.shouldRunIn(entry)

	var refs strings.Builder
	wroteRefs := ix.writeXRefs(&refs, entry, RefSee, false)
	ix.writeLocators(&refs, entry, wroteRefs)
	if runIn {
		for _, child := range ix.sortEntries(entry.Children) {
			refs.WriteString(ix.opts.ListSeparator)
			ix.writeRunInChild(&refs, child)
		}
	}
	if entry.HasAlsoRefs() && (!entry.HasChildren() || runIn) {
		ix.writeXRefs(&refs, entry, RefAlso, false)
	}

	fmt.Fprintf(b, "%s<dt><span id=\"%s%d\" class=\"entry-heading\">%s</span>",
		indent, entryIDPrefix, entry.ID, displayLabel(entry.Label))
	if refs.Len() > 0 {
		fmt.Fprintf(b, "<span class=\"entry-references\">%s</span>", refs.String())
	}
	b.WriteString("</dt>\n")

	if entry.HasChildren() && !runIn {
		fmt.Fprintf(b, "%s<dd>\n%s\t<dl>\n", indent, indent)
		for _, child := range ix.sortEntries(entry.Children) {
			ix.renderEntry(b, child)
		}
		if entry.HasAlsoRefs() {
			var also strings.Builder
			ix.writeXRefs(&also, entry, RefAlso, true)
			fmt.Fprintf(b, "%s\t\t<dt><span class=\"entry-references\">%s</span></dt>\n",
				indent, also.String())
		}
		fmt.Fprintf(b, "%s\t</dl>\n%s</dd>\n", indent, indent)
	}
}

// shouldRunIn reports whether entry's children collapse to run-in style:
// only the single deepest sibling level does, and never above depth two.
func (ix *Index) shouldRunIn(entry *Entry) bool {
	return ix.opts.RunInChildren &&
		entry.HasChildren() &&
		ix.maxDepth >= 2 &&
		entry.Depth() == ix.maxDepth-1
}

// writeRunInChild renders a child inline after its parent's heading.
func (ix *Index) writeRunInChild(b *strings.Builder, child *Entry) {
	fmt.Fprintf(b, "<span id=\"%s%d\" class=\"entry-heading\">%s</span>",
		entryIDPrefix, child.ID, displayLabel(child.Label))
	ix.writeLocators(b, child, false)
	if child.HasAlsoRefs() {
		ix.writeXRefs(b, child, RefAlso, false)
	}
}

// displayLabel escapes a label and converts its emphasis markers.
func displayLabel(label string) string {
	return emphasisHTML(htmlEscape(label))
}

// writeLocators emits the locator sequence for an entry. The first locator
// follows the category separator when cross-references were already written,
// otherwise the field separator.
func (ix *Index) writeLocators(b *strings.Builder, entry *Entry, afterXRefs bool) {
	refs := ix.sortedReferences(entry)
	for i, ref := range refs {
		if i == 0 && afterXRefs {
			b.WriteString(ix.opts.CategorySeparator)
		} else {
			b.WriteString(ix.opts.FieldSeparator)
		}
		b.WriteString(ix.locatorHTML(ref))
	}
}

// sortedReferences orders an entry's locators: by start id, or emphasis
// first when section mode or emphasis-first sorting is on. Section mode also
// drops duplicate (start, end) section pairs.
func (ix *Index) sortedReferences(entry *Entry) []*Locator {
	refs := make([]*Locator, len(entry.Refs))
	copy(refs, entry.Refs)

	if ix.opts.SectionMode || ix.opts.SortEmphasisFirst {
		sort.SliceStable(refs, func(i, j int) bool {
			if refs[i].Emphasis != refs[j].Emphasis {
				return refs[i].Emphasis
			}
			return refs[i].StartID < refs[j].StartID
		})
	} else {
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].StartID < refs[j].StartID
		})
	}

	if !ix.opts.SectionMode {
		return refs
	}
	seen := make(map[[2]string]bool)
	deduped := refs[:0]
	for _, ref := range refs {
		pair := [2]string{ref.Section, ref.EndSection}
		if seen[pair] {
			ix.infof("omitting duplicate section reference %q for %q",
				ref.Section, entry.JoinedPath())
			continue
		}
		seen[pair] = true
		deduped = append(deduped, ref)
	}
	return deduped
}

// locatorHTML renders one locator: an anchor to the start id, an en-dash and
// elided end anchor for ranges, suffix text, and optional emphasis wrapping.
func (ix *Index) locatorHTML(ref *Locator) string {
	var b strings.Builder
	b.WriteString(ix.locatorAnchor(ref.StartID, ref.StartID, ref.Section))

	if ref.EndID != 0 {
		b.WriteString(ix.opts.RangeSeparator)
		b.WriteString(ix.locatorAnchor(ref.EndID, ElideEnd(ref.StartID, ref.EndID), ref.EndSection))
	}
	if ref.Suffix != "" {
		b.WriteString(ref.Suffix)
	}
	if ref.EndSuffix != "" {
		b.WriteString(ref.EndSuffix)
	}
	if ref.Emphasis {
		return "<em>" + b.String() + "</em>"
	}
	return b.String()
}

func (ix *Index) locatorAnchor(id, elided int, section string) string {
	text := ""
	sectionAttr := ""
	if section != "" {
		text = section
		sectionAttr = fmt.Sprintf(" data-index-section=%q", section)
	}
	return fmt.Sprintf(
		`<a class="locator" href="#%s%d" data-index-id="%d" data-index-id-elided="%d"%s>%s</a>`,
		ix.opts.IDPrefix, id, id, elided, sectionAttr, text)
}

// writeXRefs emits the cross-references of one kind, alphabetized by joined
// path text, each linked to its target entry's heading anchor when the
// target exists. The leading separator is suppressed when bare is set (the
// trailing child-level "see also" row).
func (ix *Index) writeXRefs(b *strings.Builder, entry *Entry, kind string, bare bool) bool {
	var refs []CrossRef
	for _, ref := range entry.XRefs {
		if ref.Kind == kind {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return false
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return strings.Join(refs[i].Path, "") < strings.Join(refs[j].Path, "")
	})

	label := ix.opts.SeeLabel
	if kind == RefAlso {
		label = ix.opts.SeeAlsoLabel
	}
	if !bare {
		b.WriteString(ix.opts.CategorySeparator)
	}
	fmt.Fprintf(b, "<em>%s</em> ", capitalize(label))

	for i, ref := range refs {
		if i > 0 {
			b.WriteString(ix.opts.ListSeparator)
		}
		b.WriteString(ix.xrefHTML(entry, ref))
	}
	return true
}

// xrefHTML renders one cross-reference: a link when the target resolves,
// plain text plus a warning when it does not.
func (ix *Index) xrefHTML(entry *Entry, ref CrossRef) string {
	pathText := displayLabel(strings.Join(ref.Path, ix.opts.PathSeparator))
	target := ix.ExistingEntryAt(ref.Path)
	if target == nil {
		ix.warnf("cross-referenced entry %s doesn't exist (in entry %s)",
			joinQuotedPath(ref.Path), entry.JoinedPath())
		return pathText
	}
	return fmt.Sprintf(`<a class="entry-link" href="#%s%d">%s</a>`,
		entryIDPrefix, target.ID, pathText)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
