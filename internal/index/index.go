package index

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Directive and output constants shared across the scanner and renderer.
const (
	pathDelimiter  = ">"
	refsDelimiter  = ";"
	emphasisMarker = "!"
	endMarker      = "/"
	alsoMarker     = "+"
	inboundMarker  = "@"
	aliasPrefix    = "#"

	enableMark  = "+"
	disableMark = "-"

	sharedClass   = "textindex"
	entryIDPrefix = "entry"
)

// Options is the explicit configuration of one Index. Zero values are not
// useful; start from DefaultOptions.
type Options struct {
	SeeLabel     string
	SeeAlsoLabel string

	CategorySeparator string
	FieldSeparator    string
	ListSeparator     string
	PathSeparator     string
	RangeSeparator    string

	IDPrefix string

	RunInChildren     bool
	GroupHeadings     bool
	SortEmphasisFirst bool
	CaseSensitiveSort bool
	SectionMode       bool

	// AlwaysAnchor makes every enabled non-toggle mark consume a locator id
	// and emit an anchor span, even when no locator is recorded. The default
	// emits anchors only for marks that open or close a locator.
	AlwaysAnchor bool

	ShowWarnings bool
	Verbose      bool

	IncludeHeader bool
	HeaderText    string
	IncludeFooter bool
	FooterText    string
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		SeeLabel:          "see",
		SeeAlsoLabel:      "see also",
		CategorySeparator: ". ",
		FieldSeparator:    ", ",
		ListSeparator:     "; ",
		PathSeparator:     ": ",
		RangeSeparator:    "–",
		IDPrefix:          "idx",
		RunInChildren:     true,
		ShowWarnings:      true,
		HeaderText:        "<h2>Index</h2>",
	}
}

// Index builds and renders a back-of-book index for one document. It is not
// safe for concurrent use; each document gets its own Index.
type Index struct {
	opts Options
	log  *slog.Logger

	entries    []*Entry
	aliases    *aliasTable
	openRanges map[string]*Locator

	nextEntryID   int
	nextLocatorID int
	maxDepth      int
	marksApplied  int
	warnings      int
}

// New creates an Index with the given options. A nil logger discards
// everything.
func New(opts Options, log *slog.Logger) *Index {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ix := &Index{opts: opts, log: log}
	ix.reset()
	return ix
}

func (ix *Index) reset() {
	ix.entries = nil
	ix.aliases = newAliasTable(ix)
	ix.openRanges = make(map[string]*Locator)
	ix.nextEntryID = 0
	ix.nextLocatorID = 1
	ix.maxDepth = 0
	ix.marksApplied = 0
	ix.warnings = 0
}

// Options returns a copy of the active configuration.
func (ix *Index) Options() Options {
	return ix.opts
}

// Entries returns the top-level entries of the built index.
func (ix *Index) Entries() []*Entry {
	return ix.entries
}

// Len returns the total number of entries in the tree.
func (ix *Index) Len() int {
	n := 0
	for _, e := range ix.entries {
		n += e.Len()
	}
	return n
}

// Warnings returns how many warnings were reported during the last pass.
func (ix *Index) Warnings() int {
	return ix.warnings
}

func (ix *Index) warnf(format string, args ...any) {
	ix.warnings++
	if ix.opts.ShowWarnings {
		ix.log.Warn(fmt.Sprintf(format, args...))
	}
}

func (ix *Index) infof(format string, args ...any) {
	ix.log.Info(fmt.Sprintf(format, args...))
}

func (ix *Index) debugf(format string, args ...any) {
	ix.log.Debug(fmt.Sprintf(format, args...))
}

// EntryAt returns the entry named label beneath the given ancestor labels,
// and whether the final entry already existed. Ancestors are matched exactly
// and case-sensitively. When create is true, missing nodes along the chain
// are created; once one node in the chain is created, all later ones are too.
func (ix *Index) EntryAt(label string, ancestors []string, create bool) (*Entry, bool) {
	created := false
	var entry *Entry
	siblings := &ix.entries

	for _, component := range append(append([]string{}, ancestors...), label) {
		var found *Entry
		for _, ent := range *siblings {
			if ent.Label == component {
				found = ent
				break
			}
		}

		if found != nil {
			entry = found
			siblings = &found.Children
			continue
		}
		if !create {
			ix.debugf("failed to find %q", label)
			return nil, false
		}
		parent := entry
		entry = &Entry{ID: ix.nextEntryID, Label: component, Parent: parent}
		ix.nextEntryID++
		if d := entry.Depth(); d > ix.maxDepth {
			ix.maxDepth = d
		}
		*siblings = append(*siblings, entry)
		siblings = &entry.Children
		created = true
		if parent != nil {
			ix.debugf("making new entry %q within %q", component, parent.Label)
		} else {
			ix.debugf("making new entry %q at root", component)
		}
	}

	return entry, entry != nil && !created
}

// ExistingEntryAt returns the entry at path without creating anything, or
// nil when the path does not resolve.
func (ix *Index) ExistingEntryAt(path []string) *Entry {
	if len(path) == 0 {
		return nil
	}
	entry, _ := ix.EntryAt(path[len(path)-1], path[:len(path)-1], false)
	return entry
}

// PrefixSearch returns the first entry, pre-order over the whole tree, whose
// label starts with text.
func (ix *Index) PrefixSearch(text string) *Entry {
	for _, entry := range ix.entries {
		if found := entry.PrefixSearch(text); found != nil {
			return found
		}
	}
	return nil
}

// sortEntries returns the entries ordered by their sort keys. The sort is
// stable: entries with identical keys keep creation order.
func (ix *Index) sortEntries(entries []*Entry) []*Entry {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sortOn(ix.opts.CaseSensitiveSort) < sorted[j].sortOn(ix.opts.CaseSensitiveSort)
	})
	return sorted
}

func pathKey(path []string) string {
	return strings.Join(path, "\x1f")
}

// postProcess merges stray top-level entries created before an alias was
// known into the alias-resolved canonical entry.
func (ix *Index) postProcess() {
	for _, path := range ix.aliases.paths() {
		canonical := ix.ExistingEntryAt(path)
		if canonical == nil {
			continue
		}
		last := path[len(path)-1]
		candidates := []string{last}
		if words := strings.Fields(last); len(words) > 1 {
			candidates = append(candidates, words[len(words)-1])
		}
		for _, label := range candidates {
			ix.mergeStray(label, canonical)
		}
	}
}

func (ix *Index) mergeStray(label string, canonical *Entry) {
	for i, ent := range ix.entries {
		if ent == canonical || ent.Label != label {
			continue
		}
		canonical.Refs = append(canonical.Refs, ent.Refs...)
		for _, ref := range ent.XRefs {
			canonical.AddCrossRef(ref.Kind, ref.Path)
		}
		for _, child := range ent.Children {
			child.Parent = canonical
			canonical.Children = append(canonical.Children, child)
		}
		ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
		ix.infof("merged stray entry %q into %q", label, canonical.JoinedPath())
		return
	}
}

// sizeCheck emits informational reports when the rendered index looks out of
// proportion to the annotated document. It never blocks output.
func (ix *Index) sizeCheck(annotated, rendered string) {
	if ix.marksApplied == 0 {
		return
	}
	if rendered == "" {
		ix.infof("document contains %d index marks but the index is empty", ix.marksApplied)
		return
	}
	if len(annotated) > 0 && len(rendered) > len(annotated)/2 {
		ix.infof("index is unusually large: %d bytes against a %d byte document",
			len(rendered), len(annotated))
	}
}
