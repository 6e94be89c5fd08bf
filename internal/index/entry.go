package index

import "strings"

// Cross-reference kinds.
const (
	RefSee  = "see"
	RefAlso = "also"
)

// Locator is one reference from an index entry back into the document.
// StartID and EndID are the sequential anchor ids emitted during scanning;
// EndID is zero unless the locator covers a range.
type Locator struct {
	StartID    int
	EndID      int
	Suffix     string
	EndSuffix  string
	Emphasis   bool
	Section    string
	EndSection string
}

// CrossRef is a "see"/"see also" pointer to another entry's path.
type CrossRef struct {
	Kind string
	Path []string
}

// Entry is a node in the index tree.
type Entry struct {
	ID       int
	Label    string
	SortKey  string
	Parent   *Entry
	Children []*Entry
	Refs     []*Locator
	XRefs    []CrossRef
}

// Depth returns the zero-based depth of the entry in the tree.
func (e *Entry) Depth() int {
	level := 0
	for p := e.Parent; p != nil; p = p.Parent {
		level++
	}
	return level
}

// PathList returns the labels from the topmost ancestor down to this entry.
func (e *Entry) PathList() []string {
	path := []string{e.Label}
	for p := e.Parent; p != nil; p = p.Parent {
		path = append([]string{p.Label}, path...)
	}
	return path
}

// JoinedPath returns a quoted, delimiter-joined form of the entry's path,
// suitable for diagnostics and alias expansion.
func (e *Entry) JoinedPath() string {
	return joinQuotedPath(e.PathList())
}

func joinQuotedPath(path []string) string {
	quoted := make([]string, len(path))
	for i, p := range path {
		quoted[i] = `"` + p + `"`
	}
	return strings.Join(quoted, pathDelimiter)
}

// AddCrossRef appends a cross-reference unless an identical (kind, path)
// pair is already present.
func (e *Entry) AddCrossRef(kind string, path []string) {
	for _, ref := range e.XRefs {
		if ref.Kind == kind && equalPath(ref.Path, path) {
			return
		}
	}
	e.XRefs = append(e.XRefs, CrossRef{Kind: kind, Path: path})
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddReference appends a new locator starting at startID.
func (e *Entry) AddReference(loc *Locator) {
	e.Refs = append(e.Refs, loc)
}

// HasChildren reports whether the entry has sub-entries.
func (e *Entry) HasChildren() bool {
	return len(e.Children) > 0
}

// HasAlsoRefs reports whether the entry carries any "see also" references.
func (e *Entry) HasAlsoRefs() bool {
	for _, ref := range e.XRefs {
		if ref.Kind == RefAlso {
			return true
		}
	}
	return false
}

// PrefixSearch returns the first entry, in pre-order, whose label starts
// with text. Comparison is case-sensitive.
func (e *Entry) PrefixSearch(text string) *Entry {
	if strings.HasPrefix(e.Label, text) {
		return e
	}
	for _, child := range e.Children {
		if found := child.PrefixSearch(text); found != nil {
			return found
		}
	}
	return nil
}

// sortOn returns the comparison key for ordering: the explicit sort key if
// set, otherwise the label with emphasis markers stripped. Case is folded
// unless caseSensitive is set.
func (e *Entry) sortOn(caseSensitive bool) string {
	key := e.SortKey
	if key == "" {
		key = stripEmphasis(e.Label)
	}
	if caseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// Len returns the size of the subtree rooted at this entry, itself included.
func (e *Entry) Len() int {
	n := 1
	for _, child := range e.Children {
		n += child.Len()
	}
	return n
}
