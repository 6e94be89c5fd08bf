package index

import "regexp"

// aliasToken matches both alias references (#name) and definitions (##name).
// Go's regexp has no lookbehind, so definitions are matched too and skipped
// during expansion.
var aliasToken = regexp.MustCompile(`#{1,2}[A-Za-z0-9_-]+`)

// aliasTable maps short names to resolved entry paths. Last definition wins.
type aliasTable struct {
	ix    *Index
	defs  map[string][]string
	order []string
}

func newAliasTable(ix *Index) *aliasTable {
	return &aliasTable{ix: ix, defs: make(map[string][]string)}
}

// Define binds name to path, overwriting any previous binding. Redefining a
// name with a different path is reported but honored.
func (a *aliasTable) Define(name string, path []string) {
	if prev, ok := a.defs[name]; ok {
		if !equalPath(prev, path) {
			a.ix.warnf("redefined alias %s%s: was %v, now %v", aliasPrefix, name, prev, path)
		}
	} else {
		a.order = append(a.order, name)
		a.ix.debugf("defined alias %s%s as %v", aliasPrefix, name, path)
	}
	a.defs[name] = append([]string{}, path...)
}

// Resolve returns the path bound to name.
func (a *aliasTable) Resolve(name string) ([]string, bool) {
	path, ok := a.defs[name]
	return path, ok
}

// Expand substitutes every known #name token in text with its quoted,
// delimiter-joined path. Definitions (##name) and unknown names pass through
// untouched. Token matching is boundary-anchored by the name character
// class, so shorter alias names never clip longer ones.
func (a *aliasTable) Expand(text string) string {
	if len(a.defs) == 0 {
		return text
	}
	return aliasToken.ReplaceAllStringFunc(text, func(tok string) string {
		if len(tok) > 1 && tok[1] == aliasPrefix[0] {
			return tok // definition, not a reference
		}
		if path, ok := a.defs[tok[1:]]; ok {
			return joinQuotedPath(path)
		}
		return tok
	})
}

// paths returns the defined alias paths in definition order.
func (a *aliasTable) paths() [][]string {
	out := make([][]string, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.defs[name])
	}
	return out
}
