package index

import (
	"reflect"
	"testing"
)

func TestEntryAt(t *testing.T) {
	ix := New(DefaultOptions(), nil)

	cats, existed := ix.EntryAt("Cats", []string{"Animals"}, true)
	if existed {
		t.Error("expected first lookup to create the entry")
	}
	if cats.Label != "Cats" {
		t.Errorf("expected label %q, got %q", "Cats", cats.Label)
	}
	if cats.Parent == nil || cats.Parent.Label != "Animals" {
		t.Error("expected parent entry Animals to be created")
	}

	again, existed := ix.EntryAt("Cats", []string{"Animals"}, true)
	if !existed {
		t.Error("expected second lookup to find the existing entry")
	}
	if again != cats {
		t.Error("expected the same entry on repeat lookup")
	}

	if _, existed := ix.EntryAt("Dogs", []string{"Animals"}, false); existed {
		t.Error("expected lookup without create to fail for missing entry")
	}
	if ix.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", ix.Len())
	}
}

func TestEntryPaths(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	tabby, _ := ix.EntryAt("tabby", []string{"Animals", "Cats"}, true)

	if tabby.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", tabby.Depth())
	}
	expected := []string{"Animals", "Cats", "tabby"}
	if got := tabby.PathList(); !reflect.DeepEqual(got, expected) {
		t.Errorf("PathList() = %v, expected %v", got, expected)
	}
	if got := tabby.JoinedPath(); got != `"Animals">"Cats">"tabby"` {
		t.Errorf("JoinedPath() = %q", got)
	}
}

func TestAddCrossRefDeduplicates(t *testing.T) {
	e := &Entry{Label: "Dogs"}
	e.AddCrossRef(RefAlso, []string{"Cats"})
	e.AddCrossRef(RefAlso, []string{"Cats"})
	e.AddCrossRef(RefSee, []string{"Cats"})

	if len(e.XRefs) != 2 {
		t.Errorf("expected 2 cross-references after dedup, got %d", len(e.XRefs))
	}
}

func TestPrefixSearch(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	ix.EntryAt("Cats", []string{"Animals"}, true)
	ix.EntryAt("Caterpillars", nil, true)

	// Pre-order: Animals' subtree is visited before the later top-level entry.
	found := ix.PrefixSearch("Cat")
	if found == nil || found.Label != "Cats" {
		t.Fatalf("PrefixSearch(%q) = %v, expected Cats", "Cat", found)
	}
	if ix.PrefixSearch("cat") != nil {
		t.Error("expected prefix search to be case-sensitive")
	}
}

func TestSortEntriesUsesSortKeys(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	zebras, _ := ix.EntryAt("Zebras", nil, true)
	ix.EntryAt("aardvarks", nil, true)
	mules, _ := ix.EntryAt("Mules", nil, true)
	mules.SortKey = "aaa"

	sorted := ix.sortEntries(ix.entries)
	labels := make([]string, len(sorted))
	for i, e := range sorted {
		labels[i] = e.Label
	}
	expected := []string{"Mules", "aardvarks", "Zebras"}
	if !reflect.DeepEqual(labels, expected) {
		t.Errorf("sorted labels = %v, expected %v", labels, expected)
	}

	// Case-folded by default: capital Z sorts with lowercase z.
	zebras.SortKey = ""
	if zebras.sortOn(false) != "zebras" {
		t.Errorf("sortOn(false) = %q, expected %q", zebras.sortOn(false), "zebras")
	}
}

func TestStrayEntryMerge(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	doc := "Dogs{^} are loyal.\n\nLater, [Big Dogs]{^Big Dogs##bd} appear.\n"
	ix.Process(doc)

	if len(ix.Entries()) != 1 {
		t.Fatalf("expected 1 top-level entry after merge, got %d", len(ix.Entries()))
	}
	canonical := ix.Entries()[0]
	if canonical.Label != "Big Dogs" {
		t.Errorf("expected canonical label %q, got %q", "Big Dogs", canonical.Label)
	}
	if len(canonical.Refs) != 2 {
		t.Errorf("expected 2 locators on merged entry, got %d", len(canonical.Refs))
	}
}
