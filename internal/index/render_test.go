package index

import (
	"strings"
	"testing"
)

func TestRenderHTMLEmptyIndex(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	if got := ix.RenderHTML(); got != "" {
		t.Errorf("expected empty output for empty index, got %q", got)
	}
	if ix.Warnings() != 1 {
		t.Errorf("expected 1 warning, got %d", ix.Warnings())
	}
}

func TestRenderHTMLRunInChildren(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	gun, _ := ix.EntryAt("gun dogs", []string{"Dogs"}, true)
	gun.AddReference(&Locator{StartID: 1})
	pointers, _ := ix.EntryAt("pointers", []string{"Dogs", "gun dogs"}, true)
	pointers.AddReference(&Locator{StartID: 3})

	got := ix.RenderHTML()

	runIn := `<span id="entry2" class="entry-heading">pointers</span>, <a class="locator" href="#idx3"`
	if !strings.Contains(got, runIn) {
		t.Errorf("expected deepest level to run in, missing %q in:\n%s", runIn, got)
	}
	if strings.Contains(got, `<dt><span id="entry2"`) {
		t.Error("expected no standalone row for the run-in child")
	}
}

func TestRenderHTMLIndentedChildren(t *testing.T) {
	opts := DefaultOptions()
	opts.RunInChildren = false
	ix := New(opts, nil)

	puppies, _ := ix.EntryAt("puppies", []string{"Dogs"}, true)
	puppies.AddReference(&Locator{StartID: 2})
	dogs := ix.Entries()[0]
	dogs.AddCrossRef(RefAlso, []string{"Cats"})
	cats, _ := ix.EntryAt("Cats", nil, true)
	cats.AddReference(&Locator{StartID: 1})

	got := ix.RenderHTML()

	if !strings.Contains(got, "<dd>\n") || !strings.Contains(got, "<dl>\n") {
		t.Error("expected nested dd/dl structure for child entries")
	}
	// The see-also row trails the child list, linked to the Cats entry.
	alsoRow := `<dt><span class="entry-references"><em>See also</em> <a class="entry-link" href="#entry2">Cats</a></span></dt>`
	if !strings.Contains(got, alsoRow) {
		t.Errorf("expected trailing see-also row, missing %q in:\n%s", alsoRow, got)
	}
}

func TestRenderHTMLUnresolvedCrossReference(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	dogs, _ := ix.EntryAt("Dogs", nil, true)
	dogs.AddCrossRef(RefSee, []string{"canines"})

	got := ix.RenderHTML()

	if strings.Contains(got, "entry-link") {
		t.Error("expected no link for an unresolved cross-reference")
	}
	if !strings.Contains(got, "<em>See</em> canines") {
		t.Error("expected plain text for the unresolved target")
	}
	if ix.Warnings() == 0 {
		t.Error("expected a warning for the unresolved cross-reference")
	}
}

func TestRenderHTMLHeaderFooter(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeHeader = true
	opts.IncludeFooter = true
	opts.FooterText = "<p>end of index</p>"
	ix := New(opts, nil)
	dogs, _ := ix.EntryAt("Dogs", nil, true)
	dogs.AddReference(&Locator{StartID: 1})

	got := ix.RenderHTML()

	if !strings.HasPrefix(got, "<h2>Index</h2>\n") {
		t.Error("expected the header before the index")
	}
	if !strings.HasSuffix(got, "<p>end of index</p>\n") {
		t.Error("expected the footer after the index")
	}
}

func TestRenderHTMLEmphasisFirstSorting(t *testing.T) {
	opts := DefaultOptions()
	opts.SortEmphasisFirst = true
	ix := New(opts, nil)
	dogs, _ := ix.EntryAt("Dogs", nil, true)
	dogs.AddReference(&Locator{StartID: 1})
	dogs.AddReference(&Locator{StartID: 2, Emphasis: true})

	got := ix.RenderHTML()

	em := strings.Index(got, `<em><a class="locator" href="#idx2"`)
	plain := strings.Index(got, `<a class="locator" href="#idx1"`)
	if em < 0 || plain < 0 {
		t.Fatal("expected both locators in output")
	}
	if em > plain {
		t.Error("expected the emphasised locator to sort first")
	}
}
