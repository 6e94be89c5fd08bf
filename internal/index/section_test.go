package index

import (
	"strings"
	"testing"
)

func TestProcessSectionMode(t *testing.T) {
	opts := DefaultOptions()
	opts.SectionMode = true
	ix := New(opts, nil)

	doc := "# One\n\nDogs{^} bark.\n\n## Sub {#custom}\n\nCats{^} purr.\n\n# Notes {.no-toc}\n\nBirds{^} sing.\n\n{index}\n"
	got := ix.Process(doc)

	if !strings.Contains(got, `<h1 id="one"><a href="#one">One</a></h1>`) {
		t.Error("expected the first heading rewritten with a slug id")
	}
	if !strings.Contains(got, `<h2 id="custom"><a href="#custom">Sub</a></h2>`) {
		t.Error("expected the explicit heading id to be kept")
	}
	if !strings.Contains(got, `data-index-section="1">Dogs`) {
		t.Error("expected Dogs anchored in section 1")
	}
	if !strings.Contains(got, `data-index-section="1.1">Cats`) {
		t.Error("expected Cats anchored in section 1.1")
	}
	// The .no-toc heading does not advance the counters.
	if !strings.Contains(got, `data-index-section="1.1">Birds`) {
		t.Error("expected Birds to stay in section 1.1 after the unlisted heading")
	}
	// Locators display the section instead of being empty anchors.
	if !strings.Contains(got, `data-index-section="1">1</a>`) {
		t.Error("expected the locator anchor to show the section number")
	}
}

func TestProcessSectionModeDeduplicates(t *testing.T) {
	opts := DefaultOptions()
	opts.SectionMode = true
	ix := New(opts, nil)

	doc := "# One\n\nDogs{^} and Dogs{^} again.\n\n{index}\n"
	got := ix.Process(doc)

	if n := strings.Count(got, `class="locator"`); n != 1 {
		t.Errorf("expected 1 locator after section dedup, got %d", n)
	}
}

func TestSectionTrackerAdvance(t *testing.T) {
	tests := []struct {
		name     string
		levels   []int
		expected string
	}{
		{name: "single level", levels: []int{1}, expected: "1"},
		{name: "descend", levels: []int{1, 2, 3}, expected: "1.1.1"},
		{name: "sibling increment", levels: []int{1, 2, 2}, expected: "1.2"},
		{name: "pop and increment", levels: []int{1, 2, 3, 2}, expected: "1.2"},
		{name: "skip a level down", levels: []int{1, 3}, expected: "1.1.1"},
		{name: "back to top", levels: []int{1, 2, 1}, expected: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.SectionMode = true
			s := newSectionTracker(New(opts, nil))
			for _, level := range tt.levels {
				s.advance(level)
			}
			if got := s.current(); got != tt.expected {
				t.Errorf("after %v, current() = %q, expected %q", tt.levels, got, tt.expected)
			}
		})
	}
}

func TestRenderHeading(t *testing.T) {
	got := renderHeading(2, "My Title", ".wide #custom data-x=1")
	expected := `<h2 id="custom" class="wide" data-x="1"><a href="#custom">My Title</a></h2>`
	if got != expected {
		t.Errorf("renderHeading() = %q, expected %q", got, expected)
	}

	got = renderHeading(3, "What's New?", "")
	expected = `<h3 id="whats-new"><a href="#whats-new">What's New?</a></h3>`
	if got != expected {
		t.Errorf("renderHeading() = %q, expected %q", got, expected)
	}
}
