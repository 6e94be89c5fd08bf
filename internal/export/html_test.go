package export

import (
	"strings"
	"testing"
)

func TestPage(t *testing.T) {
	markdown := "# Heading\n\nSome <span id=\"idx1\" class=\"textindex\">text</span> here.\n"

	got, err := Page("My Book", markdown)
	if err != nil {
		t.Fatalf("Page() error: %v", err)
	}

	if !strings.Contains(got, "<title>My Book</title>") {
		t.Error("expected the page title in the head")
	}
	if !strings.Contains(got, "<h1>Heading</h1>") {
		t.Error("expected the heading converted to HTML")
	}
	if !strings.Contains(got, `<span id="idx1" class="textindex">text</span>`) {
		t.Error("expected raw anchor spans to pass through")
	}
}
