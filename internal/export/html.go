// Package export converts the annotated Markdown document into a standalone
// HTML page. Raw HTML passthrough is enabled so the anchor spans and the
// <dl> index emitted by the indexing pass survive conversion.
package export

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
.textindex.index dd { margin-left: 2em; }
.textindex.index .group-separator { margin-top: 0.5em; }
.textindex.index .entry-link { text-decoration: none; }
</style>
</head>
<body>
%s</body>
</html>
`

// Page renders annotated Markdown to a full HTML document titled title.
func Page(title, markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return fmt.Sprintf(pageTemplate, title, buf.String()), nil
}
