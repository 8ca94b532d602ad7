package extract

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders GitHub-flavored Markdown; GFM is what gives us pipe
// tables, which is the only construct the extractor cares about.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown converts a Markdown document to HTML.
func RenderMarkdown(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
