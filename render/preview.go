// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const previewHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Board</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
h1, h2, h3 { line-height: 1.2; }
</style>
</head>
<body>
`

const previewTail = `</body>
</html>
`

// PreviewRenderer renders Markdown as a standalone HTML page. Raw HTML in
// the input is omitted from the output.
type PreviewRenderer struct {
	md goldmark.Markdown
}

func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (r *PreviewRenderer) Render(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(previewHead)
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	buf.WriteString(previewTail)
	return buf.Bytes(), nil
}

func (r *PreviewRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *PreviewRenderer) Extension() string {
	return ".html"
}
