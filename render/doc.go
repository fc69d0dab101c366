// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render turns normalized Markdown into the documents a board can be
viewed as.

# Views

	raw      text/markdown, the Markdown itself
	preview  text/html, rendered with goldmark (GFM); raw HTML is omitted
	pdf      application/pdf, laid out with gofpdf

ForView maps a view name to its Renderer:

	r, err := render.ForView("pdf")
	if errors.Is(err, render.ErrUnknownView) {
		// 400
	}
	body, err := r.Render(markdown)
*/
package render
