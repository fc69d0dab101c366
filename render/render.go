// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"errors"
	"fmt"
	"strings"
)

// Views a board can be rendered as.
const (
	ViewRaw     = "raw"
	ViewPreview = "preview"
	ViewPDF     = "pdf"
)

var ErrUnknownView = errors.New("unknown view")

// Renderer turns normalized Markdown into an output document.
type Renderer interface {
	Render(markdown string) ([]byte, error)
	ContentType() string
	Extension() string
}

// ForView returns the renderer for view. An empty view means raw.
func ForView(view string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(view)) {
	case "", ViewRaw:
		return NewRawRenderer(), nil
	case ViewPreview:
		return NewPreviewRenderer(), nil
	case ViewPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

// RawRenderer returns the Markdown as-is.
type RawRenderer struct{}

func NewRawRenderer() *RawRenderer {
	return &RawRenderer{}
}

func (r *RawRenderer) Render(markdown string) ([]byte, error) {
	return []byte(markdown), nil
}

func (r *RawRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func (r *RawRenderer) Extension() string {
	return ".md"
}
