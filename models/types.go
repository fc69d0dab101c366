// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

// Markdown is left untyped; anything other than a string normalizes to "".
type NormalizeRequest struct {
	Markdown         any   `json:"markdown"`
	ExpandLineBreaks *bool `json:"expand_line_breaks,omitempty"`
	Heuristics       *bool `json:"heuristics,omitempty"`
}

type RenderRequest struct {
	Markdown  string `json:"markdown"`
	View      string `json:"view"`
	Normalize *bool  `json:"normalize,omitempty"`
}

// Response types

// ConvertResponse keeps the field names the web client already reads.
type ConvertResponse struct {
	Success           bool     `json:"success"`
	Markdown          string   `json:"markdown"`
	FormattedMarkdown string   `json:"formattedMarkdown"`
	ProcessingTime    *float64 `json:"processing_time,omitempty"`
	FileName          string   `json:"fileName"`
	FileSize          int64    `json:"fileSize"`
	FileType          string   `json:"fileType"`
}

type NormalizeResponse struct {
	Markdown   string `json:"markdown"`
	Structured bool   `json:"structured"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
