// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vlm

import (
	"errors"
	"fmt"
)

var (
	ErrNoServiceURL = errors.New("conversion service URL not configured")
	ErrEmptyImage   = errors.New("image is empty")
)

// DefaultFailureMessage is reported when the service fails without saying why.
const DefaultFailureMessage = "Conversion failed"

// StatusError is returned when the service rejects a conversion.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("conversion service returned %d: %s", e.StatusCode, e.Message)
}

// NotJSONError is returned when the service answers with something other
// than JSON. Snippet holds the start of the body.
type NotJSONError struct {
	StatusCode  int
	ContentType string
	Snippet     string
}

func (e *NotJSONError) Error() string {
	ct := e.ContentType
	if ct == "" {
		ct = "no content type"
	}
	return fmt.Sprintf("expected JSON response but got %s (status %d): %s", ct, e.StatusCode, e.Snippet)
}
