// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/models"
	"github.com/danielhkuo/board2md/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalize(t *testing.T) {
	h := NewNormalizeHandler(markdown.NewNormalizer())

	testCases := []struct {
		name               string
		body               interface{}
		expectedMarkdown   string
		expectedStructured bool
	}{
		{
			name:               "whiteboard text",
			body:               map[string]interface{}{"markdown": "Oct 3- Oct 10\n5 Sections CSE101\n10 emails··"},
			expectedMarkdown:   "## Oct 3- Oct 10\n\n- 5 Sections CSE101\n\n- 10 emails",
			expectedStructured: true,
		},
		{
			name:               "existing structure is kept",
			body:               map[string]interface{}{"markdown": "- item one\nOct 3"},
			expectedMarkdown:   "- item one\n\nOct 3",
			expectedStructured: true,
		},
		{
			name:               "non-string markdown",
			body:               map[string]interface{}{"markdown": 42},
			expectedMarkdown:   "",
			expectedStructured: false,
		},
		{
			name:               "missing markdown",
			body:               map[string]interface{}{},
			expectedMarkdown:   "",
			expectedStructured: false,
		},
		{
			name:               "heuristics off",
			body:               models.NormalizeRequest{Markdown: "Oct 3\n10 emails", Heuristics: boolPtr(false)},
			expectedMarkdown:   "Oct 3\n\n10 emails",
			expectedStructured: false,
		},
		{
			name:               "expansion off",
			body:               models.NormalizeRequest{Markdown: "A &amp; B\nC", ExpandLineBreaks: boolPtr(false)},
			expectedMarkdown:   "A & B\nC",
			expectedStructured: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/normalize", tc.body, nil)
			w := httptest.NewRecorder()

			h.Normalize(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.NormalizeResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Markdown != tc.expectedMarkdown {
				t.Errorf("Expected markdown %q, got %q", tc.expectedMarkdown, resp.Markdown)
			}
			if resp.Structured != tc.expectedStructured {
				t.Errorf("Expected structured %v, got %v", tc.expectedStructured, resp.Structured)
			}
		})
	}
}

func TestNormalize_HeuristicsOnOverridesServer(t *testing.T) {
	h := NewNormalizeHandler(markdown.NewNormalizer(markdown.WithoutHeuristics()))

	req := testutil.MakeRequest("POST", "/api/normalize", models.NormalizeRequest{
		Markdown:   "Oct 3",
		Heuristics: boolPtr(true),
	}, nil)
	w := httptest.NewRecorder()
	h.Normalize(w, req)

	var resp models.NormalizeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Markdown != "## Oct 3" {
		t.Errorf("Expected built-in rules to apply, got %q", resp.Markdown)
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	h := NewNormalizeHandler(nil)

	req := httptest.NewRequest("POST", "/api/normalize", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.Normalize(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestNormalize_Idempotent(t *testing.T) {
	h := NewNormalizeHandler(nil)

	first := func(in string) string {
		req := testutil.MakeRequest("POST", "/api/normalize", map[string]string{"markdown": in}, nil)
		w := httptest.NewRecorder()
		h.Normalize(w, req)

		var resp models.NormalizeResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.Markdown
	}

	once := first("Nov 5 - Nov/12\n3 Sales Calls ··\n-\n<!-- image -->")
	if twice := first(once); twice != once {
		t.Errorf("Expected normalizing twice to be stable:\n%q\n%q", once, twice)
	}
}
