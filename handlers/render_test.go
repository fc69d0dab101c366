// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/board2md/models"
	"github.com/danielhkuo/board2md/testutil"
)

func TestRender(t *testing.T) {
	h := NewRenderHandler(nil)

	testCases := []struct {
		name                string
		req                 models.RenderRequest
		expectedContentType string
		check               func(t *testing.T, body []byte)
	}{
		{
			name:                "raw normalizes by default",
			req:                 models.RenderRequest{Markdown: "Oct 3\n10 emails", View: "raw"},
			expectedContentType: "text/markdown; charset=utf-8",
			check: func(t *testing.T, body []byte) {
				if string(body) != "## Oct 3\n\n- 10 emails" {
					t.Errorf("Unexpected body %q", body)
				}
			},
		},
		{
			name:                "raw without normalizing",
			req:                 models.RenderRequest{Markdown: "Oct 3\n10 emails", View: "raw", Normalize: boolPtr(false)},
			expectedContentType: "text/markdown; charset=utf-8",
			check: func(t *testing.T, body []byte) {
				if string(body) != "Oct 3\n10 emails" {
					t.Errorf("Unexpected body %q", body)
				}
			},
		},
		{
			name:                "empty view means raw",
			req:                 models.RenderRequest{Markdown: "# Hi"},
			expectedContentType: "text/markdown; charset=utf-8",
		},
		{
			name:                "preview",
			req:                 models.RenderRequest{Markdown: "Oct 3", View: "preview"},
			expectedContentType: "text/html; charset=utf-8",
			check: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), "<h2>Oct 3</h2>") {
					t.Errorf("Expected heading in preview, got %s", body)
				}
			},
		},
		{
			name:                "pdf",
			req:                 models.RenderRequest{Markdown: "Oct 3\n10 emails", View: "pdf"},
			expectedContentType: "application/pdf",
			check: func(t *testing.T, body []byte) {
				if !bytes.HasPrefix(body, []byte("%PDF-")) {
					t.Error("Expected a PDF document")
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/render", tc.req, nil)
			w := httptest.NewRecorder()

			h.Render(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			if ct := w.Header().Get("Content-Type"); ct != tc.expectedContentType {
				t.Errorf("Expected Content-Type %q, got %q", tc.expectedContentType, ct)
			}
			if tc.check != nil {
				tc.check(t, w.Body.Bytes())
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	h := NewRenderHandler(nil)

	t.Run("unknown view", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/render", models.RenderRequest{Markdown: "x", View: "docx"}, nil)
		w := httptest.NewRecorder()
		h.Render(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Error != "Unknown view: docx" {
			t.Errorf("Unexpected error %q", resp.Error)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/render", strings.NewReader("["))
		w := httptest.NewRecorder()
		h.Render(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
