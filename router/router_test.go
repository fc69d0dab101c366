// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/middleware"
	"github.com/danielhkuo/board2md/models"
	"github.com/danielhkuo/board2md/testutil"
	"github.com/danielhkuo/board2md/vlm"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *testutil.FakeVLM) {
	t.Helper()

	fake := testutil.NewFakeVLM(t, http.StatusOK, "application/json",
		`{"success":true,"markdown":"Oct 3\n10 emails","processing_time":1.2}`)
	cfg := testutil.GetTestConfig(fake.URL)
	client := vlm.NewClient(vlm.Config{URL: cfg.ServiceURL, Token: cfg.ServiceToken, Timeout: cfg.RequestTimeout}, nil)

	return NewRouter(client, markdown.NewNormalizer(), cfg), fake
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "board2md API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/boards", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// 400 is a valid answer for an empty body; 404 and 405 mean no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/api/convert"},
		{"POST", "/api/normalize"},
		{"POST", "/api/render"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned %d, expected route handler to exist", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/api/convert"},
		{"PUT", "/api/normalize"},
		{"DELETE", "/api/render"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestConvertThroughRouter(t *testing.T) {
	mux, fake := newTestRouter(t)

	req := testutil.MakeUploadRequest(t, "/api/convert", "file", "board.png", "image/png", testutil.TestPNG(t, 64, 48))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a request ID header")
	}

	var resp models.ConvertResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.FormattedMarkdown != "## Oct 3\n\n- 10 emails" {
		t.Errorf("Unexpected formatted markdown %q", resp.FormattedMarkdown)
	}
	if len(fake.Images()) != 1 {
		t.Errorf("Expected one upstream call, got %d", len(fake.Images()))
	}
}

func TestRenderThroughRouter(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := testutil.MakeRequest("POST", "/api/render", models.RenderRequest{Markdown: "Oct 3", View: "pdf"}, nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Expected a PDF document")
	}
}
