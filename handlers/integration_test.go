// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/models"
	"github.com/danielhkuo/board2md/testutil"
	"github.com/danielhkuo/board2md/vlm"
)

// TestFullConversionWorkflow tests the complete end-to-end workflow:
// 1. Upload a board photo
// 2. Compress it and relay it to the conversion service
// 3. Normalize the returned Markdown
// 4. Re-normalize the formatted text (no change)
// 5. Render the result as a PDF
func TestFullConversionWorkflow(t *testing.T) {
	fake := testutil.NewFakeVLM(t, http.StatusOK, "application/json",
		`{"success":true,"markdown":"<!-- image -->\nOct 3- Oct 10\n5 Sections CSE101\n10 emails··\n2 Pitch Competions","processing_time":4.1}`)
	cfg := testutil.GetTestConfig(fake.URL)

	normalizer := markdown.NewNormalizer()
	client := vlm.NewClient(vlm.Config{URL: cfg.ServiceURL, Token: cfg.ServiceToken, Timeout: cfg.RequestTimeout}, nil)
	convertHandler := NewConvertHandler(client, normalizer, cfg)
	normalizeHandler := NewNormalizeHandler(normalizer)
	renderHandler := NewRenderHandler(normalizer)

	// Steps 1-2: upload
	photo := testutil.TestPNG(t, 1600, 1200)
	req := testutil.MakeUploadRequest(t, "/api/convert", "file", "board.png", "image/png", photo)
	w := httptest.NewRecorder()
	convertHandler.Convert(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Convert failed: %d - %s", w.Code, w.Body.String())
	}

	images := fake.Images()
	if len(images) != 1 || !strings.HasPrefix(images[0], "data:image/jpeg;base64,") {
		t.Fatalf("Step 2 - Expected one compressed JPEG upstream, got %d", len(images))
	}

	// Step 3: normalized output
	var convertResp models.ConvertResponse
	testutil.AssertJSON(t, w, &convertResp)

	want := "## Oct 3- Oct 10\n\n- 5 Sections CSE101\n\n- 10 emails\n\n- 2 Pitch Competitions"
	if convertResp.FormattedMarkdown != want {
		t.Fatalf("Step 3 - Unexpected formatted markdown:\n%q\nwant\n%q", convertResp.FormattedMarkdown, want)
	}
	t.Logf("Step 3 - Formatted %d bytes", len(convertResp.FormattedMarkdown))

	// Step 4: normalizing again is a no-op
	req = testutil.MakeRequest("POST", "/api/normalize", map[string]string{"markdown": convertResp.FormattedMarkdown}, nil)
	w = httptest.NewRecorder()
	normalizeHandler.Normalize(w, req)

	var normResp models.NormalizeResponse
	testutil.AssertJSON(t, w, &normResp)
	if normResp.Markdown != convertResp.FormattedMarkdown {
		t.Errorf("Step 4 - Expected stable output, got %q", normResp.Markdown)
	}
	if !normResp.Structured {
		t.Error("Step 4 - Expected formatted markdown to be structured")
	}

	// Step 5: PDF
	req = testutil.MakeRequest("POST", "/api/render", models.RenderRequest{
		Markdown: convertResp.FormattedMarkdown,
		View:     "pdf",
	}, nil)
	w = httptest.NewRecorder()
	renderHandler.Render(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Step 5 - Expected a PDF document")
	}
}
