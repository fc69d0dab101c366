// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/middleware"
	"github.com/danielhkuo/board2md/models"
)

type NormalizeHandler struct {
	normalizer *markdown.Normalizer
}

func NewNormalizeHandler(normalizer *markdown.Normalizer) *NormalizeHandler {
	if normalizer == nil {
		normalizer = markdown.NewNormalizer()
	}
	return &NormalizeHandler{normalizer: normalizer}
}

// Normalize handles POST /api/normalize
func (h *NormalizeHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req models.NormalizeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n := h.forRequest(req.ExpandLineBreaks, req.Heuristics)
	out := n.NormalizeValue(req.Markdown)

	middleware.JSONResponse(w, http.StatusOK, models.NormalizeResponse{
		Markdown:   out,
		Structured: markdown.HasStructure(out),
	})
}

// forRequest applies per-request overrides on top of the server settings.
func (h *NormalizeHandler) forRequest(expand, heuristics *bool) *markdown.Normalizer {
	var opts []markdown.Option
	if expand != nil {
		opts = append(opts, markdown.WithLineBreakExpansion(*expand))
	}
	if heuristics != nil {
		if *heuristics {
			if len(h.normalizer.Rules()) == 0 {
				opts = append(opts, markdown.WithRules(markdown.WhiteboardRules()))
			}
		} else {
			opts = append(opts, markdown.WithoutHeuristics())
		}
	}
	if len(opts) == 0 {
		return h.normalizer
	}
	return h.normalizer.With(opts...)
}
