// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/middleware"
	"github.com/danielhkuo/board2md/models"
	"github.com/danielhkuo/board2md/render"
)

type RenderHandler struct {
	normalizer *markdown.Normalizer
}

func NewRenderHandler(normalizer *markdown.Normalizer) *RenderHandler {
	if normalizer == nil {
		normalizer = markdown.NewNormalizer()
	}
	return &RenderHandler{normalizer: normalizer}
}

// Render handles POST /api/render
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req models.RenderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	renderer, err := render.ForView(req.View)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown view: "+req.View)
		return
	}

	text := req.Markdown
	if req.Normalize == nil || *req.Normalize {
		text = h.normalizer.Normalize(text)
	}

	body, err := renderer.Render(text)
	if err != nil {
		slog.Error("render failed",
			"request_id", middleware.RequestID(r.Context()),
			"view", req.View,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
