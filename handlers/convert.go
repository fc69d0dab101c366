// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/board2md/cliparse"
	"github.com/danielhkuo/board2md/imageprep"
	"github.com/danielhkuo/board2md/markdown"
	"github.com/danielhkuo/board2md/middleware"
	"github.com/danielhkuo/board2md/models"
	"github.com/danielhkuo/board2md/vlm"
)

// multipartMemory is how much of a parsed form is kept in memory
const multipartMemory = 32 << 20

// Converter turns an image into Markdown. *vlm.Client implements it.
type Converter interface {
	Convert(ctx context.Context, img vlm.Image) (*vlm.Result, error)
}

type ConvertHandler struct {
	converter  Converter
	normalizer *markdown.Normalizer
	cfg        cliparse.Config
}

func NewConvertHandler(converter Converter, normalizer *markdown.Normalizer, cfg cliparse.Config) *ConvertHandler {
	if normalizer == nil {
		normalizer = markdown.NewNormalizer()
	}
	return &ConvertHandler{converter: converter, normalizer: normalizer, cfg: cfg}
}

// Convert handles POST /api/convert
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestID(r.Context())

	if h.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("upload too large", "request_id", reqID, "limit", humanize.IBytes(uint64(tooLarge.Limit)))
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read upload", "request_id", reqID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	fileType := header.Header.Get("Content-Type")
	slog.Info("file received",
		"request_id", reqID,
		"name", header.Filename,
		"size", humanize.Bytes(uint64(len(data))),
		"type", fileType,
	)

	img, err := h.prepare(reqID, header.Filename, fileType, data)
	if err != nil {
		slog.Warn("image rejected", "request_id", reqID, "name", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	ctx := r.Context()
	if h.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.RequestTimeout)
		defer cancel()
	}

	res, err := h.converter.Convert(ctx, img)
	if err != nil {
		status, message := convertError(err)
		slog.Error("conversion failed", "request_id", reqID, "status", status, "error", err)
		middleware.ErrorResponse(w, status, message)
		return
	}

	formatted := h.normalizer.Normalize(res.Markdown)
	slog.Info("conversion complete",
		"request_id", reqID,
		"markdown_bytes", len(res.Markdown),
		"formatted_bytes", len(formatted),
	)

	middleware.JSONResponse(w, http.StatusOK, models.ConvertResponse{
		Success:           true,
		Markdown:          res.Markdown,
		FormattedMarkdown: formatted,
		ProcessingTime:    res.ProcessingTime,
		FileName:          header.Filename,
		FileSize:          int64(len(data)),
		FileType:          fileType,
	})
}

// prepare builds the image to send, compressing it when enabled. Images that
// cannot be decoded go out unchanged; images over imageprep.MaxPixels are
// rejected with imageprep.ErrImageTooLarge.
func (h *ConvertHandler) prepare(reqID, name, contentType string, data []byte) (vlm.Image, error) {
	img := vlm.Image{Name: name, ContentType: contentType, Data: data}
	if !h.cfg.Compress || len(data) == 0 {
		return img, nil
	}

	f, err := imageprep.Compress(data, name)
	if errors.Is(err, imageprep.ErrImageTooLarge) {
		return vlm.Image{}, err
	}
	if err != nil {
		slog.Warn("compression skipped", "request_id", reqID, "name", name, "error", err)
		return img, nil
	}

	slog.Info("image compressed",
		"request_id", reqID,
		"from", humanize.Bytes(uint64(len(data))),
		"to", humanize.Bytes(uint64(len(f.Data))),
	)
	return vlm.Image{Name: f.Name, ContentType: f.ContentType, Data: f.Data}, nil
}

// convertError maps a conversion error to the status and message returned
// to the client.
func convertError(err error) (int, string) {
	var statusErr *vlm.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, statusErr.Message
	}

	var notJSON *vlm.NotJSONError
	if errors.As(err, &notJSON) {
		return http.StatusBadGateway, vlm.DefaultFailureMessage
	}

	if errors.Is(err, vlm.ErrEmptyImage) {
		return http.StatusBadRequest, "No file provided"
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return http.StatusGatewayTimeout, "Conversion timed out"
	}

	return http.StatusInternalServerError, "Internal server error"
}
