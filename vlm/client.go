// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vlm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 120 * time.Second
	maxResponse    = 32 << 20
	snippetLen     = 200
)

// Config for the conversion service client.
type Config struct {
	URL     string        // full endpoint URL
	Token   string        // sent as a bearer token
	Timeout time.Duration // per request
}

// Image is an upload to convert.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result is what the service returned for one image. Times are in seconds
// and nil when the service did not report them.
type Result struct {
	Markdown       string
	ProcessingTime *float64
	ConversionTime *float64
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type convertRequest struct {
	Image string `json:"image"`
}

// DataURL encodes data as a base64 data URL. An empty content type is
// sniffed from the bytes.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Convert sends img to the service and returns its Markdown.
func (c *Client) Convert(ctx context.Context, img Image) (*Result, error) {
	if c.cfg.URL == "" {
		return nil, ErrNoServiceURL
	}
	if len(img.Data) == 0 {
		return nil, ErrEmptyImage
	}

	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(convertRequest{Image: DataURL(img.ContentType, img.Data)})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	c.logger.Info("vlm.request",
		"req_id", reqID,
		"file", img.Name,
		"content_type", img.ContentType,
		"payload_bytes", len(body),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("vlm.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Info("vlm.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return parseResponse(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
}

func parseResponse(status int, contentType string, raw []byte) (*Result, error) {
	if !isJSON(contentType) {
		return nil, &NotJSONError{
			StatusCode:  status,
			ContentType: contentType,
			Snippet:     snippet(raw),
		}
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		if status/100 != 2 {
			return nil, &StatusError{StatusCode: status, Message: DefaultFailureMessage}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	obj, _ := payload.(map[string]any)

	if status/100 != 2 {
		msg := stringField(obj, "error")
		if msg == "" {
			msg = DefaultFailureMessage
		}
		return nil, &StatusError{StatusCode: status, Message: msg}
	}

	res := &Result{
		Markdown:       extractMarkdown(payload),
		ProcessingTime: numberField(obj, "processing_time"),
		ConversionTime: numberField(obj, "conversion_time"),
	}

	// The service reports its own failures inside a 200 body.
	if failed, ok := obj["success"].(bool); ok && !failed {
		return nil, &StatusError{StatusCode: http.StatusBadGateway, Message: failureMessage(obj)}
	}
	if res.Markdown == "" && stringField(obj, "error") != "" {
		return nil, &StatusError{StatusCode: http.StatusBadGateway, Message: failureMessage(obj)}
	}

	return res, nil
}

// extractMarkdown looks for the text under the keys the service has used
// over time.
func extractMarkdown(payload any) string {
	if s, ok := payload.(string); ok {
		return s
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	if s := firstString(obj, "markdown", "text", "content"); s != "" {
		return s
	}
	if nested, ok := obj["result"].(map[string]any); ok {
		return firstString(nested, "markdown", "text", "content")
	}
	return ""
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(obj, k); s != "" {
			return s
		}
	}
	return ""
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func numberField(obj map[string]any, key string) *float64 {
	f, ok := obj[key].(float64)
	if !ok {
		return nil
	}
	return &f
}

func failureMessage(obj map[string]any) string {
	if msg := stringField(obj, "error"); msg != "" {
		return msg
	}
	return DefaultFailureMessage
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func snippet(raw []byte) string {
	if len(raw) > snippetLen {
		return string(raw[:snippetLen]) + "..."
	}
	return string(raw)
}
