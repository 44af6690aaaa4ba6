// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.BaseURL and configures the underlying resty client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.BaseURL cannot be parsed as a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &httpServerAdapter{client: cli, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "http://localhost:8000"
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SetUnauthorizedHandler implements [ServerAdapter].
func (h *httpServerAdapter) SetUnauthorizedHandler(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

// LoginGoogle implements [ServerAdapter]. On success the issued access token
// is installed via SetToken so subsequent calls are authenticated.
func (h *httpServerAdapter) LoginGoogle(ctx context.Context, req models.GoogleLoginRequest) (models.GoogleLoginResponse, error) {
	var out models.GoogleLoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/auth/google")
	if err = h.classify(resp, err); err != nil {
		return models.GoogleLoginResponse{}, fmt.Errorf("google login: %w", err)
	}

	h.SetToken(out.AccessToken)
	return out, nil
}

// ListConversations implements [ServerAdapter].
func (h *httpServerAdapter) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var out models.ConversationsResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/chat/conversations")
	if err = h.classify(resp, err); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return out.Conversations, nil
}

// GetConversation implements [ServerAdapter].
func (h *httpServerAdapter) GetConversation(ctx context.Context, id string) ([]models.Message, error) {
	var out models.HistoryResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/chat/conversations/" + url.PathEscape(id))
	if err = h.classify(resp, err); err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}

	return out.Messages, nil
}

// Generate implements [ServerAdapter].
func (h *httpServerAdapter) Generate(ctx context.Context, req models.GenerateRequest) (models.GenerateResponse, error) {
	var out models.GenerateResponse

	resp, err := h.authedRequest(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/chat/generate")
	if err = h.classify(resp, err); err != nil {
		return models.GenerateResponse{}, fmt.Errorf("generate: %w", err)
	}

	return out, nil
}

// DeleteConversation implements [ServerAdapter].
func (h *httpServerAdapter) DeleteConversation(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/chat/conversations/" + url.PathEscape(id))
	if err = h.classify(resp, err); err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}

	return nil
}

// GenerateCode implements [ServerAdapter].
func (h *httpServerAdapter) GenerateCode(ctx context.Context, req models.CodeRequest) (models.CodeResponse, error) {
	return h.postCode(ctx, "/api/code/generate", req)
}

// RefactorCode implements [ServerAdapter].
func (h *httpServerAdapter) RefactorCode(ctx context.Context, req models.CodeRequest) (models.CodeResponse, error) {
	return h.postCode(ctx, "/api/code/refactor", req)
}

// ExplainCode implements [ServerAdapter].
func (h *httpServerAdapter) ExplainCode(ctx context.Context, req models.CodeRequest) (models.CodeResponse, error) {
	return h.postCode(ctx, "/api/code/explain", req)
}

func (h *httpServerAdapter) postCode(ctx context.Context, path string, req models.CodeRequest) (models.CodeResponse, error) {
	var out models.CodeResponse

	resp, err := h.authedRequest(ctx).
		SetBody(req).
		SetResult(&out).
		Post(path)
	if err = h.classify(resp, err); err != nil {
		return models.CodeResponse{}, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// classify turns a resty result into one of the sentinel error classes. A
// transport-level err (no HTTP response) maps to ErrUnavailable; otherwise
// the status code decides. On 401 the unauthorized handler fires once.
func (h *httpServerAdapter) classify(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	mapped := mapHTTPError(resp)
	if mapped == nil {
		return nil
	}

	h.logger.Warn().Int("status", resp.StatusCode()).Str("path", resp.Request.URL).Msg("request failed")

	if errors.Is(mapped, ErrUnauthorized) {
		h.mu.RLock()
		fn := h.onUnauthorized
		h.mu.RUnlock()
		if fn != nil {
			fn()
		}
	}

	return mapped
}

// mapHTTPError converts a non-2xx response into an [APIError] carrying the
// server's detail text when one is present.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	detail := extractDetail(resp.Body())
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}

	var class error
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		class = ErrUnauthorized
	case resp.StatusCode() == http.StatusNotFound:
		class = ErrNotFound
	case resp.StatusCode() >= http.StatusInternalServerError:
		class = ErrServer
	case resp.StatusCode() >= http.StatusBadRequest:
		class = ErrBadRequest
	default:
		class = ErrServer
	}

	return &APIError{Status: resp.StatusCode(), Detail: detail, class: class}
}

// extractDetail pulls the "detail" field out of an error body. Falls back to
// the raw body for non-JSON responses.
func extractDetail(body []byte) string {
	var er models.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	return strings.TrimSpace(string(body))
}
