package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hocvien-dev/timetable-console/pkg/config"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
	"github.com/hocvien-dev/timetable-console/pkg/metrics"
)

// TokenSource supplies the bearer token for each request and is told when
// the server no longer accepts it.
type TokenSource interface {
	Token() string
	Invalidate()
}

// MutationResult is the envelope every mutation endpoint answers with. The
// description is surfaced to the user verbatim on both outcomes.
type MutationResult struct {
	Success     bool   `json:"success"`
	Description string `json:"description"`
}

// Client is a typed client for the remote scheduling API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	metrics *metrics.Service
	logger  *zap.Logger
}

// NewClient builds a client against the configured base URL.
func NewClient(cfg config.APIConfig, tokens TokenSource, m *metrics.Service, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}
}

// do performs one JSON request/response round trip. endpoint is the logical
// (untemplated) name used for metrics labels; path carries the concrete ids.
func (c *Client) do(ctx context.Context, method, endpoint, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request payload")
		}
		reqBody = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.metrics.ObserveRequest(method, endpoint, 0, duration)
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.GenericMessage)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.ObserveRequest(method, endpoint, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
			c.tokens.Invalidate()
		}
		mapped := appErrors.FromStatus(resp.StatusCode)
		if desc := readDescription(resp.Body); desc != "" {
			mapped = appErrors.Clone(mapped, desc)
		}
		c.logger.Warn("api request rejected",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return mapped
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.GenericMessage)
	}
	return nil
}

// mutate performs a mutation call and decodes its envelope.
func (c *Client) mutate(ctx context.Context, method, endpoint, path string, body interface{}) (*MutationResult, error) {
	result := &MutationResult{}
	if err := c.do(ctx, method, endpoint, path, nil, body, result); err != nil {
		return nil, err
	}
	return result, nil
}

// readDescription pulls a server-supplied description out of an error body,
// if one is present.
func readDescription(r io.Reader) string {
	payload := struct {
		Description string `json:"description"`
		Message     string `json:"message"`
	}{}
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Description != "" {
		return payload.Description
	}
	return payload.Message
}

func pathEscape(segment string) string {
	return url.PathEscape(segment)
}

func intQuery(v int) string {
	return fmt.Sprintf("%d", v)
}
