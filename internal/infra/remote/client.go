// Package remote is the HTTP client of the remote data service. It
// implements the territory, location and reference-layer repositories.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	deliverycontext "terrimap/internal/delivery/context"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/errors"
	"terrimap/internal/infra/metrics"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
	// maxPages bounds pagination following on list endpoints.
	maxPages = 100
)

// Config configures the remote data service client.
type Config struct {
	BaseURL           string        `json:"baseUrl" yaml:"baseUrl"`
	Token             string        `json:"token" yaml:"token"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int           `json:"burst" yaml:"burst"`
}

// Client talks to the remote data service over HTTP.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client. A non-positive RequestsPerSecond disables throttling.
func NewClient(logger *slog.Logger, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		logger:  logger.With(slog.String("component", "remote")),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// do sends one request and decodes a 2xx JSON answer into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "remote rate limiter")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteRequestDurationMs.WithLabelValues(method, "error").Observe(float64(time.Since(start).Milliseconds()))
		c.logger.Warn("Remote request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return errors.Wrap(domainerrors.ErrRemoteUnavailable.WithDetails(err.Error()), method+" "+path)
	}
	defer resp.Body.Close()
	metrics.RemoteRequestDurationMs.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return errors.WithStack(domainerrors.NewRemoteStatusError(resp.StatusCode, method, path, string(raw)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(domainerrors.ErrRemoteUnavailable.WithDetails(err.Error()), "read body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}

	return nil
}

// list follows the optional pagination envelope and gathers every record of a
// collection endpoint as features.
func (c *Client) list(ctx context.Context, path string) ([]*feature, error) {
	var features []*feature

	page := 1
	for range maxPages {
		var query url.Values
		if page > 1 {
			query = url.Values{"page": {strconv.Itoa(page)}}
		}

		var payload listPayload
		if err := c.do(ctx, http.MethodGet, path, query, nil, &payload); err != nil {
			return nil, err
		}
		features = append(features, payload.features...)

		if payload.pagination == nil || !payload.pagination.hasNext(page) {
			return features, nil
		}
		page++
	}

	c.logger.Warn("Pagination limit reached", slog.String("path", path), slog.Int("pages", maxPages))

	return features, nil
}
