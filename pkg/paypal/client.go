package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/lumapay/paypal-adapter/internal/metrics"
)

const (
	// requestTimeout bounds every resource call.
	requestTimeout = 15 * time.Second
	// debugIDHeader carries PayPal's correlation id for support diagnostics.
	debugIDHeader = "Paypal-Debug-Id"
)

// Client is the authenticated request pipeline every resource service rides
// on. It merges auth headers, serializes bodies, dispatches the call, and
// maps non-success responses into the error taxonomy. It performs no
// retries; resilience is the caller's concern.
type Client struct {
	logger *zap.Logger
	cfg    Config
	tokens *TokenManager
	http   *http.Client

	// Resource services, ready to use.
	Orders   *OrdersService
	Payments *PaymentsService
	Payouts  *PayoutsService
	Webhooks *WebhookVerifier
}

// NewClient validates cfg and constructs a client. No network activity
// happens here; the first authenticated call triggers the token fetch.
func NewClient(logger *zap.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		logger: logger,
		cfg:    cfg,
		tokens: NewTokenManager(logger, &cfg),
		http:   &http.Client{Timeout: requestTimeout},
	}
	c.Orders = &OrdersService{client: c}
	c.Payments = &PaymentsService{client: c}
	c.Payouts = &PayoutsService{client: c, cfg: &c.cfg}
	c.Webhooks = &WebhookVerifier{client: c, webhookID: cfg.WebhookID}
	return c, nil
}

// Get performs an authenticated GET. query and headers may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, headers)
}

// Post performs an authenticated POST with a JSON body. body may be nil.
func (c *Client) Post(ctx context.Context, path string, body any, headers map[string]string) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, headers)
}

// Patch performs an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, headers map[string]string) (map[string]any, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body, headers)
}

// Delete performs an authenticated DELETE. DELETE never sends a body.
func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) (map[string]any, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, headers)
}

// do runs one request through the pipeline. Success (2xx) returns the parsed
// body as a mapping, empty for bodyless responses. Every other outcome is an
// *APIError; a call never returns both a result and an error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string) (map[string]any, error) {
	token, err := c.tokens.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil && method != http.MethodGet && method != http.MethodDelete {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindGeneric, Message: "encode request body: " + err.Error()}
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.cfg.baseURL() + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, &APIError{Kind: KindGeneric, Message: "build request: " + err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		// Caller-supplied headers win on collision.
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("paypal.http_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		metrics.IncPayPalRequest(method, 0)
		return nil, &APIError{Kind: KindGeneric, Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, _ := io.ReadAll(resp.Body)
	elapsed := time.Since(start)

	metrics.IncPayPalRequest(method, resp.StatusCode)
	metrics.ObserveDuration(metrics.PayPalRequestDuration, start, method)

	// Empty or non-JSON bodies become an empty mapping; a 204 is still a
	// success with no payload.
	parsed := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = map[string]any{}
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		c.logger.Debug("paypal.http_success",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", elapsed))
		return parsed, nil
	}

	apiErr := newAPIError(resp.StatusCode, path, parsed, resp.Header.Get(debugIDHeader))
	c.logger.Warn("paypal.http_error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("kind", string(apiErr.Kind)),
		zap.String("debug_id", apiErr.DebugID),
		zap.String("body", string(raw)))
	return nil, apiErr
}
