package paypal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	tokenPath = "/v1/oauth2/token"
	// tokenFetchTimeout bounds the client-credentials exchange.
	tokenFetchTimeout = 10 * time.Second
	// tokenExpiryMargin is subtracted from the advertised lifetime so a
	// token never expires mid-flight.
	tokenExpiryMargin = 5 * time.Minute
)

// tokenResponse is the success body of the oauth2 token endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenManager fetches and caches the OAuth2 client-credentials token for
// one credential set. The cached token is refetched synchronously once its
// margin-adjusted expiry passes. Safe for concurrent use; overlapping
// callers serialize on the mutex, so at most one fetch is in flight.
type TokenManager struct {
	logger       *zap.Logger
	client       *http.Client
	baseURL      string
	clientID     string
	clientSecret string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewTokenManager creates a TokenManager for the given configuration.
func NewTokenManager(logger *zap.Logger, cfg *Config) *TokenManager {
	return &TokenManager{
		logger:       logger,
		client:       &http.Client{Timeout: tokenFetchTimeout},
		baseURL:      cfg.baseURL(),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// EnsureToken returns a bearer token valid for immediate use, fetching a new
// one when none is held or the cached one has expired. Failures carry
// KindAuthentication and are never retried here.
func (m *TokenManager) EnsureToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accessToken != "" && time.Now().Before(m.expiresAt) {
		return m.accessToken, nil
	}

	tok, err := m.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	m.accessToken = tok.AccessToken
	m.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)

	m.logger.Debug("paypal.auth.token_refreshed",
		zap.Int64("expires_in_sec", tok.ExpiresIn))

	return m.accessToken, nil
}

// fetchToken performs the client-credentials exchange.
func (m *TokenManager) fetchToken(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &APIError{Kind: KindAuthentication, Message: "build token request: " + err.Error()}
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warn("paypal.auth.token_fetch_failed", zap.Error(err))
		return nil, &APIError{Kind: KindAuthentication, Message: "token request failed: " + err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, _ := io.ReadAll(resp.Body)

	var parsed map[string]any
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.logger.Warn("paypal.auth.token_rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &APIError{
			Kind:    KindAuthentication,
			Status:  resp.StatusCode,
			Message: errorMessage(parsed),
			Body:    parsed,
			DebugID: resp.Header.Get(debugIDHeader),
		}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &APIError{
			Kind:    KindAuthentication,
			Status:  resp.StatusCode,
			Message: "malformed token response: " + err.Error(),
			Body:    parsed,
		}
	}
	if tok.AccessToken == "" {
		return nil, &APIError{
			Kind:    KindAuthentication,
			Status:  resp.StatusCode,
			Message: "token response missing access_token",
			Body:    parsed,
		}
	}

	return &tok, nil
}

// expireNow drops the cached token. Test hook.
func (m *TokenManager) expireNow() {
	m.mu.Lock()
	m.expiresAt = time.Time{}
	m.mu.Unlock()
}
