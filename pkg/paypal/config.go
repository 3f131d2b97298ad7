package paypal

import (
	"fmt"
	"strings"
)

// Mode selects the PayPal environment a client talks to.
type Mode string

const (
	ModeSandbox Mode = "sandbox"
	ModeLive    Mode = "live"
)

const (
	sandboxBaseURL = "https://api.sandbox.paypal.com"
	liveBaseURL    = "https://api.paypal.com"
)

// Config holds the static credential set and defaults for one client
// instance. Each client owns its own snapshot; there is no process-wide
// mutable configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	Mode         Mode

	// BaseURL overrides the environment URL derived from Mode. Used by
	// tests pointing at a local server; leave empty in production.
	BaseURL string

	// WebhookID identifies the webhook subscription used by signature
	// verification.
	WebhookID string

	// PayoutNote and PayoutEmailSubject are injected into payout batch
	// headers when the caller leaves them blank.
	PayoutNote         string
	PayoutEmailSubject string
}

// validate checks the credential set before any network activity.
func (c *Config) validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return &APIError{Kind: KindConfiguration, Message: "client id is required"}
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return &APIError{Kind: KindConfiguration, Message: "client secret is required"}
	}
	switch c.Mode {
	case ModeSandbox, ModeLive:
	default:
		return &APIError{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("mode must be %q or %q, got %q", ModeSandbox, ModeLive, c.Mode),
		}
	}
	return nil
}

// baseURL resolves the effective API root for this configuration.
func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	if c.Mode == ModeLive {
		return liveBaseURL
	}
	return sandboxBaseURL
}
