package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Transmission header names on incoming webhook deliveries.
const (
	HeaderAuthAlgo         = "Paypal-Auth-Algo"
	HeaderCertURL          = "Paypal-Cert-Url"
	HeaderTransmissionID   = "Paypal-Transmission-Id"
	HeaderTransmissionSig  = "Paypal-Transmission-Sig"
	HeaderTransmissionTime = "Paypal-Transmission-Time"
)

// WebhookHeaders carries the signature material PayPal attaches to every
// webhook delivery.
type WebhookHeaders struct {
	AuthAlgo         string
	CertURL          string
	TransmissionID   string
	TransmissionSig  string
	TransmissionTime string
}

// WebhookHeadersFromHTTP extracts the transmission headers from an incoming
// request header set.
func WebhookHeadersFromHTTP(h http.Header) WebhookHeaders {
	return WebhookHeaders{
		AuthAlgo:         h.Get(HeaderAuthAlgo),
		CertURL:          h.Get(HeaderCertURL),
		TransmissionID:   h.Get(HeaderTransmissionID),
		TransmissionSig:  h.Get(HeaderTransmissionSig),
		TransmissionTime: h.Get(HeaderTransmissionTime),
	}
}

func (h WebhookHeaders) complete() bool {
	for _, v := range []string{h.AuthAlgo, h.CertURL, h.TransmissionID, h.TransmissionSig, h.TransmissionTime} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// WebhookVerifier checks webhook delivery signatures against PayPal's
// verification endpoint. Every failure it raises carries
// KindWebhookVerification, so callers handle exactly one error category.
type WebhookVerifier struct {
	client    *Client
	webhookID string
}

// VerifySignature reports whether a webhook delivery is authentic.
//
// A malformed event body fails before any network call. Missing or blank
// transmission headers return false without a network call and without an
// error; that delivery simply cannot be verified. A remote answer other
// than SUCCESS is likewise a clean false.
func (v *WebhookVerifier) VerifySignature(ctx context.Context, headers WebhookHeaders, eventBody []byte) (bool, error) {
	var event map[string]any
	if err := json.Unmarshal(eventBody, &event); err != nil {
		return false, &APIError{
			Kind:    KindWebhookVerification,
			Message: "malformed webhook event body: " + err.Error(),
		}
	}

	if !headers.complete() {
		return false, nil
	}

	body := map[string]any{
		"auth_algo":         headers.AuthAlgo,
		"cert_url":          headers.CertURL,
		"transmission_id":   headers.TransmissionID,
		"transmission_sig":  headers.TransmissionSig,
		"transmission_time": headers.TransmissionTime,
		"webhook_id":        v.webhookID,
		"webhook_event":     event,
	}

	resp, err := v.client.Post(ctx, "/v1/notifications/verify-webhook-signature", body, nil)
	if err != nil {
		return false, v.normalize(err)
	}

	status, _ := resp["verification_status"].(string)
	return status == "SUCCESS", nil
}

// normalize folds any upstream failure into the verification error kind.
func (v *WebhookVerifier) normalize(err error) error {
	if apiErr, ok := AsAPIError(err); ok {
		return &APIError{
			Kind:    KindWebhookVerification,
			Status:  apiErr.Status,
			Message: apiErr.Message,
			Body:    apiErr.Body,
			DebugID: apiErr.DebugID,
		}
	}
	return &APIError{Kind: KindWebhookVerification, Message: err.Error()}
}
