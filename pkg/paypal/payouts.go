package paypal

import (
	"context"
	"net/url"
)

// PayoutsService drives the v1 payouts endpoints. Failures on these paths
// get the payout-specific error kind, see errors.go.
type PayoutsService struct {
	client *Client
	cfg    *Config
}

// Create submits a payout batch. When the caller's sender_batch_header omits
// email_subject or note, the configured defaults are filled in.
// POST /v1/payments/payouts
func (s *PayoutsService) Create(ctx context.Context, body map[string]any, requestID string) (map[string]any, error) {
	body = s.withBatchHeaderDefaults(body)
	return s.client.Post(ctx, "/v1/payments/payouts", body, idempotencyHeaders(requestID))
}

// CreateItems is a convenience wrapper building the batch body from typed
// items and a sender batch id.
func (s *PayoutsService) CreateItems(ctx context.Context, senderBatchID string, items []PayoutItem, requestID string) (map[string]any, error) {
	body := map[string]any{
		"sender_batch_header": map[string]any{
			"sender_batch_id": senderBatchID,
		},
		"items": items,
	}
	return s.Create(ctx, body, requestID)
}

// ShowBatch retrieves a payout batch with its items. query carries
// pagination (page, page_size, total_required).
// GET /v1/payments/payouts/{batch_id}
func (s *PayoutsService) ShowBatch(ctx context.Context, batchID string, query url.Values) (map[string]any, error) {
	return s.client.Get(ctx, "/v1/payments/payouts/"+batchID, query, nil)
}

// ShowItem retrieves a single payout item.
// GET /v1/payments/payouts-item/{item_id}
func (s *PayoutsService) ShowItem(ctx context.Context, itemID string) (map[string]any, error) {
	return s.client.Get(ctx, "/v1/payments/payouts-item/"+itemID, nil, nil)
}

// CancelItem cancels an unclaimed payout item.
// POST /v1/payments/payouts-item/{item_id}/cancel
func (s *PayoutsService) CancelItem(ctx context.Context, itemID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v1/payments/payouts-item/"+itemID+"/cancel", nil, nil)
}

// withBatchHeaderDefaults copies body and fills the configured note and
// email subject into sender_batch_header when absent. The caller's map is
// never mutated.
func (s *PayoutsService) withBatchHeaderDefaults(body map[string]any) map[string]any {
	if s.cfg.PayoutNote == "" && s.cfg.PayoutEmailSubject == "" {
		return body
	}

	out := make(map[string]any, len(body)+1)
	for k, v := range body {
		out[k] = v
	}

	header := map[string]any{}
	if existing, ok := out["sender_batch_header"].(map[string]any); ok {
		for k, v := range existing {
			header[k] = v
		}
	}
	if _, ok := header["email_subject"]; !ok && s.cfg.PayoutEmailSubject != "" {
		header["email_subject"] = s.cfg.PayoutEmailSubject
	}
	if _, ok := header["note"]; !ok && s.cfg.PayoutNote != "" {
		header["note"] = s.cfg.PayoutNote
	}
	out["sender_batch_header"] = header
	return out
}
