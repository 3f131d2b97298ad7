package paypal

import "context"

// PaymentsService drives the v2 payments endpoints (captures and
// authorizations created through the orders flow).
type PaymentsService struct {
	client *Client
}

// RefundCapture refunds a captured payment, fully or partially.
// POST /v2/payments/captures/{id}/refund
func (s *PaymentsService) RefundCapture(ctx context.Context, captureID string, body any, requestID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v2/payments/captures/"+captureID+"/refund", body, idempotencyHeaders(requestID))
}

// ShowCapture retrieves a capture by id.
// GET /v2/payments/captures/{id}
func (s *PaymentsService) ShowCapture(ctx context.Context, captureID string) (map[string]any, error) {
	return s.client.Get(ctx, "/v2/payments/captures/"+captureID, nil, nil)
}

// ShowAuthorization retrieves an authorization by id.
// GET /v2/payments/authorizations/{id}
func (s *PaymentsService) ShowAuthorization(ctx context.Context, authorizationID string) (map[string]any, error) {
	return s.client.Get(ctx, "/v2/payments/authorizations/"+authorizationID, nil, nil)
}

// VoidAuthorization voids an authorization. PayPal answers 204 on success,
// which surfaces as an empty mapping.
// POST /v2/payments/authorizations/{id}/void
func (s *PaymentsService) VoidAuthorization(ctx context.Context, authorizationID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v2/payments/authorizations/"+authorizationID+"/void", nil, nil)
}

// CaptureAuthorization captures a previously authorized payment.
// POST /v2/payments/authorizations/{id}/capture
func (s *PaymentsService) CaptureAuthorization(ctx context.Context, authorizationID string, body any, requestID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v2/payments/authorizations/"+authorizationID+"/capture", body, idempotencyHeaders(requestID))
}
