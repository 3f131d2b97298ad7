package paypal

import "context"

// OrdersService drives the v2 checkout orders endpoints.
type OrdersService struct {
	client *Client
}

// Create creates an order.
// POST /v2/checkout/orders
func (s *OrdersService) Create(ctx context.Context, body any, requestID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v2/checkout/orders", body, idempotencyHeaders(requestID))
}

// Show retrieves an order by id.
// GET /v2/checkout/orders/{id}
func (s *OrdersService) Show(ctx context.Context, orderID string) (map[string]any, error) {
	return s.client.Get(ctx, "/v2/checkout/orders/"+orderID, nil, nil)
}

// Capture captures payment for an approved order.
// POST /v2/checkout/orders/{id}/capture
func (s *OrdersService) Capture(ctx context.Context, orderID string, body any, requestID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v2/checkout/orders/"+orderID+"/capture", body, idempotencyHeaders(requestID))
}

// Authorize places an authorization on an approved order.
// POST /v2/checkout/orders/{id}/authorize
func (s *OrdersService) Authorize(ctx context.Context, orderID string, body any, requestID string) (map[string]any, error) {
	return s.client.Post(ctx, "/v2/checkout/orders/"+orderID+"/authorize", body, idempotencyHeaders(requestID))
}

// Update applies a JSON-Patch array to an order.
// PATCH /v2/checkout/orders/{id}
func (s *OrdersService) Update(ctx context.Context, orderID string, patches []any) (map[string]any, error) {
	return s.client.Patch(ctx, "/v2/checkout/orders/"+orderID, patches, nil)
}
