package paypal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPayoutTestClient(t *testing.T, handler http.HandlerFunc, note, subject string) *Client {
	t.Helper()
	srv := newTestServer(t, handler)
	client, err := NewClient(zap.NewNop(), Config{
		ClientID:           "test-client-id",
		ClientSecret:       "test-client-secret",
		Mode:               ModeSandbox,
		BaseURL:            srv.URL,
		PayoutNote:         note,
		PayoutEmailSubject: subject,
	})
	require.NoError(t, err)
	return client
}

func TestPayouts_Create_InjectsBatchHeaderDefaults(t *testing.T) {
	var gotBody map[string]any
	client := newPayoutTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"batch_header":{"payout_batch_id":"B1","batch_status":"PENDING"}}`))
	}, "default note", "default subject")

	body := map[string]any{
		"sender_batch_header": map[string]any{"sender_batch_id": "batch-7"},
		"items":               []any{},
	}
	result, err := client.Payouts.Create(context.Background(), body, "payout-1")
	require.NoError(t, err)

	header := gotBody["sender_batch_header"].(map[string]any)
	assert.Equal(t, "batch-7", header["sender_batch_id"])
	assert.Equal(t, "default note", header["note"])
	assert.Equal(t, "default subject", header["email_subject"])

	batch := result["batch_header"].(map[string]any)
	assert.Equal(t, "B1", batch["payout_batch_id"])

	// The caller's map is untouched.
	original := body["sender_batch_header"].(map[string]any)
	_, hasNote := original["note"]
	assert.False(t, hasNote)
}

func TestPayouts_Create_CallerHeaderWins(t *testing.T) {
	var gotBody map[string]any
	client := newPayoutTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}, "default note", "default subject")

	body := map[string]any{
		"sender_batch_header": map[string]any{
			"sender_batch_id": "batch-8",
			"note":            "custom note",
		},
	}
	_, err := client.Payouts.Create(context.Background(), body, "")
	require.NoError(t, err)

	header := gotBody["sender_batch_header"].(map[string]any)
	assert.Equal(t, "custom note", header["note"])
	assert.Equal(t, "default subject", header["email_subject"])
}

func TestPayouts_CreateItems(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"batch_header":{"payout_batch_id":"B2"}}`))
	})

	items := []PayoutItem{
		{
			RecipientType: "EMAIL",
			Amount:        NewMoney("USD", decimal.NewFromFloat(12.5)),
			Receiver:      "payee@example.com",
			SenderItemID:  "item-1",
		},
	}
	_, err := client.Payouts.CreateItems(context.Background(), "batch-9", items, "")
	require.NoError(t, err)

	header := gotBody["sender_batch_header"].(map[string]any)
	assert.Equal(t, "batch-9", header["sender_batch_id"])

	sent := gotBody["items"].([]any)[0].(map[string]any)
	amount := sent["amount"].(map[string]any)
	assert.Equal(t, "12.50", amount["value"], "decimal amounts render with two fractional digits")
	assert.Equal(t, "USD", amount["currency_code"])
}

func TestPayouts_ShowBatchAndItems(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"batch_header":{"payout_batch_id":"B3"}}`))
	})

	ctx := context.Background()
	_, err := client.Payouts.ShowBatch(ctx, "B3", url.Values{"page_size": {"10"}})
	require.NoError(t, err)
	_, err = client.Payouts.ShowItem(ctx, "I3")
	require.NoError(t, err)
	_, err = client.Payouts.CancelItem(ctx, "I3")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /v1/payments/payouts/B3",
		"GET /v1/payments/payouts-item/I3",
		"POST /v1/payments/payouts-item/I3/cancel",
	}, calls)
}
