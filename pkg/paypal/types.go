package paypal

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// requestIDHeader carries the idempotency key for mutating money operations.
const requestIDHeader = "PayPal-Request-Id"

// Money is a currency amount in PayPal's wire shape. Value is a fixed-point
// string, never a float.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// NewMoney renders a decimal amount with two fractional digits.
func NewMoney(currencyCode string, amount decimal.Decimal) Money {
	return Money{
		CurrencyCode: currencyCode,
		Value:        amount.StringFixed(2),
	}
}

// PayoutItem is one recipient entry of a payout batch.
type PayoutItem struct {
	RecipientType string `json:"recipient_type"`
	Amount        Money  `json:"amount"`
	Receiver      string `json:"receiver"`
	Note          string `json:"note,omitempty"`
	SenderItemID  string `json:"sender_item_id,omitempty"`
}

// idempotencyHeaders returns headers carrying the request id, generating a
// UUID when the caller passed none. At-most-once semantics for retried
// mutating calls depend on this header being stable across the retry, so
// callers wanting that must supply their own id.
func idempotencyHeaders(requestID string) map[string]string {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return map[string]string{requestIDHeader: requestID}
}
