package paypal

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an API failure into a closed set of categories.
// Resource callers switch on Kind instead of parsing messages.
type Kind string

const (
	// KindConfiguration is raised at construction time, before any network activity.
	KindConfiguration Kind = "configuration"
	// KindAuthentication covers token-fetch failures and 401 responses.
	KindAuthentication Kind = "authentication"
	KindBadRequest     Kind = "bad_request"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindUnprocessable  Kind = "unprocessable_entity"
	KindServer         Kind = "server_error"
	// KindPayout covers payouts-domain failures, including validation errors
	// reclassified from bad_request.
	KindPayout  Kind = "payout"
	KindGeneric Kind = "generic"
	// KindWebhookVerification covers every failure raised by signature
	// verification, local or remote.
	KindWebhookVerification Kind = "webhook_verification"
)

// APIError is the single error type surfaced by the client. Status is zero
// for failures that never reached HTTP (configuration, transport, local
// webhook checks). Body holds the decoded response payload when one existed.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Body    map[string]any
	DebugID string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("paypal: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("paypal: %s: %s", e.Kind, e.Message)
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

// payoutsPathPrefix marks requests belonging to the payouts domain.
const payoutsPathPrefix = "/v1/payments/payouts"

// validationErrorName is the error name PayPal uses for payout validation
// failures. The string match mirrors upstream behavior and is kept as a
// compatibility detail.
const validationErrorName = "VALIDATION_ERROR"

// kindForStatus maps an HTTP status code to an error kind.
func kindForStatus(status int) Kind {
	switch {
	case status == 400:
		return KindBadRequest
	case status == 401:
		return KindAuthentication
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 422:
		return KindUnprocessable
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindGeneric
	}
}

// newAPIError builds the APIError for a non-success response. path feeds the
// payouts reclassification; body may be nil when the response carried none.
func newAPIError(status int, path string, body map[string]any, debugID string) *APIError {
	kind := kindForStatus(status)

	if strings.Contains(path, payoutsPathPrefix) {
		switch {
		case kind == KindGeneric:
			kind = KindPayout
		case kind == KindBadRequest && bodyString(body, "name") == validationErrorName:
			kind = KindPayout
		}
	}

	return &APIError{
		Kind:    kind,
		Status:  status,
		Message: errorMessage(body),
		Body:    body,
		DebugID: debugID,
	}
}

// errorMessage assembles a human-readable summary from the response body.
// PayPal uses two shapes: {"name": ..., "message": ..., "details": [...]}
// and legacy {"message": ...} bodies.
func errorMessage(body map[string]any) string {
	if len(body) == 0 {
		return "unknown error"
	}

	name := bodyString(body, "name")
	msg := bodyString(body, "message")

	var sb strings.Builder
	switch {
	case name != "" && msg != "":
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(msg)
	case msg != "":
		sb.WriteString(msg)
	case name != "":
		sb.WriteString(name)
	default:
		sb.WriteString("unknown error")
	}

	if details := detailSummaries(body); len(details) > 0 {
		sb.WriteString(" - ")
		sb.WriteString(strings.Join(details, "; "))
	}
	return sb.String()
}

// detailSummaries renders each entry of a "details" array as
// "field: issue (description)".
func detailSummaries(body map[string]any) []string {
	raw, ok := body["details"].([]any)
	if !ok {
		return nil
	}

	summaries := make([]string, 0, len(raw))
	for _, entry := range raw {
		detail, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		field := strings.TrimPrefix(bodyString(detail, "field"), "/")
		issue := bodyString(detail, "issue")
		desc := bodyString(detail, "description")

		if field == "" {
			field = issue
		}
		if field == "" {
			field = "general"
		}

		s := field
		if issue != "" && issue != field {
			s += ": " + issue
		}
		if desc != "" && desc != issue {
			s += " (" + desc + ")"
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func bodyString(body map[string]any, key string) string {
	if body == nil {
		return ""
	}
	s, _ := body[key].(string)
	return s
}
