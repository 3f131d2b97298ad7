package relay

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the canonical envelope republished for every verified webhook
// delivery.
type Event struct {
	ID            string          `json:"id"`
	EventType     string          `json:"event_type"`
	ResourceType  string          `json:"resource_type,omitempty"`
	CorrelationID uuid.UUID       `json:"correlation_id"`
	ReceivedAt    time.Time       `json:"received_at"`
	Payload       json.RawMessage `json:"payload"`
}

// newEvent builds an envelope from a raw verified delivery. Returns false
// when the delivery lacks an event id.
func newEvent(body []byte) (Event, bool) {
	var fields struct {
		ID           string `json:"id"`
		EventType    string `json:"event_type"`
		ResourceType string `json:"resource_type"`
	}
	if err := json.Unmarshal(body, &fields); err != nil || fields.ID == "" {
		return Event{}, false
	}
	return Event{
		ID:            fields.ID,
		EventType:     fields.EventType,
		ResourceType:  fields.ResourceType,
		CorrelationID: uuid.New(),
		ReceivedAt:    time.Now().UTC(),
		Payload:       json.RawMessage(body),
	}, true
}
