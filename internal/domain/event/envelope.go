package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire format published to the broker.
type Envelope struct {
	EventID      uuid.UUID       `json:"event_id"`
	EventType    Type            `json:"event_type"`
	EventVersion int             `json:"event_version"`
	AggregateID  uuid.UUID       `json:"aggregate_id"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}
