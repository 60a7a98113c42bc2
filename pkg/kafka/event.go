package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicPrefix is prepended to every storefront topic.
const TopicPrefix = "ecommerce"

// Topic builds a topic name, e.g.
// Topic("storefront.cart", "updated") is "ecommerce.storefront.cart.updated".
func Topic(domain, action string) string {
	return fmt.Sprintf("%s.%s.%s", TopicPrefix, domain, action)
}

// Event carries a full state snapshot. Consumers keep, per Key and
// Aggregate, the event with the highest Sequence and ignore older ones.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	Aggregate  string          `json:"aggregate"`
	Source     string          `json:"source"`
	Sequence   uint64          `json:"sequence"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent wraps snapshot as the seq-th event for key.
func NewEvent(eventType, key, aggregate, source string, seq uint64, snapshot any) (*Event, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal %s snapshot: %w", eventType, err)
	}
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		Aggregate:  aggregate,
		Source:     source,
		Sequence:   seq,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// Supersedes reports whether e replaces prev for the same key and aggregate.
// A nil prev is always superseded.
func (e *Event) Supersedes(prev *Event) bool {
	if prev == nil {
		return true
	}
	return e.Key == prev.Key && e.Aggregate == prev.Aggregate && e.Sequence > prev.Sequence
}

// Marshal encodes the envelope.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalData decodes the snapshot into target.
func (e *Event) UnmarshalData(target any) error {
	return json.Unmarshal(e.Data, target)
}
