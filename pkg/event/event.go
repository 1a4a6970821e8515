package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the notification shape published on the device events topic.
// It mirrors the upstream event-grid schema: id, type, source, time plus an
// open-ended data payload whose shape depends on the consumer.
type Envelope struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Source string          `json:"source"`
	Time   string          `json:"time"`
	Data   json.RawMessage `json:"data,omitempty"`
}

var jsonNull = []byte("null")

// HasData reports whether the envelope carries a payload. Events without a
// payload are acknowledged without producing any record.
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0 && !bytes.Equal(e.Data, jsonNull)
}

// Parse decodes a raw kafka message value into an envelope.
func Parse(value []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return &env, nil
}
