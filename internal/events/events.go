package events

import (
	"encoding/json"
	"time"
)

// Event types pushed to open dashboards.
const (
	TypePing           = "ping"
	TypeConfigReloaded = "config_reloaded"
	TypeExport         = "export_created"
)

// Event is the envelope every SSE message carries.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent encodes an envelope. Marshal errors drop the payload, not the event.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
