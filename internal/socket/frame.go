package socket

import (
	"encoding/json"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
)

type request struct {
	ID     string     `json:"id"`
	Method string     `json:"method"`
	Tag    bridge.Tag `json:"tag"`
	Args   []any      `json:"args"`
}

// frame is any message sent by the native host: a response when ID is set,
// an event when Event is set.
type frame struct {
	ID     string          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *string         `json:"error,omitempty"`

	Event string         `json:"event,omitempty"`
	Tag   bridge.Tag     `json:"tag"`
	Data  map[string]any `json:"data,omitempty"`
}

type response struct {
	result json.RawMessage
	err    error
}

type pending struct {
	method string
	ch     chan response
}
