// Package bridge defines the boundary between the typed object model and the
// native PDF engine. Every operation is a named remote procedure addressed to
// a native view by its Tag; results come back as raw JSON that the calling
// package reshapes into typed values.
package bridge

import (
	"context"
	"encoding/json"
	"time"
)

// Tag identifies a native view instance. The host UI framework owns the
// view's lifecycle; this layer only addresses calls to it.
type Tag int

// Bridge issues calls into the native engine.
// Call blocks until the native side responds. Two independent calls carry no
// ordering guarantee relative to each other.
type Bridge interface {
	Call(ctx context.Context, method string, tag Tag, args ...any) (json.RawMessage, error)
}

// Event is a push notification originating from the native view.
type Event struct {
	Name string         `json:"event"`
	Tag  Tag            `json:"tag"`
	Data map[string]any `json:"data,omitempty"`
}

// EventSource delivers native events to subscribers.
// The returned function removes the subscription; calling it more than once is safe.
type EventSource interface {
	Subscribe(name string, fn func(Event)) (cancel func())
}

// Native event names.
const (
	EventPageChanged           = "onPageChanged"
	EventSaveDocument          = "saveDocument"
	EventAnnotationHistory     = "onAnnotationHistoryChanged"
	EventContentEditorHistory  = "onContentEditorHistoryChanged"
	EventAnnotationsCreated    = "onAnnotationsCreated"
	EventAnnotationsSelected   = "onAnnotationsSelected"
	EventAnnotationsDeselected = "onAnnotationsDeselected"
)

type timeoutBridge struct {
	Bridge
	timeout time.Duration
}

// WithTimeout bounds every call through b to d. A non-positive d returns b unchanged.
func WithTimeout(b Bridge, d time.Duration) Bridge {
	if d <= 0 {
		return b
	}
	return &timeoutBridge{Bridge: b, timeout: d}
}

func (t *timeoutBridge) Call(ctx context.Context, method string, tag Tag, args ...any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Bridge.Call(ctx, method, tag, args...)
}
