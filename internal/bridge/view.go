package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/pdfbridge/pkg/decode"
)

// View binds a Bridge to the native view that calls are addressed to.
// It is the single place where handle liveness is checked: every gateway and
// entity holds a *View and never resolves the handle on its own.
type View struct {
	bridge   Bridge
	resolver Resolver
	events   EventSource
}

// NewView creates a View. events may be nil when the transport does not push events.
func NewView(b Bridge, r Resolver, events EventSource) *View {
	return &View{
		bridge:   b,
		resolver: r,
		events:   events,
	}
}

// Tag resolves the native handle.
func (v *View) Tag() (Tag, bool) {
	if v == nil || v.resolver == nil || v.bridge == nil {
		return 0, false
	}
	return v.resolver.Resolve()
}

// Live reports whether calls through this view can currently be issued.
func (v *View) Live() bool {
	_, ok := v.Tag()
	return ok
}

// Call resolves the handle and issues method through the bridge.
// It fails with ErrNoNativeReference, without calling the bridge, when the
// handle is unavailable. Native rejections are returned unmodified.
func (v *View) Call(ctx context.Context, method string, args ...any) (json.RawMessage, error) {
	tag, ok := v.Tag()
	if !ok {
		return nil, ErrNoNativeReference
	}
	return v.bridge.Call(ctx, method, tag, args...)
}

// Exec issues a call whose result is ignored.
func (v *View) Exec(ctx context.Context, method string, args ...any) error {
	_, err := v.Call(ctx, method, args...)
	return err
}

// Subscribe registers fn for events named name that target this view.
// Events addressed to other views are filtered out. Without an event source
// the subscription is inert.
func (v *View) Subscribe(name string, fn func(Event)) (cancel func()) {
	if v == nil || v.events == nil {
		return func() {}
	}
	return v.events.Subscribe(name, func(e Event) {
		if tag, ok := v.Tag(); ok && tag == e.Tag {
			fn(e)
		}
	})
}

// Invoke issues method and decodes its result into T.
func Invoke[T any](ctx context.Context, v *View, method string, args ...any) (T, error) {
	var zero T
	raw, err := v.Call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	result, err := decode.Raw[T](raw)
	if err != nil {
		return zero, fmt.Errorf("decode %s result: %w", method, err)
	}
	return result, nil
}
