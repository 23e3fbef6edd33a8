// Package bridgetest provides a scripted in-memory bridge for tests.
package bridgetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
)

// Call records a single bridge invocation.
type Call struct {
	Method string
	Tag    bridge.Tag
	Args   []any
}

// Handler produces the result for a scripted method.
// The result is JSON encoded unless it is already a json.RawMessage.
type Handler func(args []any) (any, error)

// Bridge implements bridge.Bridge and bridge.EventSource from scripted handlers.
// Unscripted methods fail with bridge.ErrUnsupportedMethod.
type Bridge struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
	subs     map[string]map[int]func(bridge.Event)
	nextSub  int
}

// New creates an empty scripted bridge.
func New() *Bridge {
	return &Bridge{
		handlers: make(map[string]Handler),
		subs:     make(map[string]map[int]func(bridge.Event)),
	}
}

// Handle scripts method with h.
func (b *Bridge) Handle(method string, h Handler) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method] = h
	return b
}

// Return scripts method to always succeed with v.
func (b *Bridge) Return(method string, v any) *Bridge {
	return b.Handle(method, func([]any) (any, error) { return v, nil })
}

// Fail scripts method to always reject with err.
func (b *Bridge) Fail(method string, err error) *Bridge {
	return b.Handle(method, func([]any) (any, error) { return nil, err })
}

// Call records the invocation and runs the scripted handler.
func (b *Bridge) Call(ctx context.Context, method string, tag bridge.Tag, args ...any) (json.RawMessage, error) {
	b.mu.Lock()
	b.calls = append(b.calls, Call{Method: method, Tag: tag, Args: args})
	h, ok := b.handlers[method]
	b.mu.Unlock()

	if !ok {
		return nil, bridge.Unsupported(method)
	}

	v, err := h(args)
	if err != nil {
		return nil, err
	}

	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}

// Calls returns the recorded invocations of method, or all invocations when method is empty.
func (b *Bridge) Calls(method string) []Call {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Call
	for _, c := range b.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Subscribe registers fn for events named name.
func (b *Bridge) Subscribe(name string, fn func(bridge.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	if b.subs[name] == nil {
		b.subs[name] = make(map[int]func(bridge.Event))
	}
	b.subs[name][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[name], id)
	}
}

// Emit delivers e synchronously to the current subscribers of e.Name.
func (b *Bridge) Emit(e bridge.Event) {
	b.mu.Lock()
	fns := make([]func(bridge.Event), 0, len(b.subs[e.Name]))
	for _, fn := range b.subs[e.Name] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// View returns a view over b addressed to tag, with b as its event source.
func (b *Bridge) View(tag bridge.Tag) *bridge.View {
	return bridge.NewView(b, bridge.Static(tag), b)
}
