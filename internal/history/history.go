// Package history exposes the native undo stacks of a document view.
//
// Annotation edits and content edits keep independent stacks. A Manager is a
// passive cache of the depth signal the native side pushes after every change;
// the stacks themselves live natively.
package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/pkg/decode"
)

// Domain names a native undo stack and the bridge endpoints that drive it.
type Domain struct {
	Name    string
	CanUndo string
	CanRedo string
	Undo    string
	Redo    string
	Event   string
}

// Supported domains.
var (
	Annotations = Domain{
		Name:    "annotations",
		CanUndo: "annotationCanUndo",
		CanRedo: "annotationCanRedo",
		Undo:    "annotationUndo",
		Redo:    "annotationRedo",
		Event:   bridge.EventAnnotationHistory,
	}

	ContentEditor = Domain{
		Name:    "content_editor",
		CanUndo: "editorCanUndo",
		CanRedo: "editorCanRedo",
		Undo:    "editorUndo",
		Redo:    "editorRedo",
		Event:   bridge.EventContentEditorHistory,
	}
)

// State is the last undo/redo availability reported by the native side.
type State struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// Manager proxies one undo stack.
type Manager struct {
	domain Domain
	view   *bridge.View
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
	cancel    func()
}

// New creates a Manager for domain and starts listening for its state events.
func New(domain Domain, view *bridge.View, logger *slog.Logger) *Manager {
	m := &Manager{
		domain:    domain,
		view:      view,
		logger:    logger.With("system", "history", "domain", domain.Name),
		listeners: make(map[int]func(State)),
	}
	m.cancel = view.Subscribe(domain.Event, m.handleEvent)
	return m
}

// CanUndo queries the native stack. Any failure reports false.
func (m *Manager) CanUndo(ctx context.Context) bool {
	return m.query(ctx, m.domain.CanUndo)
}

// CanRedo queries the native stack. Any failure reports false.
func (m *Manager) CanRedo(ctx context.Context) bool {
	return m.query(ctx, m.domain.CanRedo)
}

// Undo reverts the most recent change.
func (m *Manager) Undo(ctx context.Context) error {
	return m.view.Exec(ctx, m.domain.Undo)
}

// Redo reapplies the most recently reverted change.
func (m *Manager) Redo(ctx context.Context) error {
	return m.view.Exec(ctx, m.domain.Redo)
}

// State returns the cached availability from the last native event.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnStateChanged registers fn to run after each native state event.
func (m *Manager) OnStateChanged(fn func(State)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Close stops listening for native events.
func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Manager) query(ctx context.Context, method string) bool {
	ok, err := bridge.Invoke[bool](ctx, m.view, method)
	if err != nil {
		m.logger.Warn("history query failed", "method", method, "error", err)
		return false
	}
	return ok
}

func (m *Manager) handleEvent(e bridge.Event) {
	state, err := decode.FromMap[State](e.Data)
	if err != nil {
		m.logger.Warn("malformed history event", "event", e.Name, "error", err)
		return
	}

	m.mu.Lock()
	m.state = state
	listeners := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
