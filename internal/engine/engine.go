// Package engine is a local bridge that serves document-level methods with
// pdfcpu instead of a native view. It keeps one working copy per view tag in
// blob storage and answers everything it cannot serve with
// bridge.ErrUnsupportedMethod.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/storage"
)

var _ bridge.Bridge = (*Engine)(nil)

type handler func(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error)

var handlers = map[string]handler{
	"open":               open,
	"save":               save,
	"saveAs":             saveAs,
	"getFileName":        fileName,
	"getDocumentPath":    documentPath,
	"getPageCount":       pageCount,
	"getPageSize":        pageSize,
	"isEncrypted":        isEncrypted,
	"setPassword":        setPassword,
	"removePassword":     removePassword,
	"checkOwnerPassword": checkOwnerPassword,
	"getPageRotation":    pageRotation,
	"setPageRotation":    setPageRotation,
	"removePages":        removePages,
	"splitDocumentPages": splitDocumentPages,
	"hasChange":          hasChange,
}

// Methods lists the bridge methods the engine serves, sorted.
func Methods() []string {
	methods := make([]string, 0, len(handlers))
	for m := range handlers {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Engine implements bridge.Bridge on top of pdfcpu.
type Engine struct {
	store  storage.System
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[bridge.Tag]*session
}

// New creates an Engine that keeps working copies in store.
func New(store storage.System, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		logger:   logger.With("system", "engine"),
		sessions: make(map[bridge.Tag]*session),
	}
}

// Call serves method for the view identified by tag.
// Calls are serialized; pdfcpu transformations rewrite the whole file.
func (e *Engine) Call(ctx context.Context, method string, tag bridge.Tag, args ...any) (json.RawMessage, error) {
	h, ok := handlers[method]
	if !ok {
		return nil, bridge.Unsupported(method)
	}

	e.mu.Lock()
	result, err := h(ctx, e, tag, args)
	e.mu.Unlock()

	if err != nil {
		e.logger.Debug("call failed", "method", method, "tag", tag, "error", err)
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", method, err)
	}
	return raw, nil
}

// Close discards every working copy.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for tag, s := range e.sessions {
		if err := e.store.Delete(ctx, s.key); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(e.sessions, tag)
	}
	return firstErr
}

// session returns the open session for tag. Callers hold e.mu.
func (e *Engine) session(tag bridge.Tag) (*session, error) {
	s, ok := e.sessions[tag]
	if !ok {
		return nil, fmt.Errorf("%w: tag %d", ErrDocumentNotOpen, tag)
	}
	return s, nil
}

// bind decodes positional args into targets the same way a remote host
// would see them after JSON transport.
func bind(args []any, targets ...any) error {
	if len(args) < len(targets) {
		return fmt.Errorf("%w: want %d arguments, got %d", bridge.ErrInvalidArgument, len(targets), len(args))
	}
	for i, target := range targets {
		data, err := json.Marshal(args[i])
		if err != nil {
			return fmt.Errorf("%w: argument %d: %v", bridge.ErrInvalidArgument, i, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("%w: argument %d: %v", bridge.ErrInvalidArgument, i, err)
		}
	}
	return nil
}
