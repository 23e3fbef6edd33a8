// Package socket implements the bridge over a websocket connection to a
// native host. Requests carry an xid correlation id; responses are paired by
// id and may arrive in any order. Events pushed by the host are dispatched
// to subscribers from the read loop.
package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
)

var tracer = otel.Tracer("socket")

var (
	_ bridge.Bridge      = (*Client)(nil)
	_ bridge.EventSource = (*Client)(nil)
)

// Options configures Dial.
type Options struct {
	HandshakeTimeout time.Duration
	Header           http.Header
	Logger           *slog.Logger
}

// Client is a websocket bridge to a native host.
type Client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]pending
	subs    map[string]map[int]func(bridge.Event)
	nextSub int
	closed  bool
	cause   error

	done chan struct{}
}

// Dial connects to the native host at url.
func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: opts.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, url, opts.Header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		conn:    conn,
		logger:  logger.With("system", "socket", "url", url),
		pending: make(map[string]pending),
		subs:    make(map[string]map[int]func(bridge.Event)),
		done:    make(chan struct{}),
	}
	go c.readLoop()

	c.logger.Info("bridge connected")
	return c, nil
}

// Call sends method to the host and waits for its response.
// Cancelling ctx abandons the wait; the host is not told and may still
// complete the call.
func (c *Client) Call(ctx context.Context, method string, tag bridge.Tag, args ...any) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Socket.Client.Call", trace.WithAttributes(
		attribute.String("bridge.method", method),
		attribute.Int("bridge.tag", int(tag)),
	))
	defer span.End()

	result, err := c.call(ctx, method, tag, args)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (c *Client) call(ctx context.Context, method string, tag bridge.Tag, args []any) (json.RawMessage, error) {
	id := xid.New().String()
	ch := make(chan response, 1)

	c.mu.Lock()
	if c.closed {
		err := c.closedErr()
		c.mu.Unlock()
		return nil, err
	}
	c.pending[id] = pending{method: method, ch: ch}
	c.mu.Unlock()

	if args == nil {
		args = []any{}
	}

	if err := c.write(request{ID: id, Method: method, Tag: tag, Args: args}); err != nil {
		c.forget(id)
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case r := <-ch:
		return r.result, r.err
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	}
}

// Subscribe registers fn for host events named name.
// fn runs on the read loop and must not block.
func (c *Client) Subscribe(name string, fn func(bridge.Event)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	if c.subs[name] == nil {
		c.subs[name] = make(map[int]func(bridge.Event))
	}
	c.subs[name][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[name], id)
	}
}

// Close shuts the connection down. Calls in flight fail with bridge.ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		<-c.done
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	werr := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := c.conn.Close()
	<-c.done

	if werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
		c.logger.Debug("close handshake failed", "error", werr)
	}
	c.logger.Info("bridge disconnected")
	return err
}

// Done is closed once the read loop has exited.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) write(req request) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(req)
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.shutdown(err)
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.logger.Warn("malformed frame", "error", err)
			continue
		}

		switch {
		case f.Event != "":
			c.dispatch(bridge.Event{Name: f.Event, Tag: f.Tag, Data: f.Data})
		case f.ID != "":
			c.deliver(f)
		default:
			c.logger.Warn("frame without id or event")
		}
	}
}

func (c *Client) deliver(f frame) {
	c.mu.Lock()
	p, ok := c.pending[f.ID]
	delete(c.pending, f.ID)
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("response for unknown call", "id", f.ID)
		return
	}

	if f.Error != nil {
		p.ch <- response{err: &bridge.CallError{Method: p.method, Message: *f.Error}}
		return
	}
	p.ch <- response{result: f.Result}
}

func (c *Client) dispatch(e bridge.Event) {
	c.mu.Lock()
	fns := make([]func(bridge.Event), 0, len(c.subs[e.Name]))
	for _, fn := range c.subs[e.Name] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (c *Client) shutdown(cause error) {
	c.mu.Lock()
	wasClosed := c.closed
	c.closed = true
	if !wasClosed {
		c.cause = cause
	}
	err := c.closedErr()
	calls := c.pending
	c.pending = make(map[string]pending)
	c.mu.Unlock()

	if !wasClosed {
		c.logger.Warn("bridge connection lost", "error", cause)
	}

	for _, p := range calls {
		p.ch <- response{err: err}
	}
}

func (c *Client) closedErr() error {
	if c.cause != nil {
		return fmt.Errorf("%w: %v", bridge.ErrClosed, c.cause)
	}
	return bridge.ErrClosed
}
