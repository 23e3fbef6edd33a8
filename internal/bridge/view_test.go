package bridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/bridge/bridgetest"
)

func TestView_Call_UnresolvedHandle(t *testing.T) {
	b := bridgetest.New().Return("getPageCount", 3)
	view := bridge.NewView(b, &bridge.Mount{}, b)

	_, err := view.Call(context.Background(), "getPageCount")
	if !errors.Is(err, bridge.ErrNoNativeReference) {
		t.Fatalf("Call() error = %v, want ErrNoNativeReference", err)
	}

	if n := len(b.Calls("")); n != 0 {
		t.Errorf("bridge received %d calls, want 0", n)
	}
}

func TestView_Call_AddressesTag(t *testing.T) {
	b := bridgetest.New().Return("getPageCount", 3)
	mount := &bridge.Mount{}
	mount.Attach(42)
	view := bridge.NewView(b, mount, b)

	count, err := bridge.Invoke[int](context.Background(), view, "getPageCount")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Invoke() = %d, want 3", count)
	}

	calls := b.Calls("getPageCount")
	if len(calls) != 1 || calls[0].Tag != 42 {
		t.Errorf("calls = %+v, want one call to tag 42", calls)
	}
}

func TestView_Call_AfterDetach(t *testing.T) {
	b := bridgetest.New().Return("save", true)
	mount := &bridge.Mount{}
	mount.Attach(1)
	view := bridge.NewView(b, mount, b)

	mount.Detach()

	if view.Live() {
		t.Error("Live() = true after Detach, want false")
	}
	if err := view.Exec(context.Background(), "save"); !errors.Is(err, bridge.ErrNoNativeReference) {
		t.Errorf("Exec() error = %v, want ErrNoNativeReference", err)
	}
}

func TestView_NilView(t *testing.T) {
	var view *bridge.View

	if view.Live() {
		t.Error("Live() = true for nil view, want false")
	}
	if _, err := view.Call(context.Background(), "save"); !errors.Is(err, bridge.ErrNoNativeReference) {
		t.Errorf("Call() error = %v, want ErrNoNativeReference", err)
	}
}

func TestView_Call_PropagatesRejection(t *testing.T) {
	reject := &bridge.CallError{Method: "save", Message: "disk full"}
	b := bridgetest.New().Fail("save", reject)

	err := b.View(1).Exec(context.Background(), "save")

	var callErr *bridge.CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("Exec() error = %v, want *CallError", err)
	}
	if callErr.Message != "disk full" {
		t.Errorf("Message = %q, want %q", callErr.Message, "disk full")
	}
}

func TestInvoke_DecodeError(t *testing.T) {
	b := bridgetest.New().Return("getPageCount", "three")

	if _, err := bridge.Invoke[int](context.Background(), b.View(1), "getPageCount"); err == nil {
		t.Error("Invoke() error = nil, want decode error")
	}
}

func TestView_Subscribe_FiltersByTag(t *testing.T) {
	b := bridgetest.New()
	view := b.View(7)

	var received []bridge.Event
	cancel := view.Subscribe(bridge.EventPageChanged, func(e bridge.Event) {
		received = append(received, e)
	})

	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 7})
	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 8})

	cancel()
	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 7})

	if len(received) != 1 {
		t.Errorf("received %d events, want 1", len(received))
	}
}

func TestUnsupported(t *testing.T) {
	err := bridge.Unsupported("searchText")
	if !errors.Is(err, bridge.ErrUnsupportedMethod) {
		t.Errorf("Unsupported() = %v, want wrapped ErrUnsupportedMethod", err)
	}
}

type deadlineBridge struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineBridge) Call(ctx context.Context, method string, tag bridge.Tag, args ...any) (json.RawMessage, error) {
	d.deadline, d.ok = ctx.Deadline()
	return nil, nil
}

func TestWithTimeout(t *testing.T) {
	inner := &deadlineBridge{}

	if got := bridge.WithTimeout(inner, 0); got != bridge.Bridge(inner) {
		t.Error("WithTimeout(b, 0) wrapped b, want b unchanged")
	}

	b := bridge.WithTimeout(inner, time.Minute)
	if _, err := b.Call(context.Background(), "getPageCount", 1); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if !inner.ok {
		t.Fatal("Call() context has no deadline")
	}
	if remaining := time.Until(inner.deadline); remaining <= 0 || remaining > time.Minute {
		t.Errorf("deadline in %v, want within 1m", remaining)
	}
}
