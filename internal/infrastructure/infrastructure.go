// Package infrastructure assembles the systems every pdfbridge entry point
// needs: logging, working-copy storage and the bridge to a PDF engine.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/config"
	"github.com/JaimeStill/pdfbridge/internal/engine"
	"github.com/JaimeStill/pdfbridge/internal/socket"
	"github.com/JaimeStill/pdfbridge/internal/storage"
	"github.com/JaimeStill/pdfbridge/pkg/logging"
)

// Infrastructure holds the core systems shared by the gateways.
type Infrastructure struct {
	Logger  *slog.Logger
	Storage storage.System
	Bridge  bridge.Bridge
	// Events is nil when the transport does not push native events.
	Events bridge.EventSource

	closers []func(ctx context.Context) error
}

// New creates an Infrastructure from a finalized configuration.
// Logs are written to w, or stderr when w is nil.
func New(ctx context.Context, cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging, w)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	infra := &Infrastructure{
		Logger:  logger,
		Storage: store,
	}

	switch cfg.Bridge.Transport {
	case config.TransportSocket:
		client, err := socket.Dial(ctx, cfg.Bridge.URL, socket.Options{
			HandshakeTimeout: cfg.Bridge.HandshakeTimeoutDuration(),
			Logger:           logger,
		})
		if err != nil {
			return nil, fmt.Errorf("bridge init failed: %w", err)
		}
		infra.Bridge = client
		infra.Events = client
		infra.closers = append(infra.closers, func(context.Context) error { return client.Close() })
	default:
		eng := engine.New(store, logger)
		infra.Bridge = eng
		infra.closers = append(infra.closers, eng.Close)
	}

	infra.Bridge = bridge.WithTimeout(infra.Bridge, cfg.Bridge.CallTimeoutDuration())

	logger.Debug("infrastructure ready", "transport", cfg.Bridge.Transport)
	return infra, nil
}

// View returns a view over the configured bridge addressed through r.
func (i *Infrastructure) View(r bridge.Resolver) *bridge.View {
	return bridge.NewView(i.Bridge, r, i.Events)
}

// Close releases the bridge and any working copies it holds.
func (i *Infrastructure) Close(ctx context.Context) error {
	var errs []error
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
