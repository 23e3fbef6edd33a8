package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvBridgeTransport overrides the bridge transport.
	EnvBridgeTransport = "PDFBRIDGE_BRIDGE_TRANSPORT"

	// EnvBridgeURL overrides the native host websocket URL.
	EnvBridgeURL = "PDFBRIDGE_BRIDGE_URL"

	// EnvBridgeHandshakeTimeout overrides the websocket handshake timeout.
	EnvBridgeHandshakeTimeout = "PDFBRIDGE_BRIDGE_HANDSHAKE_TIMEOUT"

	// EnvBridgeCallTimeout overrides the per-call timeout.
	EnvBridgeCallTimeout = "PDFBRIDGE_BRIDGE_CALL_TIMEOUT"
)

// Transport selects how bridge calls reach a PDF engine.
type Transport string

const (
	// TransportLocal serves document-level methods in process with pdfcpu.
	TransportLocal Transport = "local"
	// TransportSocket forwards every call to a native host over a websocket.
	TransportSocket Transport = "socket"
)

// BridgeConfig contains bridge transport configuration.
type BridgeConfig struct {
	Transport        Transport `toml:"transport"`
	URL              string    `toml:"url"`
	HandshakeTimeout string    `toml:"handshake_timeout"`
	// CallTimeout bounds a single bridge call. Empty means no timeout.
	CallTimeout string `toml:"call_timeout"`
}

// HandshakeTimeoutDuration returns the parsed handshake timeout.
func (c *BridgeConfig) HandshakeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.HandshakeTimeout)
	return d
}

// CallTimeoutDuration returns the parsed call timeout, or zero when unset.
func (c *BridgeConfig) CallTimeoutDuration() time.Duration {
	if c.CallTimeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the bridge configuration.
func (c *BridgeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *BridgeConfig) Merge(overlay *BridgeConfig) {
	if overlay.Transport != "" {
		c.Transport = overlay.Transport
	}
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.HandshakeTimeout != "" {
		c.HandshakeTimeout = overlay.HandshakeTimeout
	}
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
}

func (c *BridgeConfig) loadDefaults() {
	if c.Transport == "" {
		c.Transport = TransportLocal
	}
	if c.HandshakeTimeout == "" {
		c.HandshakeTimeout = "10s"
	}
}

func (c *BridgeConfig) loadEnv() {
	if v := os.Getenv(EnvBridgeTransport); v != "" {
		c.Transport = Transport(v)
	}
	if v := os.Getenv(EnvBridgeURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvBridgeHandshakeTimeout); v != "" {
		c.HandshakeTimeout = v
	}
	if v := os.Getenv(EnvBridgeCallTimeout); v != "" {
		c.CallTimeout = v
	}
}

func (c *BridgeConfig) validate() error {
	switch c.Transport {
	case TransportLocal:
	case TransportSocket:
		if c.URL == "" {
			return fmt.Errorf("url required for socket transport")
		}
	default:
		return fmt.Errorf("invalid transport: %s (must be local or socket)", c.Transport)
	}

	if _, err := time.ParseDuration(c.HandshakeTimeout); err != nil {
		return fmt.Errorf("invalid handshake_timeout: %w", err)
	}
	if c.CallTimeout != "" {
		d, err := time.ParseDuration(c.CallTimeout)
		if err != nil {
			return fmt.Errorf("invalid call_timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("call_timeout must not be negative")
		}
	}
	return nil
}
