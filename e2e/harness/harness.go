// Package harness provides E2E testing utilities for reqpane.
package harness

import (
	"net/http"
	"testing"
	"time"

	"github.com/artpar/reqpane/e2e/testserver"
	"github.com/artpar/reqpane/internal/config"
)

// E2EHarness is the main test orchestrator.
type E2EHarness struct {
	t       *testing.T
	server  *testserver.Server
	tmpDir  string
	timeout time.Duration
}

// Config configures the harness.
type Config struct {
	ServerHandlers map[string]http.HandlerFunc
	Timeout        time.Duration // Default: 5 seconds
}

// New creates a harness with an isolated config directory and, when handlers
// are given, a recording test server.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	h := &E2EHarness{
		t:       t,
		tmpDir:  t.TempDir(),
		timeout: cfg.Timeout,
	}

	t.Setenv(config.EnvConfigDir, h.tmpDir)
	for _, name := range []string{config.EnvTimeout, config.EnvLogFile, config.EnvTrace, config.EnvInsecure} {
		t.Setenv(name, "")
	}

	if len(cfg.ServerHandlers) > 0 {
		h.server = testserver.New(cfg.ServerHandlers)
		t.Cleanup(h.server.Close)
	}
	return h
}

// ServerURL returns the test server URL.
func (h *E2EHarness) ServerURL() string {
	if h.server == nil {
		return ""
	}
	return h.server.URL
}

// Server returns the recording test server, or nil.
func (h *E2EHarness) Server() *testserver.Server {
	return h.server
}

// TmpDir returns the isolated config directory.
func (h *E2EHarness) TmpDir() string {
	return h.tmpDir
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}
