package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/dd0wney/cluso-codegraph/pkg/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestGracefulServer_ConfigReload tests configuration reload via SIGHUP
func TestGracefulServer_ConfigReload(t *testing.T) {
	gs := NewGracefulServer("127.0.0.1:0", okHandler(), nil)

	var reloads atomic.Int32
	gs.SetConfigReloadFunc(func() error {
		reloads.Add(1)
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- gs.Start() }()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("Failed to send SIGHUP: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for reloads.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if reloads.Load() != 1 {
		t.Errorf("Expected one reload, got %d", reloads.Load())
	}
	if gs.IsShuttingDown() {
		t.Error("Server should not be shutting down after SIGHUP")
	}

	if err := gs.Shutdown(1 * time.Second); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Start did not return after shutdown")
	}
}

// TestGracefulServer_ReloadConfig tests the ReloadConfig method
func TestGracefulServer_ReloadConfig(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil)

	if err := gs.ReloadConfig(); err != nil {
		t.Errorf("ReloadConfig() without a function error = %v", err)
	}

	reloadCalled := false
	gs.SetConfigReloadFunc(func() error {
		reloadCalled = true
		return nil
	})

	if err := gs.ReloadConfig(); err != nil {
		t.Errorf("ReloadConfig() error = %v", err)
	}
	if !reloadCalled {
		t.Error("Config reload function was not called")
	}
}

// TestGracefulServer_ReloadConfigWithError tests error handling during reload
func TestGracefulServer_ReloadConfigWithError(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil)
	errReload := errors.New("bad config")

	gs.SetConfigReloadFunc(func() error {
		return errReload
	})

	if err := gs.ReloadConfig(); !errors.Is(err, errReload) {
		t.Errorf("ReloadConfig() error = %v, want %v", err, errReload)
	}
}

func TestGracefulServer_ShutdownIdempotent(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil)

	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("First shutdown error: %v", err)
	}
	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("Second shutdown error: %v", err)
	}
	if !gs.IsShuttingDown() {
		t.Error("Expected server to report shutdown")
	}
	select {
	case <-gs.ShutdownChannel():
	default:
		t.Error("Expected shutdown channel to be closed")
	}
}

func TestSwappableHandler(t *testing.T) {
	text := func(s string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, s)
		})
	}
	h := NewSwappableHandler(text("first"))

	get := func() string {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Body.String()
	}

	if got := get(); got != "first" {
		t.Errorf("Expected first, got %q", got)
	}
	h.Swap(text("second"))
	if got := get(); got != "second" {
		t.Errorf("Expected second, got %q", got)
	}
}

func TestNewMux(t *testing.T) {
	registry := metrics.NewRegistry()
	registry.RecordFallback("leiden", "failed")
	mux := NewMux(okHandler(), registry)

	tests := []struct {
		path     string
		code     int
		contains string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/graphql", http.StatusOK, ""},
		{"/metrics", http.StatusOK, "codegraph_fallbacks_total"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.code {
				t.Errorf("Expected status %d, got %d", tt.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("Expected body to contain %q", tt.contains)
			}
		})
	}

	bare := NewMux(okHandler(), nil)
	rec := httptest.NewRecorder()
	bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a registry, got %d", rec.Code)
	}
}
