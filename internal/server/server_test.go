package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Port != 8000 {
		t.Errorf("Port = %d; want 8000", cfg.Port)
	}
	if cfg.WriteTimeout <= 30*time.Second {
		t.Errorf("WriteTimeout = %v; must exceed the 30s invoke timeout", cfg.WriteTimeout)
	}
}

func TestNewServer_Addr(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9123
	srv := NewServer(http.NewServeMux(), cfg, nil)

	if srv.Addr() != "127.0.0.1:9123" {
		t.Errorf("Addr() = %q; want 127.0.0.1:9123", srv.Addr())
	}
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	t.Parallel()

	srv := NewServer(http.NewServeMux(), DefaultConfig(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown error = %v; want nil for a never-started server", err)
	}
}
