package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HANABI_SERVER_URL", "")
	t.Setenv("MOVE_THROTTLE_MS", "")
	t.Setenv("DIAG_ADDR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "ws://localhost:8080/ws" {
		t.Fatalf("unexpected default server url %q", cfg.ServerURL)
	}
	if cfg.MoveThrottle != 100*time.Millisecond {
		t.Fatalf("unexpected default move throttle %v", cfg.MoveThrottle)
	}
	if cfg.DiagAddr != "" {
		t.Fatalf("expected diagnostics disabled by default, got %q", cfg.DiagAddr)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HANABI_SERVER_URL", "ws://game.example:9090/ws")
	t.Setenv("MOVE_THROTTLE_MS", "250")
	t.Setenv("DIAG_ADDR", "127.0.0.1:6060")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "ws://game.example:9090/ws" {
		t.Fatalf("unexpected server url %q", cfg.ServerURL)
	}
	if cfg.MoveThrottle != 250*time.Millisecond {
		t.Fatalf("unexpected move throttle %v", cfg.MoveThrottle)
	}
	if cfg.DiagAddr != "127.0.0.1:6060" {
		t.Fatalf("unexpected diagnostics addr %q", cfg.DiagAddr)
	}
}

func TestLoadConfigRejectsBadThrottle(t *testing.T) {
	t.Setenv("MOVE_THROTTLE_MS", "not-a-number")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for malformed throttle")
	}

	t.Setenv("MOVE_THROTTLE_MS", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for non-positive throttle")
	}
}
