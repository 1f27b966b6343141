package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the client process needs at startup. Values come
// from the environment, with a .env file loaded first when present.
type Config struct {
	// ServerURL is the websocket endpoint of the game server.
	ServerURL string
	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string
	// DiagAddr is the listen address for the local diagnostics endpoint.
	// Empty disables it.
	DiagAddr string
	// MoveThrottle is the minimum spacing between move commands while
	// dragging a desk piece.
	MoveThrottle time.Duration
}

const defaultMoveThrottleMs = 100

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServerURL:    getEnv("HANABI_SERVER_URL", "ws://localhost:8080/ws"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DiagAddr:     getEnv("DIAG_ADDR", ""),
		MoveThrottle: defaultMoveThrottleMs * time.Millisecond,
	}

	if raw := os.Getenv("MOVE_THROTTLE_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("invalid MOVE_THROTTLE_MS=%q", raw)
		}
		cfg.MoveThrottle = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
