package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"hanabi/client/internal/client"
	"hanabi/client/internal/net/ws"
	"hanabi/client/internal/ui"
)

// Run wires the process together: config, logging, the websocket connection,
// the client loop, and the optional diagnostics endpoint. It blocks until the
// context is cancelled or the connection goes away.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, perr := zerolog.ParseLevel(cfg.LogLevel); perr == nil {
		log = log.Level(lvl)
	}

	conn, err := ws.Dial(ctx, cfg.ServerURL, log)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.ServerURL, err)
	}

	c := client.New(client.Config{
		MoveThrottle: cfg.MoveThrottle,
		Logger:       log,
	}, conn, ui.NewTraceView(log))

	if cfg.DiagAddr != "" {
		go serveDiagnostics(ctx, cfg.DiagAddr, c, log)
	}

	log.Info().Str("server", cfg.ServerURL).Msg("client running")
	return c.Run(ctx)
}

// serveDiagnostics exposes the loop's counters over local HTTP for debugging.
// It shares nothing mutable with the loop; Diagnostics() hands out a copy.
func serveDiagnostics(ctx context.Context, addr string, c *client.Client, log zerolog.Logger) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/diagnostics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(c.Diagnostics()); err != nil {
			log.Warn().Err(err).Msg("failed to write diagnostics")
		}
	})

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("diagnostics endpoint up")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn().Err(err).Msg("diagnostics server exited")
	}
}
