package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hanabi/client/internal/net/proto"
	"hanabi/client/internal/net/ws"
	"hanabi/client/internal/ui"
	"hanabi/client/internal/world"
)

// Status is the transport lifecycle state surfaced to the player.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
)

// State bundles everything a handler may look at: the authoritative snapshot
// (read-only for intent handlers), the local interaction state, and the
// connection status. There are no ambient globals; the loop owns this struct
// and passes it by reference.
type State struct {
	Snapshot    *world.Snapshot
	Interaction ui.Interaction
	Status      Status
}

// Transport is the duplex channel the client talks through. The real
// implementation is ws.Conn; tests substitute a fake.
type Transport interface {
	Events() <-chan ws.Event
	Send(data []byte) error
	Close() error
}

// Config carries client tunables.
type Config struct {
	// MoveThrottle is the minimum spacing between move commands while
	// dragging. Defaults to 100ms.
	MoveThrottle time.Duration
	Logger       zerolog.Logger
	// Clock is injected by tests; defaults to time.Now.
	Clock func() time.Time
}

// Diagnostics is the read-only summary served by the local diagnostics
// endpoint.
type Diagnostics struct {
	Status         Status `json:"status"`
	Tick           uint64 `json:"tick"`
	StatusLine     string `json:"statusLine"`
	LogLines       int    `json:"logLines"`
	DecodeFailures int    `json:"decodeFailures"`
	ClearedRefs    int    `json:"clearedRefs"`
	LastCommand    string `json:"lastCommand"`
}

// Client is the synchronization loop: it services transport events and user
// intents from one goroutine, so the snapshot, the interaction state and the
// reconciler's mapping are never touched concurrently. One inbound message
// triggers exactly one decode, one invalidation step and one reconciliation
// pass; the loop is never re-entrant.
type Client struct {
	log        zerolog.Logger
	transport  Transport
	reconciler *ui.Reconciler
	dispatcher *Dispatcher
	clock      func() time.Time

	state        State
	gameLog      []world.LogEntry
	statusLine   string
	intents      chan Intent
	moveThrottle time.Duration

	decodeFailures int
	clearedRefs    int

	diagMu sync.Mutex
	diag   Diagnostics
}

// New assembles a client over a connected transport and a view layer.
func New(cfg Config, transport Transport, view ui.View) *Client {
	if cfg.MoveThrottle <= 0 {
		cfg.MoveThrottle = 100 * time.Millisecond
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	c := &Client{
		log:          cfg.Logger,
		transport:    transport,
		reconciler:   ui.NewReconciler(view),
		clock:        cfg.Clock,
		intents:      make(chan Intent, 64),
		moveThrottle: cfg.MoveThrottle,
	}
	c.state.Status = StatusConnecting
	c.dispatcher = NewDispatcher(transport.Send, cfg.MoveThrottle, cfg.Clock, cfg.Logger)
	return c
}

// Submit queues a user intent for the loop. Blocks only if the intent buffer
// is full.
func (c *Client) Submit(in Intent) {
	c.intents <- in
}

// Run drives the loop until the transport goes away or the context is
// cancelled. Handlers run to completion before the next event is serviced.
func (c *Client) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.moveThrottle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.transport.Close()
			return ctx.Err()
		case ev, ok := <-c.transport.Events():
			if !ok {
				c.setStatus(StatusClosed)
				c.publishDiagnostics()
				return nil
			}
			c.handleTransportEvent(ev)
		case in := <-c.intents:
			c.handleIntent(in)
		case <-ticker.C:
			c.dispatcher.FlushMove(&c.state)
		}
		c.publishDiagnostics()
	}
}

// Diagnostics returns the latest loop summary. Safe to call from any
// goroutine.
func (c *Client) Diagnostics() Diagnostics {
	c.diagMu.Lock()
	defer c.diagMu.Unlock()
	return c.diag
}

// GameLog returns a copy of the accumulated table log. The log only ever
// grows; snapshots replace everything else, but log lines are appended once
// and kept.
func (c *Client) GameLog() []world.LogEntry {
	out := make([]world.LogEntry, len(c.gameLog))
	copy(out, c.gameLog)
	return out
}

func (c *Client) handleTransportEvent(ev ws.Event) {
	switch ev.Kind {
	case ws.EventOpen:
		c.setStatus(StatusOpen)
		c.log.Info().Msg("connection open")
	case ws.EventMessage:
		c.handleSnapshot(ev.Data)
	case ws.EventError:
		c.log.Warn().Err(ev.Err).Msg("transport error")
	case ws.EventClosed:
		c.setStatus(StatusClosed)
		c.log.Info().Msg("connection closed")
	}
}

// handleSnapshot runs the inbound half of the data flow: decode, replace the
// authoritative snapshot, invalidate stale interaction references, append the
// new log lines, then one reconciliation pass. A malformed payload changes
// nothing: the previous snapshot, view and interaction state all stand.
func (c *Client) handleSnapshot(data []byte) {
	snap, err := proto.DecodeSnapshot(data)
	if err != nil {
		c.decodeFailures++
		c.log.Warn().Err(err).Int("bytes", len(data)).Msg("discarding malformed snapshot")
		return
	}

	c.state.Snapshot = snap
	hadDrag := c.state.Interaction.Drag != nil
	if cleared := c.state.Interaction.Invalidate(snap); cleared > 0 {
		c.clearedRefs += cleared
		c.log.Debug().Int("cleared", cleared).Msg("invalidated stale interaction state")
	}
	if hadDrag && c.state.Interaction.Drag == nil {
		c.dispatcher.ResetMove()
	}
	c.gameLog = append(c.gameLog, snap.NewLogEntries...)
	c.statusLine = snap.StatusLine()
	c.reconciler.Apply(snap, &c.state.Interaction)
}

func (c *Client) setStatus(status Status) {
	c.state.Status = status
}

func (c *Client) publishDiagnostics() {
	var tick uint64
	if c.state.Snapshot != nil {
		tick = c.state.Snapshot.Tick
	}
	c.diagMu.Lock()
	c.diag = Diagnostics{
		Status:         c.state.Status,
		Tick:           tick,
		StatusLine:     c.statusLine,
		LogLines:       len(c.gameLog),
		DecodeFailures: c.decodeFailures,
		ClearedRefs:    c.clearedRefs,
		LastCommand:    c.dispatcher.LastCommand(),
	}
	c.diagMu.Unlock()
}
