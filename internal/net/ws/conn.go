package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = 10 * time.Second

// EventKind classifies a transport event.
type EventKind int

const (
	EventOpen EventKind = iota
	EventMessage
	EventError
	EventClosed
)

// Event is one transport occurrence delivered to the synchronization loop.
// Data is set for EventMessage, Err for EventError.
type Event struct {
	Kind EventKind
	Data []byte
	Err  error
}

// Conn wraps one gorilla websocket connection as an event stream. Inbound
// binary frames become EventMessage; the read loop ends with EventClosed and
// a closed channel. gorilla allows one concurrent reader and one concurrent
// writer, so writes are serialized behind a mutex while the read pump owns
// the reader.
type Conn struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

// Dial opens the persistent duplex channel to the server and starts the read
// pump. The first event on Events is EventOpen.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c := &Conn{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		log:    log,
	}
	c.events <- Event{Kind: EventOpen}
	go c.readPump()
	return c, nil
}

// Events returns the inbound event stream. The channel closes when the
// connection is gone, after a final EventClosed.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// Send writes one outbound command as a text frame. Fire and forget: the
// caller gets the write error, but no delivery guarantee is made.
func (c *Conn) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close tears the connection down unconditionally. Safe to call more than
// once; the read pump delivers EventClosed on its way out.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// deliver hands an event to the consumer. It gives up when Close has been
// called, so the pump never blocks on a consumer that already went away.
func (c *Conn) deliver(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

func (c *Conn) readPump() {
	defer close(c.events)
	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !c.deliver(Event{Kind: EventError, Err: err}) {
					return
				}
			}
			c.deliver(Event{Kind: EventClosed})
			c.Close()
			return
		}
		if mt != websocket.BinaryMessage {
			c.log.Warn().Int("messageType", mt).Msg("ignoring non-binary frame")
			continue
		}
		if !c.deliver(Event{Kind: EventMessage, Data: data}) {
			return
		}
	}
}
