package ws

import (
	"testing"
	"time"
)

func TestDeliverGivesUpAfterClose(t *testing.T) {
	c := &Conn{
		events: make(chan Event, 1),
		done:   make(chan struct{}),
	}

	if !c.deliver(Event{Kind: EventOpen}) {
		t.Fatalf("expected delivery into free buffer")
	}

	// Buffer full, consumer gone: the pump must not block forever.
	close(c.done)
	result := make(chan bool, 1)
	go func() {
		result <- c.deliver(Event{Kind: EventMessage, Data: []byte{1}})
	}()

	select {
	case ok := <-result:
		if ok {
			t.Fatalf("expected delivery to report failure after close")
		}
	case <-time.After(time.Second):
		t.Fatalf("deliver blocked on a full buffer after close")
	}
}
