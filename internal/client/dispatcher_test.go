package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"hanabi/client/internal/ui"
	"hanabi/client/internal/world"
)

type sentCommand struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params"`
}

type commandRecorder struct {
	sent []sentCommand
}

func (r *commandRecorder) send(data []byte) error {
	var cmd sentCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return err
	}
	r.sent = append(r.sent, cmd)
	return nil
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestDispatcher(rec *commandRecorder, clock *testClock) *Dispatcher {
	return NewDispatcher(rec.send, 100*time.Millisecond, clock.Now, zerolog.Nop())
}

func dispatcherState() *State {
	return &State{
		Snapshot: &world.Snapshot{
			Players: []world.Player{
				{Name: "Player 1", Cards: []world.Card{
					{ID: "c1", Color: 2, Number: 3},
					{ID: "c2", Color: 1, Number: 1},
				}},
				{Name: "Player 2", Cards: []world.Card{
					{ID: "c3", Color: 4, Number: 5},
				}},
			},
			DeskObjects: []world.DeskObject{
				{ID: "d1", X: 10, Y: 10, Width: 40, Height: 40},
				{ID: "d2", X: 50, Y: 60, Width: 36, Height: 52, SpiritID: 23},
			},
		},
		Status: StatusOpen,
	}
}

func TestPlayRequiresSelfHover(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})
	st := dispatcherState()

	if d.Play(st) {
		t.Fatalf("expected play without hover to no-op")
	}
	if len(rec.sent) != 0 {
		t.Fatalf("expected no command sent, got %d", len(rec.sent))
	}
}

func TestPlaySendsIndexAndClearsHover(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})
	st := dispatcherState()
	st.Interaction.HoverSelfCard(1)

	if !d.Play(st) {
		t.Fatalf("expected play to dispatch")
	}
	if len(rec.sent) != 1 || rec.sent[0].Type != "play" {
		t.Fatalf("expected one play command, got %+v", rec.sent)
	}
	var params struct {
		CardIndex int `json:"cardIndex"`
	}
	if err := json.Unmarshal(rec.sent[0].Params, &params); err != nil {
		t.Fatalf("failed to decode params: %v", err)
	}
	if params.CardIndex != 1 {
		t.Fatalf("expected cardIndex 1, got %d", params.CardIndex)
	}
	if st.Interaction.Focus.Kind != ui.FocusNone {
		t.Fatalf("expected hover cleared after dispatch, got %+v", st.Interaction.Focus)
	}
}

func TestDiscardClearsHoverEvenBeforeServerResponds(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})
	st := dispatcherState()
	st.Interaction.HoverSelfCard(0)

	if !d.Discard(st) {
		t.Fatalf("expected discard to dispatch")
	}
	if rec.sent[0].Type != "discard" {
		t.Fatalf("expected discard command, got %+v", rec.sent[0])
	}
	if st.Interaction.Focus.Kind != ui.FocusNone {
		t.Fatalf("expected hover cleared")
	}
}

func TestHintTakesValuesFromHoveredCard(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})
	st := dispatcherState()
	st.Interaction.HoverOtherCard(1, "c3")

	if !d.HintColor(st) {
		t.Fatalf("expected color hint to dispatch")
	}
	if !d.HintNumber(st) {
		t.Fatalf("expected number hint to dispatch")
	}

	var color struct {
		PlayerID int  `json:"playerId"`
		IsColor  bool `json:"isColor"`
		Value    int  `json:"value"`
	}
	if err := json.Unmarshal(rec.sent[0].Params, &color); err != nil {
		t.Fatalf("failed to decode params: %v", err)
	}
	if color.PlayerID != 1 || !color.IsColor || color.Value != 4 {
		t.Fatalf("unexpected color hint params %+v", color)
	}

	var number struct {
		IsColor bool `json:"isColor"`
		Value   int  `json:"value"`
	}
	if err := json.Unmarshal(rec.sent[1].Params, &number); err != nil {
		t.Fatalf("failed to decode params: %v", err)
	}
	if number.IsColor || number.Value != 5 {
		t.Fatalf("unexpected number hint params %+v", number)
	}
}

func TestHintNoOpsOnStaleCard(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})
	st := dispatcherState()
	st.Interaction.HoverOtherCard(1, "c9")

	if d.HintColor(st) {
		t.Fatalf("expected hint on missing card to no-op")
	}
	if len(rec.sent) != 0 {
		t.Fatalf("expected no command, got %d", len(rec.sent))
	}
}

func TestFlipOnlyTargetsDeskItems(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})
	st := dispatcherState()

	if d.Flip(st, "d1") {
		t.Fatalf("expected flip on a static block to no-op")
	}
	if !d.Flip(st, "d2") {
		t.Fatalf("expected flip on a desk item to dispatch")
	}
	if rec.sent[0].Type != "flip" {
		t.Fatalf("expected flip command, got %+v", rec.sent[0])
	}
}

func TestDragMoveThrottlesToTrailingPosition(t *testing.T) {
	rec := &commandRecorder{}
	clock := &testClock{now: time.Unix(100, 0)}
	d := newTestDispatcher(rec, clock)
	st := dispatcherState()
	st.Interaction.StartDrag("d2", 5, 5)

	for i := 0; i < 100; i++ {
		d.DragMove(st, 100+i, 200+i)
	}
	if len(rec.sent) != 0 {
		t.Fatalf("expected no move inside the window, got %d", len(rec.sent))
	}

	clock.advance(150 * time.Millisecond)
	if !d.FlushMove(st) {
		t.Fatalf("expected trailing move after window")
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected one move command, got %d", len(rec.sent))
	}
	var params struct {
		TargetID string `json:"targetId"`
		X        int    `json:"x"`
		Y        int    `json:"y"`
	}
	if err := json.Unmarshal(rec.sent[0].Params, &params); err != nil {
		t.Fatalf("failed to decode params: %v", err)
	}
	// Last pointer (199,299) minus the (5,5) grab offset.
	if params.TargetID != "d2" || params.X != 194 || params.Y != 294 {
		t.Fatalf("unexpected move params %+v", params)
	}
}

func TestDragMoveSuppressesIdenticalPositions(t *testing.T) {
	rec := &commandRecorder{}
	clock := &testClock{now: time.Unix(100, 0)}
	d := newTestDispatcher(rec, clock)
	st := dispatcherState()
	st.Interaction.StartDrag("d2", 0, 0)

	d.DragMove(st, 100, 200)
	clock.advance(150 * time.Millisecond)
	if !d.FlushMove(st) {
		t.Fatalf("expected first move to flush")
	}

	clock.advance(time.Hour)
	for i := 0; i < 100; i++ {
		d.DragMove(st, 100, 200)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected identical positions suppressed, got %d sends", len(rec.sent))
	}
}

func TestFinishDragFlushesPendingImmediately(t *testing.T) {
	rec := &commandRecorder{}
	clock := &testClock{now: time.Unix(100, 0)}
	d := newTestDispatcher(rec, clock)
	st := dispatcherState()
	st.Interaction.StartDrag("d2", 0, 0)

	d.DragMove(st, 80, 90)
	if !d.FinishDrag(st) {
		t.Fatalf("expected pending position to flush on drop")
	}
	if len(rec.sent) != 1 || rec.sent[0].Type != "move" {
		t.Fatalf("expected one move command, got %+v", rec.sent)
	}
}

func TestRenameRejectsEmptyName(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})

	if d.Rename("") {
		t.Fatalf("expected empty rename to no-op")
	}
	if !d.Rename("Ada") {
		t.Fatalf("expected rename to dispatch")
	}
	if rec.sent[0].Type != "rename" {
		t.Fatalf("expected rename command, got %+v", rec.sent[0])
	}
}

func TestLastCommandTrace(t *testing.T) {
	rec := &commandRecorder{}
	d := newTestDispatcher(rec, &testClock{now: time.Unix(100, 0)})

	if d.LastCommand() != "" {
		t.Fatalf("expected empty trace before any dispatch")
	}
	d.Chat("hello")
	if d.LastCommand() != `{"type":"chat","params":{"text":"hello"}}` {
		t.Fatalf("unexpected trace %q", d.LastCommand())
	}
}
