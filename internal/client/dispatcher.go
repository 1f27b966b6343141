package client

import (
	"time"

	"github.com/rs/zerolog"

	"hanabi/client/internal/net/proto"
	"hanabi/client/internal/ui"
	"hanabi/client/internal/world"
)

// Dispatcher turns validated user intents into outbound commands. Every
// operation checks its precondition against the current state and no-ops
// when it does not hold; a malformed command is never sent. Each invocation
// produces at most one command and one transport send, except move, which is
// rate-limited through the throttler.
type Dispatcher struct {
	send     func([]byte) error
	throttle *ui.Throttler
	log      zerolog.Logger
	now      func() time.Time

	// lastSent keeps a human-readable trace of the last command for the
	// debug bar and diagnostics. Not part of the contract.
	lastSent string
}

// NewDispatcher wires a dispatcher to a transport send function. The clock is
// injected so throttling stays deterministic under test.
func NewDispatcher(send func([]byte) error, moveThrottle time.Duration, now func() time.Time, log zerolog.Logger) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		send:     send,
		throttle: ui.NewThrottler(moveThrottle, now()),
		log:      log,
		now:      now,
	}
}

// LastCommand returns the serialized form of the most recent command sent.
func (d *Dispatcher) LastCommand() string {
	return d.lastSent
}

// Play plays the hovered self card. The hover is cleared as soon as the
// command goes out, before the server responds.
func (d *Dispatcher) Play(st *State) bool {
	if st.Interaction.Focus.Kind != ui.FocusSelfCard {
		return false
	}
	index := st.Interaction.Focus.SelfIndex
	ok := d.sendCommand(proto.Command{
		Type: proto.CommandPlay,
		Play: &proto.PlayParams{CardIndex: index},
	})
	st.Interaction.ClearFocus()
	return ok
}

// Discard discards the hovered self card and clears the hover.
func (d *Dispatcher) Discard(st *State) bool {
	if st.Interaction.Focus.Kind != ui.FocusSelfCard {
		return false
	}
	index := st.Interaction.Focus.SelfIndex
	ok := d.sendCommand(proto.Command{
		Type:    proto.CommandDiscard,
		Discard: &proto.DiscardParams{CardIndex: index},
	})
	st.Interaction.ClearFocus()
	return ok
}

// HintColor hints the hovered other card's color to its owner.
func (d *Dispatcher) HintColor(st *State) bool {
	return d.hint(st, true)
}

// HintNumber hints the hovered other card's number to its owner.
func (d *Dispatcher) HintNumber(st *State) bool {
	return d.hint(st, false)
}

func (d *Dispatcher) hint(st *State, isColor bool) bool {
	if st.Interaction.Focus.Kind != ui.FocusOtherCard {
		return false
	}
	seat := st.Interaction.Focus.OtherSeat
	card, ok := st.Snapshot.PlayerCard(seat, st.Interaction.Focus.OtherCard)
	if !ok {
		return false
	}
	value := card.Number
	if isColor {
		value = card.Color
	}
	return d.sendCommand(proto.Command{
		Type: proto.CommandHint,
		Hint: &proto.HintParams{PlayerID: seat, IsColor: isColor, Value: value},
	})
}

// Flip turns a desk piece over. Static blocks are not flippable.
func (d *Dispatcher) Flip(st *State, target world.ID) bool {
	obj, ok := st.Snapshot.FindDeskObject(target)
	if !ok || !obj.Draggable() {
		return false
	}
	return d.sendCommand(proto.Command{
		Type: proto.CommandFlip,
		Flip: &proto.FlipParams{TargetID: string(target)},
	})
}

// DragMove records a pointer position during a drag. The object's would-be
// top-left corner (pointer minus grab offset) is offered to the throttler;
// the actual send happens on FlushMove.
func (d *Dispatcher) DragMove(st *State, pointerX, pointerY int) {
	drag := st.Interaction.Drag
	if drag == nil {
		return
	}
	d.throttle.Offer(ui.Position{
		X: pointerX - drag.GrabOffsetX,
		Y: pointerY - drag.GrabOffsetY,
	})
	d.FlushMove(st)
}

// FlushMove emits a pending move command once the throttle window allows it.
// Called from DragMove and from the loop's ticker, so a trailing position is
// sent even when the pointer goes quiet.
func (d *Dispatcher) FlushMove(st *State) bool {
	drag := st.Interaction.Drag
	if drag == nil {
		return false
	}
	pos, ok := d.throttle.Flush(d.now())
	if !ok {
		return false
	}
	return d.sendMove(drag.Object, pos)
}

// FinishDrag sends any pending position immediately; the final resting spot
// of a dropped piece must not be swallowed by the throttle window.
func (d *Dispatcher) FinishDrag(st *State) bool {
	drag := st.Interaction.Drag
	if drag == nil {
		return false
	}
	pos, ok := d.throttle.FlushPending(d.now())
	if !ok {
		return false
	}
	return d.sendMove(drag.Object, pos)
}

// ResetMove discards any position held back by the throttle. Called whenever
// a drag ends, normally or through snapshot invalidation, so the next drag
// starts with no leftover position to emit.
func (d *Dispatcher) ResetMove() {
	d.throttle.Reset()
}

func (d *Dispatcher) sendMove(target world.ID, pos ui.Position) bool {
	return d.sendCommand(proto.Command{
		Type: proto.CommandMove,
		Move: &proto.MoveParams{TargetID: string(target), X: pos.X, Y: pos.Y},
	})
}

// Rename submits a new name for the local player. Empty names are dropped.
func (d *Dispatcher) Rename(newName string) bool {
	if newName == "" {
		return false
	}
	return d.sendCommand(proto.Command{
		Type:   proto.CommandRename,
		Rename: &proto.RenameParams{NewName: newName},
	})
}

// Chat posts a chat line.
func (d *Dispatcher) Chat(text string) bool {
	return d.sendCommand(proto.Command{
		Type: proto.CommandChat,
		Chat: &proto.ChatParams{Text: text},
	})
}

func (d *Dispatcher) sendCommand(cmd proto.Command) bool {
	data, err := proto.EncodeCommand(cmd)
	if err != nil {
		d.log.Error().Err(err).Str("type", string(cmd.Type)).Msg("failed to encode command")
		return false
	}
	d.lastSent = string(data)
	d.log.Debug().RawJSON("command", data).Msg("dispatching command")
	if err := d.send(data); err != nil {
		// Best effort: the command may or may not reach the server.
		d.log.Warn().Err(err).Str("type", string(cmd.Type)).Msg("command send failed")
	}
	return true
}
