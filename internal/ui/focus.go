package ui

import "hanabi/client/internal/world"

// FocusKind tags the single UI mode that owns the command palette. Only one
// mode is ever active; switching modes goes through the transition methods
// below so that stale combinations (hovering while renaming) cannot occur.
type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusSelfCard
	FocusOtherCard
	FocusRenaming
)

// Focus is the active UI mode plus its payload. SelfIndex is meaningful for
// FocusSelfCard, OtherSeat/OtherCard for FocusOtherCard.
type Focus struct {
	Kind      FocusKind
	SelfIndex int
	OtherSeat int
	OtherCard world.ID
}

// DragState tracks an in-progress desk drag. The grab offset is the pointer's
// distance from the object's top-left corner at grab time; drag-move events
// only carry the pointer position, so the offset is needed to recover the
// object's would-be corner.
type DragState struct {
	Object      world.ID
	GrabOffsetX int
	GrabOffsetY int
}

// Interaction is the purely local UI state. It is created once at startup and
// mutated only by intent handlers and by snapshot invalidation; it never
// travels to the server except by reference to identities that must stay
// valid.
type Interaction struct {
	Focus     Focus
	Drag      *DragState
	ChatDraft string
}

// HoverSelfCard focuses a card in the local hand. Ignored while the rename
// form is open.
func (in *Interaction) HoverSelfCard(index int) bool {
	if in.Focus.Kind == FocusRenaming {
		return false
	}
	in.Focus = Focus{Kind: FocusSelfCard, SelfIndex: index}
	return true
}

// HoverOtherCard focuses a card in another player's hand. Ignored while the
// rename form is open.
func (in *Interaction) HoverOtherCard(seat int, card world.ID) bool {
	if in.Focus.Kind == FocusRenaming {
		return false
	}
	in.Focus = Focus{Kind: FocusOtherCard, OtherSeat: seat, OtherCard: card}
	return true
}

// BeginRename opens the rename form. Only valid from a non-renaming state.
func (in *Interaction) BeginRename() bool {
	if in.Focus.Kind == FocusRenaming {
		return false
	}
	in.Focus = Focus{Kind: FocusRenaming}
	return true
}

// ClickOutside handles a pointer interaction outside any card or the name
// field: whatever mode is active is dismissed.
func (in *Interaction) ClickOutside() {
	in.Focus = Focus{}
}

// ClearFocus resets the mode, e.g. after a command was dispatched.
func (in *Interaction) ClearFocus() {
	in.Focus = Focus{}
}

// StartDrag begins dragging a desk object.
func (in *Interaction) StartDrag(object world.ID, grabOffsetX, grabOffsetY int) {
	in.Drag = &DragState{Object: object, GrabOffsetX: grabOffsetX, GrabOffsetY: grabOffsetY}
}

// EndDrag finishes the active drag, if any.
func (in *Interaction) EndDrag() {
	in.Drag = nil
}

// Invalidate clears every piece of interaction state that refers to an
// identity absent from the new snapshot. Stale references are self-healed
// here, before the next render; they are never reported as failures.
// It returns the number of references cleared.
func (in *Interaction) Invalidate(snap *world.Snapshot) int {
	cleared := 0

	switch in.Focus.Kind {
	case FocusSelfCard:
		hand := 0
		if snap != nil && len(snap.Players) > 0 {
			hand = len(snap.Players[0].Cards)
		}
		if in.Focus.SelfIndex < 0 || in.Focus.SelfIndex >= hand {
			in.Focus = Focus{}
			cleared++
		}
	case FocusOtherCard:
		if _, ok := snap.PlayerCard(in.Focus.OtherSeat, in.Focus.OtherCard); !ok {
			in.Focus = Focus{}
			cleared++
		}
	}

	if in.Drag != nil {
		if _, ok := snap.FindDeskObject(in.Drag.Object); !ok {
			in.Drag = nil
			cleared++
		}
	}

	return cleared
}
