package ui

import "hanabi/client/internal/world"

type element struct {
	handle Handle
	class  Class
	attrs  Attrs
}

// Reconciler owns the identity → element mapping and keeps the visual tree
// minimally diffed against each snapshot: create on first sight, update in
// place when attributes change, remove hand cards whose identity vanished.
// It never asks
// the view layer whether an element exists; the mapping is the only truth.
type Reconciler struct {
	view     View
	elements map[world.ID]element
}

// NewReconciler returns a reconciler driving the given view.
func NewReconciler(view View) *Reconciler {
	return &Reconciler{
		view:     view,
		elements: make(map[world.ID]element),
	}
}

// Apply reconciles the visual tree with a snapshot. Hover decoration comes
// from the interaction state at render time. Objects are processed in
// snapshot order; a later write to the same identity overwrites attributes.
func (r *Reconciler) Apply(snap *world.Snapshot, in *Interaction) {
	if snap == nil {
		return
	}

	for _, obj := range snap.DeskObjects {
		class := ClassBlock
		if obj.Draggable() {
			class = ClassDeskItem
		}
		r.apply(obj.ID, class, Attrs{
			X:      obj.X,
			Y:      obj.Y,
			Width:  obj.Width,
			Height: obj.Height,
			Spirit: obj.SpiritID,
		})
	}

	seen := make(map[world.ID]struct{})
	for seat, player := range snap.Players {
		for slot, card := range player.Cards {
			seen[card.ID] = struct{}{}
			r.apply(card.ID, ClassPlayerCard, Attrs{
				Seat:    seat,
				Slot:    slot,
				Face:    cardFace(card, seat == 0),
				Hovered: hovered(in, seat, slot, card.ID),
			})
		}
	}

	// Hand cards leave play when played or discarded. Desk objects are never
	// removed once created; the server never deletes them either.
	for id, el := range r.elements {
		if el.class != ClassPlayerCard {
			continue
		}
		if _, ok := seen[id]; !ok {
			r.view.Remove(el.handle)
			delete(r.elements, id)
		}
	}
}

// apply creates or updates one element. Unchanged attributes issue no view
// operation at all, so a snapshot touching one object yields one update. An
// update on a handle the view no longer knows falls back to a fresh create;
// reconciliation never fails.
func (r *Reconciler) apply(id world.ID, class Class, attrs Attrs) {
	el, ok := r.elements[id]
	if ok {
		if attrs == el.attrs {
			return
		}
		if err := r.view.Update(el.handle, attrs); err == nil {
			r.elements[id] = element{handle: el.handle, class: el.class, attrs: attrs}
			return
		}
	}
	handle := r.view.Create(string(id), class, attrs)
	r.elements[id] = element{handle: handle, class: class, attrs: attrs}
}

// cardFace applies the information asymmetry: the local player's own cards
// show an attribute only once it has been hinted, even when the wire payload
// carries the true value. Everyone else's cards are fully visible.
func cardFace(card world.Card, self bool) Face {
	face := Face{Color: card.Color, Number: card.Number}
	if !self {
		return face
	}
	if !card.ColorHinted {
		face.Color = 0
	}
	if !card.NumberHinted {
		face.Number = 0
	}
	return face
}

func hovered(in *Interaction, seat, slot int, id world.ID) bool {
	if in == nil {
		return false
	}
	switch in.Focus.Kind {
	case FocusSelfCard:
		return seat == 0 && slot == in.Focus.SelfIndex
	case FocusOtherCard:
		return seat == in.Focus.OtherSeat && id == in.Focus.OtherCard
	default:
		return false
	}
}
