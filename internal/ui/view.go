package ui

import "errors"

// Class is the semantic kind of a visual element.
type Class string

const (
	ClassDeskItem   Class = "deskItem"
	ClassBlock      Class = "block"
	ClassPlayerCard Class = "playerCard"
)

// Face is the visible card face. A zero component is concealed; the view
// layer draws the card back or a neutral placeholder for it.
type Face struct {
	Color  int
	Number int
}

// Attrs are the element attributes that may change after creation. Position
// and size apply to desk elements; Seat and Slot place hand cards; Hovered is
// derived from the interaction state at render time and never stored.
type Attrs struct {
	X       int
	Y       int
	Width   int
	Height  int
	Spirit  int
	Face    Face
	Seat    int
	Slot    int
	Hovered bool
}

// Handle is an opaque reference to a live visual element, owned by the view
// layer. The reconciler only stores and returns it.
type Handle = any

// ErrMissingElement is returned by Update when the element disappeared out
// of band; the reconciler responds by recreating it.
var ErrMissingElement = errors.New("ui: element missing")

// View is the pixel-level layer the reconciler drives. Implementations paint
// however they like; the reconciler guarantees it never creates two elements
// for one identity and never updates a handle it did not create.
type View interface {
	Create(id string, class Class, attrs Attrs) Handle
	Update(handle Handle, attrs Attrs) error
	Remove(handle Handle)
}
