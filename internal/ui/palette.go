package ui

// Rect is an axis-aligned layout rectangle in page coordinates, as reported
// by the view layer.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// AnchorSide says which side of the hovered hand the command palette hangs
// off.
type AnchorSide int

const (
	AnchorLeft AnchorSide = iota
	AnchorRight
)

// PaletteAnchor positions the hint palette next to a hovered card. Top is
// relative to the canvas; Offset is the distance from the hand's edge on the
// chosen side.
type PaletteAnchor struct {
	Top    int
	Side   AnchorSide
	Offset int
}

// AnchorPalette computes the palette anchor for a hovered card in another
// player's hand. Seats 1 and 2 anchor left of the hand, seats 3 and 4 right.
func AnchorPalette(seat int, card, hand, canvas Rect) PaletteAnchor {
	anchor := PaletteAnchor{
		Top:    card.Y - canvas.Y,
		Offset: hand.Width,
	}
	if seat >= 3 {
		anchor.Side = AnchorRight
	} else {
		anchor.Side = AnchorLeft
	}
	return anchor
}
