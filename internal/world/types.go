package world

import "fmt"

// ID is a server-assigned token identifying one game object for its whole
// lifetime. The reconciler keys on it, never on array position.
type ID string

// Card is a single hand card. For the local player's own hand Color and
// Number may be populated on the wire but must not be shown unless the
// matching hinted flag is set; concealment happens at render time.
type Card struct {
	ID           ID
	Color        int
	ColorHinted  bool
	Number       int
	NumberHinted bool
}

// Player is one seat at the table. Seat 0 is always the local player.
type Player struct {
	Name  string
	Cards []Card
}

// DeskObject is a free-standing piece on the shared play surface. A
// SpiritID of zero marks a static decorative block; anything else is a
// flippable, draggable game piece.
type DeskObject struct {
	ID      ID
	X       int
	Y       int
	Width   int
	Height  int
	SpiritID int
}

// Draggable reports whether the object accepts flip and move commands.
func (o DeskObject) Draggable() bool {
	return o.SpiritID != 0
}

// LogEntry is one line of the table log, either chat or a system message.
type LogEntry struct {
	PlayerID int
	Text     string
	IsChat   bool
}

// Snapshot is the complete world state at one tick. The server replaces it
// wholesale on every message; nothing is ever patched in place. NewLogEntries
// carries only the lines appended since the previous snapshot and is consumed
// once by the synchronization loop.
type Snapshot struct {
	Tick          uint64
	HintTokens    int
	MistakeTokens int
	RemainingDeck int
	Players       []Player
	DeskObjects   []DeskObject
	NewLogEntries []LogEntry
}

// PlayerCard returns the card with the given identity in the given seat's
// hand.
func (s *Snapshot) PlayerCard(seat int, id ID) (Card, bool) {
	if s == nil || seat < 0 || seat >= len(s.Players) {
		return Card{}, false
	}
	for _, c := range s.Players[seat].Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// HasCard reports whether any hand in the snapshot holds the identity.
func (s *Snapshot) HasCard(id ID) bool {
	if s == nil {
		return false
	}
	for seat := range s.Players {
		if _, ok := s.PlayerCard(seat, id); ok {
			return true
		}
	}
	return false
}

// FindDeskObject returns the desk object with the given identity.
func (s *Snapshot) FindDeskObject(id ID) (DeskObject, bool) {
	if s == nil {
		return DeskObject{}, false
	}
	for _, o := range s.DeskObjects {
		if o.ID == id {
			return o, true
		}
	}
	return DeskObject{}, false
}

// StatusLine renders the counters the way the table header shows them.
func (s *Snapshot) StatusLine() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("tick=%d hint_token=%d mistake_token=%d deck_cards=%d",
		s.Tick, s.HintTokens, s.MistakeTokens, s.RemainingDeck)
}

var colorNames = []string{
	"UNKNOWN COLOR",
	"Purple",
	"Sky Blue",
	"Orange",
	"Magenta",
	"Green",
}

// ColorName returns the display name for a card color index. Index zero is
// the concealed/unknown color.
func ColorName(color int) string {
	if color < 0 || color >= len(colorNames) {
		return colorNames[0]
	}
	return colorNames[color]
}
