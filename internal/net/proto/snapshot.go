package proto

import (
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"hanabi/client/internal/world"
)

// recordExtID is the msgpack extension type carrying positional records.
// Both record kinds share it; the field table is chosen by context.
const recordExtID = 0

const (
	handCardFields   = 5
	deskRecordFields = 9
)

// spiritBack is the sprite shown for a face-down desk piece. Face-up pieces
// derive their sprite from the color/number pair the same way the server
// names its card images.
const spiritBack = 100

// DecodeError reports a malformed or truncated snapshot payload. The caller
// keeps its previous snapshot; nothing is ever partially applied.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "proto: decode snapshot: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeSnapshot converts one inbound binary frame into a world snapshot.
// It is a pure transform: no I/O, no side effects, and on failure the input
// is reported as a *DecodeError with nothing else produced.
func DecodeSnapshot(data []byte) (*world.Snapshot, error) {
	var frame wireSnapshot
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		return nil, &DecodeError{Err: err}
	}

	snap := &world.Snapshot{
		Tick:          frame.Tick,
		HintTokens:    frame.HintTokens,
		MistakeTokens: frame.MistakeTokens,
		RemainingDeck: frame.RemainingDeck,
	}
	for _, p := range frame.Players {
		player := world.Player{Name: p.Name}
		for _, c := range p.Cards {
			player.Cards = append(player.Cards, world.Card(c))
		}
		snap.Players = append(snap.Players, player)
	}
	for _, o := range frame.DeskObjects {
		snap.DeskObjects = append(snap.DeskObjects, world.DeskObject(o))
	}
	for _, l := range frame.NewLogs {
		snap.NewLogEntries = append(snap.NewLogEntries, world.LogEntry{
			PlayerID: l.PlayerID,
			Text:     l.Text,
			IsChat:   l.IsChat,
		})
	}
	return snap, nil
}

// EncodeSnapshot renders a snapshot in the server's wire layout. The client
// never sends snapshots; this exists for test fixtures and replay tooling.
func EncodeSnapshot(s *world.Snapshot) ([]byte, error) {
	frame := wireSnapshot{
		Tick:          s.Tick,
		HintTokens:    s.HintTokens,
		MistakeTokens: s.MistakeTokens,
		RemainingDeck: s.RemainingDeck,
	}
	for _, p := range s.Players {
		wp := wirePlayer{Name: p.Name}
		for _, c := range p.Cards {
			wp.Cards = append(wp.Cards, wireHandCard(c))
		}
		frame.Players = append(frame.Players, wp)
	}
	for _, o := range s.DeskObjects {
		frame.DeskObjects = append(frame.DeskObjects, wireDeskEntry(o))
	}
	for _, l := range s.NewLogEntries {
		frame.NewLogs = append(frame.NewLogs, wireLogEntry{
			PlayerID: l.PlayerID,
			Text:     l.Text,
			IsChat:   l.IsChat,
		})
	}
	return msgpack.Marshal(frame)
}

type wireSnapshot struct {
	Tick          uint64          `msgpack:"TickNumber"`
	HintTokens    int             `msgpack:"HintTokenCount"`
	MistakeTokens int             `msgpack:"MistakeTokenCount"`
	RemainingDeck int             `msgpack:"RemainingDeckCount"`
	Players       []wirePlayer    `msgpack:"Players"`
	DeskObjects   []wireDeskEntry `msgpack:"DeskObjects"`
	NewLogs       []wireLogEntry  `msgpack:"NewLogs"`
}

type wirePlayer struct {
	Name  string         `msgpack:"Name"`
	Cards []wireHandCard `msgpack:"Cards"`
}

type wireLogEntry struct {
	PlayerID int    `msgpack:"PlayerId"`
	Text     string `msgpack:"Text"`
	IsChat   bool   `msgpack:"IsChat"`
}

// wireHandCard is the five-field positional record used inside hands:
// [identity, color, colorHinted, number, numberHinted].
type wireHandCard world.Card

var (
	_ msgpack.CustomDecoder = (*wireHandCard)(nil)
	_ msgpack.CustomEncoder = (*wireHandCard)(nil)
)

func (c *wireHandCard) DecodeMsgpack(d *msgpack.Decoder) error {
	n, err := decodeRecordHeader(d)
	if err != nil {
		return err
	}
	if n != handCardFields {
		return fmt.Errorf("hand card record has %d fields, want %d", n, handCardFields)
	}
	if c.ID, err = decodeIdentity(d); err != nil {
		return err
	}
	if c.Color, err = d.DecodeInt(); err != nil {
		return err
	}
	if c.ColorHinted, err = d.DecodeBool(); err != nil {
		return err
	}
	if c.Number, err = d.DecodeInt(); err != nil {
		return err
	}
	c.NumberHinted, err = d.DecodeBool()
	return err
}

func (c *wireHandCard) EncodeMsgpack(e *msgpack.Encoder) error {
	return encodeRecord(e, []any{
		identityValue(c.ID), c.Color, c.ColorHinted, c.Number, c.NumberHinted,
	})
}

// wireDeskEntry is one element of the desk list. A static block travels as a
// plain map; a game piece travels as the nine-field positional record
// [identity, x, y, width, height, color, colorHinted, number, numberHinted],
// with the sprite derived from the color/number pair.
type wireDeskEntry world.DeskObject

var (
	_ msgpack.CustomDecoder = (*wireDeskEntry)(nil)
	_ msgpack.CustomEncoder = (*wireDeskEntry)(nil)
)

func (o *wireDeskEntry) DecodeMsgpack(d *msgpack.Decoder) error {
	code, err := d.PeekCode()
	if err != nil {
		return err
	}
	if !msgpcode.IsExt(code) {
		return o.decodeBlock(d)
	}

	n, err := decodeRecordHeader(d)
	if err != nil {
		return err
	}
	if n != deskRecordFields {
		return fmt.Errorf("desk record has %d fields, want %d", n, deskRecordFields)
	}
	if o.ID, err = decodeIdentity(d); err != nil {
		return err
	}
	if o.X, err = d.DecodeInt(); err != nil {
		return err
	}
	if o.Y, err = d.DecodeInt(); err != nil {
		return err
	}
	if o.Width, err = d.DecodeInt(); err != nil {
		return err
	}
	if o.Height, err = d.DecodeInt(); err != nil {
		return err
	}
	var color, number int
	if color, err = d.DecodeInt(); err != nil {
		return err
	}
	if _, err = d.DecodeBool(); err != nil {
		return err
	}
	if number, err = d.DecodeInt(); err != nil {
		return err
	}
	if _, err = d.DecodeBool(); err != nil {
		return err
	}
	o.SpiritID = color*10 + number
	if o.SpiritID == 0 {
		o.SpiritID = spiritBack
	}
	return nil
}

func (o *wireDeskEntry) decodeBlock(d *msgpack.Decoder) error {
	var block struct {
		ID     any `msgpack:"Id"`
		X      int `msgpack:"X"`
		Y      int `msgpack:"Y"`
		Width  int `msgpack:"Width"`
		Height int `msgpack:"Height"`
	}
	if err := d.Decode(&block); err != nil {
		return err
	}
	id, err := identityToken(block.ID)
	if err != nil {
		return err
	}
	o.ID = id
	o.X = block.X
	o.Y = block.Y
	o.Width = block.Width
	o.Height = block.Height
	o.SpiritID = 0
	return nil
}

func (o *wireDeskEntry) EncodeMsgpack(e *msgpack.Encoder) error {
	if o.SpiritID == 0 {
		return e.Encode(struct {
			ID     any `msgpack:"Id"`
			X      int `msgpack:"X"`
			Y      int `msgpack:"Y"`
			Width  int `msgpack:"Width"`
			Height int `msgpack:"Height"`
		}{identityValue(o.ID), o.X, o.Y, o.Width, o.Height})
	}
	color, number := o.SpiritID/10, o.SpiritID%10
	return encodeRecord(e, []any{
		identityValue(o.ID), o.X, o.Y, o.Width, o.Height,
		color, false, number, false,
	})
}

// decodeRecordHeader consumes the extension header and the inner array
// length of a positional record.
func decodeRecordHeader(d *msgpack.Decoder) (int, error) {
	extID, _, err := d.DecodeExtHeader()
	if err != nil {
		return 0, err
	}
	if extID != recordExtID {
		return 0, fmt.Errorf("unexpected extension type %d, want %d", extID, recordExtID)
	}
	return d.DecodeArrayLen()
}

// encodeRecord writes a positional record: extension header followed by the
// field array as the extension payload.
func encodeRecord(e *msgpack.Encoder, fields []any) error {
	payload, err := msgpack.Marshal(fields)
	if err != nil {
		return err
	}
	if err := e.EncodeExtHeader(recordExtID, len(payload)); err != nil {
		return err
	}
	_, err = e.Writer().Write(payload)
	return err
}

// decodeIdentity normalizes a wire identity to its string token. The server
// assigns numeric ids; older drafts used strings.
func decodeIdentity(d *msgpack.Decoder) (world.ID, error) {
	v, err := d.DecodeInterface()
	if err != nil {
		return "", err
	}
	return identityToken(v)
}

func identityToken(v any) (world.ID, error) {
	switch t := v.(type) {
	case string:
		return world.ID(t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return world.ID(fmt.Sprint(t)), nil
	default:
		return "", fmt.Errorf("invalid identity %v (%T)", v, v)
	}
}

// identityValue restores a numeric wire id when the token parses as one.
func identityValue(id world.ID) any {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return n
	}
	return string(id)
}
