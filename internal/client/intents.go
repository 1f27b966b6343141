package client

import (
	"hanabi/client/internal/ui"
	"hanabi/client/internal/world"
)

// IntentKind names a user intent. The loop resolves intents through a single
// dispatch table; there is no other path from input to the interaction state
// or the transport.
type IntentKind int

const (
	IntentHoverSelfCard IntentKind = iota
	IntentHoverOtherCard
	IntentClickOutside
	IntentBeginRename
	IntentSubmitRename
	IntentEditChatDraft
	IntentSubmitChat
	IntentPlay
	IntentDiscard
	IntentHintColor
	IntentHintNumber
	IntentFlip
	IntentDragStart
	IntentDragMove
	IntentDragEnd
	IntentDisconnect
)

// Intent is one user action delivered to the loop. Which fields matter
// depends on Kind: CardIndex for self hover, Seat+Card for other hover,
// Object for flip and drag-start, X/Y as grab offsets on drag-start and as
// the canvas-local pointer position on drag-move, Text for rename and chat.
type Intent struct {
	Kind      IntentKind
	Seat      int
	CardIndex int
	Card      string
	Object    string
	X         int
	Y         int
	Text      string
}

var intentHandlers = map[IntentKind]func(*Client, Intent){
	IntentHoverSelfCard:  (*Client).hoverSelfCard,
	IntentHoverOtherCard: (*Client).hoverOtherCard,
	IntentClickOutside:   (*Client).clickOutside,
	IntentBeginRename:    (*Client).beginRename,
	IntentSubmitRename:   (*Client).submitRename,
	IntentEditChatDraft:  (*Client).editChatDraft,
	IntentSubmitChat:     (*Client).submitChat,
	IntentPlay:           (*Client).play,
	IntentDiscard:        (*Client).discard,
	IntentHintColor:      (*Client).hintColor,
	IntentHintNumber:     (*Client).hintNumber,
	IntentFlip:           (*Client).flip,
	IntentDragStart:      (*Client).dragStart,
	IntentDragMove:       (*Client).dragMove,
	IntentDragEnd:        (*Client).dragEnd,
	IntentDisconnect:     (*Client).disconnect,
}

func (c *Client) handleIntent(in Intent) {
	handler, ok := intentHandlers[in.Kind]
	if !ok {
		c.log.Warn().Int("kind", int(in.Kind)).Msg("unknown intent")
		return
	}
	handler(c, in)
}

func (c *Client) hoverSelfCard(in Intent) {
	snap := c.state.Snapshot
	if snap == nil || len(snap.Players) == 0 {
		return
	}
	if in.CardIndex < 0 || in.CardIndex >= len(snap.Players[0].Cards) {
		return
	}
	c.state.Interaction.HoverSelfCard(in.CardIndex)
}

func (c *Client) hoverOtherCard(in Intent) {
	if in.Seat == 0 {
		return
	}
	if _, ok := c.state.Snapshot.PlayerCard(in.Seat, world.ID(in.Card)); !ok {
		return
	}
	c.state.Interaction.HoverOtherCard(in.Seat, world.ID(in.Card))
}

func (c *Client) clickOutside(Intent) {
	c.state.Interaction.ClickOutside()
}

func (c *Client) beginRename(Intent) {
	c.state.Interaction.BeginRename()
}

func (c *Client) submitRename(in Intent) {
	if c.state.Interaction.Focus.Kind != ui.FocusRenaming {
		return
	}
	c.dispatcher.Rename(in.Text)
	c.state.Interaction.ClearFocus()
}

func (c *Client) editChatDraft(in Intent) {
	c.state.Interaction.ChatDraft = in.Text
}

func (c *Client) submitChat(in Intent) {
	text := in.Text
	if text == "" {
		text = c.state.Interaction.ChatDraft
	}
	c.dispatcher.Chat(text)
	c.state.Interaction.ChatDraft = ""
}

func (c *Client) play(Intent) {
	c.dispatcher.Play(&c.state)
}

func (c *Client) discard(Intent) {
	c.dispatcher.Discard(&c.state)
}

func (c *Client) hintColor(Intent) {
	c.dispatcher.HintColor(&c.state)
}

func (c *Client) hintNumber(Intent) {
	c.dispatcher.HintNumber(&c.state)
}

func (c *Client) flip(in Intent) {
	c.dispatcher.Flip(&c.state, world.ID(in.Object))
}

func (c *Client) dragStart(in Intent) {
	obj, ok := c.state.Snapshot.FindDeskObject(world.ID(in.Object))
	if !ok || !obj.Draggable() {
		return
	}
	c.state.Interaction.StartDrag(obj.ID, in.X, in.Y)
}

func (c *Client) dragMove(in Intent) {
	c.dispatcher.DragMove(&c.state, in.X, in.Y)
}

func (c *Client) dragEnd(Intent) {
	c.dispatcher.FinishDrag(&c.state)
	c.state.Interaction.EndDrag()
	c.dispatcher.ResetMove()
}

func (c *Client) disconnect(Intent) {
	if err := c.transport.Close(); err != nil {
		c.log.Warn().Err(err).Msg("close failed")
	}
}
