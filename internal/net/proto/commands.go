package proto

import (
	"encoding/json"
	"fmt"
)

// CommandType names an outbound command. The values double as the envelope
// type tag the server switches on.
type CommandType string

const (
	CommandPlay    CommandType = "play"
	CommandDiscard CommandType = "discard"
	CommandHint    CommandType = "hint"
	CommandFlip    CommandType = "flip"
	CommandMove    CommandType = "move"
	CommandRename  CommandType = "rename"
	CommandChat    CommandType = "chat"
)

// PlayParams plays a card from the local hand by index.
type PlayParams struct {
	CardIndex int `json:"cardIndex"`
}

// DiscardParams discards a card from the local hand by index.
type DiscardParams struct {
	CardIndex int `json:"cardIndex"`
}

// HintParams reveals one attribute of another player's cards. PlayerID is
// the seat relative to the sender; the server translates it.
type HintParams struct {
	PlayerID int  `json:"playerId"`
	IsColor  bool `json:"isColor"`
	Value    int  `json:"value"`
}

// FlipParams turns a desk piece over.
type FlipParams struct {
	TargetID string `json:"targetId"`
}

// MoveParams repositions a desk piece. X and Y are the piece's would-be
// top-left corner in canvas coordinates.
type MoveParams struct {
	TargetID string `json:"targetId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// RenameParams changes the local player's name.
type RenameParams struct {
	NewName string `json:"newName"`
}

// ChatParams posts a chat line.
type ChatParams struct {
	Text string `json:"text"`
}

// Command is a tagged union of the outbound command payloads. Exactly the
// pointer matching Type must be set.
type Command struct {
	Type    CommandType
	Play    *PlayParams
	Discard *DiscardParams
	Hint    *HintParams
	Flip    *FlipParams
	Move    *MoveParams
	Rename  *RenameParams
	Chat    *ChatParams
}

type commandEnvelope struct {
	Type   CommandType `json:"type"`
	Params any         `json:"params"`
}

// EncodeCommand renders a command as the UTF-8 JSON envelope the server
// expects on its text frames.
func EncodeCommand(cmd Command) ([]byte, error) {
	params, err := commandParams(cmd)
	if err != nil {
		return nil, err
	}
	return json.Marshal(commandEnvelope{Type: cmd.Type, Params: params})
}

func commandParams(cmd Command) (any, error) {
	switch cmd.Type {
	case CommandPlay:
		if cmd.Play == nil {
			return nil, fmt.Errorf("proto: play command without params")
		}
		return cmd.Play, nil
	case CommandDiscard:
		if cmd.Discard == nil {
			return nil, fmt.Errorf("proto: discard command without params")
		}
		return cmd.Discard, nil
	case CommandHint:
		if cmd.Hint == nil {
			return nil, fmt.Errorf("proto: hint command without params")
		}
		return cmd.Hint, nil
	case CommandFlip:
		if cmd.Flip == nil {
			return nil, fmt.Errorf("proto: flip command without params")
		}
		return cmd.Flip, nil
	case CommandMove:
		if cmd.Move == nil {
			return nil, fmt.Errorf("proto: move command without params")
		}
		return cmd.Move, nil
	case CommandRename:
		if cmd.Rename == nil {
			return nil, fmt.Errorf("proto: rename command without params")
		}
		return cmd.Rename, nil
	case CommandChat:
		if cmd.Chat == nil {
			return nil, fmt.Errorf("proto: chat command without params")
		}
		return cmd.Chat, nil
	default:
		return nil, fmt.Errorf("proto: unknown command type %q", cmd.Type)
	}
}
