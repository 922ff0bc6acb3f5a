package server

import (
	"encoding/json"

	"github.com/vango-dev/tooltip/internal/errors"
)

// Message types.
const (
	MsgEvent = "event"
	MsgHTML  = "html"
	MsgError = "error"
)

// ClientMessage is a frame sent by the browser.
type ClientMessage struct {
	Type  string `json:"t"`
	HID   string `json:"hid,omitempty"`
	Event string `json:"e,omitempty"`
}

// ServerMessage is a frame sent to the browser.
type ServerMessage struct {
	Type    string `json:"t"`
	HTML    string `json:"html,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeClientMessage parses and validates a client frame.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("E200").Wrap(err)
	}
	switch msg.Type {
	case MsgEvent:
		if msg.HID == "" || msg.Event == "" {
			return msg, errors.New("E200").WithDetail("event frames need hid and e")
		}
		return msg, nil
	case "":
		return msg, errors.New("E200").WithDetail("missing message type")
	default:
		return msg, errors.New("E202").WithDetailf("unsupported message type %q", msg.Type)
	}
}

// errorMessage converts err to an error frame.
func errorMessage(err error) ServerMessage {
	te := errors.FromError(err, "E200")
	msg := te.Message
	if te.Detail != "" {
		msg += ": " + te.Detail
	}
	return ServerMessage{Type: MsgError, Code: te.Code, Message: msg}
}
