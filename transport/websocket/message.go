package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionSessionNew   = "session:new"
	actionSessionGet   = "session:get"
	actionSessionMove  = "session:move"
	actionSessionReset = "session:reset"
	actionSessionAI    = "session:ai"
	actionSessionScore = "session:score"
)

var (
	errBadMessage      = errors.New("invalid message")
	errUnknownAction   = errors.New("unknown action")
	errSessionRequired = errors.New("session_id is required")
	errCellRequired    = errors.New("cell is required")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID string       `json:"session_id,omitempty"`
	Cell      *entity.Cell `json:"cell,omitempty"`
}

// ResponsePayload is sent back for every request. Error is set instead of
// the other fields when the action failed.
type ResponsePayload struct {
	Session *entity.Session    `json:"session,omitempty"`
	Turn    *entity.TurnResult `json:"turn,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type reply struct {
	Action  string           `json:"action"`
	Payload *ResponsePayload `json:"payload"`
}

func newReply(action string, payload *ResponsePayload) reply {
	return reply{Action: action, Payload: payload}
}
