package protocol

import "encoding/json"

// Envelope is the wire framing for both directions: a type tag and a raw
// payload decoded according to the tag. Unknown types and payloads that fail
// to decode are dropped by the room, never propagated.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client → server message types.
const (
	MsgInput   = "input"
	MsgAbility = "ability"
)

// Server → client message types.
const (
	MsgWelcome  = "welcome"
	MsgState    = "state" // full snapshot keyframe
	MsgDiff     = "diff"
	MsgFinish   = "finish"
	MsgOpponent = "opponent" // opponent joined/left notices
)

// InputMsg carries movement and fire intent. Applied immediately on
// receipt.
type InputMsg struct {
	MoveX float64 `json:"mx"`
	MoveY float64 `json:"my"`
	Aim   float64 `json:"aim"`
	Focus bool    `json:"focus"`
	Fire  bool    `json:"fire"`
}

// AbilityMsg activates one of the three ability slots (1=dash, 2=bomb,
// 3=ultimate).
type AbilityMsg struct {
	Slot int `json:"slot"`
}

// WelcomeMsg confirms a join and tells the client its session id.
type WelcomeMsg struct {
	PlayerID string `json:"player_id"`
	RoomCode string `json:"room_code"`
}

// FinishMsg is sent once after the terminal tick, carrying the winner and
// the rating deltas returned by the rating service (absent when reporting
// failed or the match was abandoned).
type FinishMsg struct {
	WinnerID     string `json:"winner_id,omitempty"`
	Player1Delta *int   `json:"player1_delta,omitempty"`
	Player2Delta *int   `json:"player2_delta,omitempty"`
}

// OpponentMsg announces an opponent's connection state change.
type OpponentMsg struct {
	PlayerID  string `json:"player_id"`
	Connected bool   `json:"connected"`
}

// Encode wraps a payload into an envelope and marshals it.
func Encode(msgType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Data: data})
}
