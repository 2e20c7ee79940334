package game

// Outbound event names. These are the logical notifications the session emits;
// the transport layer decides how they go over the wire.
const (
	EvtAdminStatus    = "admin-status"
	EvtAdminExists    = "admin-exists"
	EvtGameStatus     = "game-status"
	EvtPlayersUpdated = "players-updated"
	EvtGameStarted    = "game-started"
	EvtNumberCalled   = "number-called"
	EvtWinner         = "winner"
	EvtGameEnded      = "game-ended"
	EvtGameError      = "game-error"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Publisher is the outbound half of the event gateway. Implementations must
// never block: the session publishes while holding its lock and a stalled
// connection must not stall the draw loop.
type Publisher interface {
	// Broadcast delivers an event to every live connection.
	Broadcast(evt Event)
	// SendTo delivers an event to one connection; unknown ids are dropped.
	SendTo(connID string, evt Event)
	// Kick flushes pending events to a connection and then closes it.
	Kick(connID string)
}

type AdminStatusPayload struct {
	Exists bool `json:"exists"`
}

type StatusPayload struct {
	Started       bool     `json:"started"`
	State         string   `json:"state"`
	CalledNumbers []int    `json:"calledNumbers"`
	Winners       []string `json:"winners"`
}

type PlayerPayload struct {
	Nickname string `json:"nickname"`
	Cards    []Card `json:"cards"`
}

type NumberCalledPayload struct {
	Number int `json:"number"`
}

type WinnerPayload struct {
	Nickname string `json:"nickname"`
	Cards    []Card `json:"cards"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
