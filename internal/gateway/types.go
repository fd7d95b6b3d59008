package gateway

import (
	"context"
	"errors"
	"sync"
	"time"
)

// message type constants for the adventure connection
const (
	// is sent to the client immediately after a successful handshake
	TypeConnectionAck = "connection_ack"

	// is sent when a turn completes and the narrative reply is persisted
	TypeAIResponse = "ai_response"

	// is sent when a turn fails after the player's action was received
	TypeTurnFailed = "turn_failed"

	// is sent for per-message protocol errors; the session stays open
	TypeError = "error"
)

// connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64 KB

	// buffered outbound messages before the connection is considered stuck
	sendBufferSize = 256

	// inbound turns queued while a turn is processing; reads block beyond this
	turnQueueSize = 16

	// bound on each store operation within a turn
	storeOpTimeout = 10 * time.Second
)

// session states
const (
	StateIdle       = "idle"
	StateProcessing = "processing"
	StateClosed     = "closed"
)

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// inbound message shape: one player action per message
type TurnRequest struct {
	PlayerAction       string `json:"player_action"`
	PreviousAIResponse string `json:"previous_ai_response"`
}

// connection acknowledgment sent after the handshake
type AckMessage struct {
	Type string `json:"type"`
}

// successful turn reply
type AIResponseMessage struct {
	Type             string `json:"type"`
	LatestAIResponse string `json:"latest_ai_response"`
}

// explicit failure notice for a turn that did not complete
type TurnFailedMessage struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// per-message protocol error; does not terminate the session
type ErrorMessage struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// the persistence surface the turn pipeline needs.
// Implemented by turns.Repository; tests inject fakes.
type TurnStore interface {
	AppendTurn(ctx context.Context, userID int64, message, role string) (int64, error)
	GetSummary(ctx context.Context, userID int64) (string, error)
	SetSummary(ctx context.Context, userID int64, summary string) error
}

// the generation backend surface the turn pipeline needs.
// Implemented by narrator.Client; tests inject fakes.
type Narrator interface {
	Generate(ctx context.Context, history, previousReply, playerAction string) (reply, newHistory string, err error)
}

// the subset of *websocket.Conn the session uses; tests inject fakes
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// accepts authenticated connections and enforces the single live session
// per identity. Entries are inserted when a session is accepted and removed
// when its teardown settles, never at the instant the socket closes.
type Gateway struct {
	mu         sync.Mutex
	sessions   map[int64]*Session
	store      TurnStore
	narrator   Narrator
	genTimeout time.Duration
}

// owns one authenticated connection's lifecycle: the turn queue, the
// Idle/Processing/Closed state machine, and the outbound pump.
type Session struct {
	userID  int64
	conn    Conn
	gateway *Gateway

	send  chan []byte
	turns chan TurnRequest

	// closed when the session should stop accepting work
	closing chan struct{}

	// closed once the in-flight turn has settled and the session is deregistered
	done chan struct{}

	closeOnce sync.Once

	mu    sync.RWMutex
	state string
}
