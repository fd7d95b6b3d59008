package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/gorilla/websocket"
)

// represents the current state of the TUI
type AppState int

const (
	StateAuth AppState = iota
	StateAdventure
)

// main TUI application model
type Model struct {
	state     AppState
	width     int
	height    int
	err       error
	auth      *AuthModel
	adventure *AdventureModel
	api       *APIClient
	ws        *WSClient
}

// sent when an unrecoverable error occurs
type ErrorMsg struct {
	err error
}

// login and signup screen model
type AuthModel struct {
	username   textinput.Model
	password   textinput.Model
	focusIndex int
	signup     bool
	submitting bool
	status     string
}

// sent when signin or signup succeeds
type AuthSuccessMsg struct {
	token    string
	username string
}

// sent when signin or signup fails
type AuthFailedMsg struct {
	err error
}

// a single entry in the adventure transcript
type StoryEntry struct {
	Role    string
	Content string
}

// adventure screen model
type AdventureModel struct {
	input              textinput.Model
	viewport           viewport.Model
	spinner            spinner.Model
	width              int
	height             int
	entries            []StoryEntry
	waiting            bool
	ready              bool
	shouldScrollBottom bool
	status             string
	lastReply          string
}

// sent once the adventure connection is established
type ConnectedMsg struct{}

// sent when connecting to the adventure server fails
type ConnectErrorMsg struct {
	err error
}

// sent when the stored conversation has been fetched
type HistoryMsg struct {
	entries []StoryEntry
}

// sent when the narrator replies to a turn
type TurnReplyMsg struct {
	reply string
}

// sent when a turn fails server-side
type TurnFailedMsg struct {
	message string
}

// sent when the connection closes, e.g. superseded by another session
type DisconnectedMsg struct {
	reason string
}

// manages the WebSocket connection to the adventure server
type WSClient struct {
	endpoint string
	token    string

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	incoming  chan serverMessage
}

// wire format of server-to-client messages
type serverMessage struct {
	Type          string `json:"type"`
	LatestAIReply string `json:"latest_ai_response,omitempty"`
	Error         string `json:"error,omitempty"`
	Message       string `json:"message,omitempty"`
}

// wire format of client-to-server turn messages
type turnMessage struct {
	PlayerAction       string `json:"player_action"`
	PreviousAIResponse string `json:"previous_ai_response"`
}

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsWriteWait  = 10 * time.Second
)
