package tui

import (
	"fmt"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

const (
	typeConnectionAck = "connection_ack"
	typeAIResponse    = "ai_response"
	typeTurnFailed    = "turn_failed"
	typeError         = "error"
)

// creates a new WebSocket client for the adventure connection
func NewWSClient(token string) *WSClient {
	endpoint := os.Getenv("ELDORIA_WS_ENDPOINT")
	if endpoint == "" {
		endpoint = "ws://localhost:8080/api/v1/ws"
	}

	return &WSClient{
		endpoint: endpoint,
		token:    token,
		incoming: make(chan serverMessage, 8),
	}
}

// establishes the WebSocket connection and waits for the ack
func (c *WSClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}

	// the token rides in the query string, the browser WebSocket API
	// cannot set an Authorization header
	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait)) //nolint:errcheck
		return nil
	})

	conn.SetReadDeadline(time.Now().Add(wsPongWait)) //nolint:errcheck

	// the server acknowledges before accepting turns
	var ack serverMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close() //nolint:errcheck
		return fmt.Errorf("failed to read ack: %w", err)
	}

	if ack.Type != typeConnectionAck {
		conn.Close() //nolint:errcheck
		return fmt.Errorf("unexpected first message: %s", ack.Type)
	}

	c.conn = conn
	c.connected = true

	go c.readPump()
	go c.pingPump()

	return nil
}

// sends periodic pings to keep the connection alive
func (c *WSClient) pingPump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		<-ticker.C
		c.mu.Lock()

		if !c.connected || c.conn == nil {
			c.mu.Unlock()
			return
		}

		c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)) //nolint:errcheck
		if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// continuously reads messages and forwards them to the UI
func (c *WSClient) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		if c.conn != nil {
			c.conn.Close() //nolint:errcheck
		}
		c.mu.Unlock()
		close(c.incoming)
	}()

	for {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait)) //nolint:errcheck

		var msg serverMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		c.incoming <- msg
	}
}

// sends a turn to the server
func (c *WSClient) SendTurn(playerAction, previousReply string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.conn == nil {
		return fmt.Errorf("not connected")
	}

	c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)) //nolint:errcheck
	return c.conn.WriteJSON(turnMessage{
		PlayerAction:       playerAction,
		PreviousAIResponse: previousReply,
	})
}

// returns whether the client is connected
func (c *WSClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// closes the WebSocket connection
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close() //nolint:errcheck
		c.conn = nil
	}
	c.connected = false
}

// returns a tea.Cmd that establishes the connection
func (c *WSClient) ConnectCmd() tea.Cmd {
	return func() tea.Msg {
		if err := c.Connect(); err != nil {
			return ConnectErrorMsg{err: err}
		}

		return ConnectedMsg{}
	}
}

// returns a tea.Cmd that waits for the next server message
func (c *WSClient) ReceiveCmd() tea.Cmd {
	return func() tea.Msg {
		for {
			msg, ok := <-c.incoming
			if !ok {
				return DisconnectedMsg{reason: "connection closed"}
			}

			switch msg.Type {
			case typeAIResponse:
				return TurnReplyMsg{reply: msg.LatestAIReply}

			case typeTurnFailed:
				reason := msg.Message
				if reason == "" {
					reason = msg.Error
				}
				return TurnFailedMsg{message: reason}

			case typeError:
				return DisconnectedMsg{reason: msg.Message}
			}

			// unknown message type, keep listening
		}
	}
}
