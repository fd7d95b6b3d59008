package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// in-memory connection for driving a session without a network
type fakeConn struct {
	inbound  chan []byte
	outbound chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound:  make(chan []byte, 16),
		outbound: make(chan []byte, 64),
		closed:   make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-c.inbound:
		return websocket.TextMessage, msg, nil
	case <-c.closed:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return errors.New("use of closed connection")
	default:
	}

	if messageType == websocket.TextMessage {
		c.outbound <- data
	}

	return nil
}

func (c *fakeConn) SetReadLimit(limit int64)            {}
func (c *fakeConn) SetReadDeadline(t time.Time) error   { return nil }
func (c *fakeConn) SetWriteDeadline(t time.Time) error  { return nil }
func (c *fakeConn) SetPongHandler(h func(string) error) {}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
	})

	return nil
}

type storedTurn struct {
	userID  int64
	message string
	role    string
}

// in-memory store that records the order of operations
type fakeStore struct {
	mu        sync.Mutex
	turns     []storedTurn
	summaries map[int64]string
	ops       []string
	nextID    int64

	failAppendRole string
	failGetSummary bool
	failSetSummary bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		summaries: make(map[int64]string),
	}
}

func (s *fakeStore) AppendTurn(ctx context.Context, userID int64, message, role string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAppendRole == role {
		return 0, fmt.Errorf("append %s turn: store unavailable", role)
	}

	s.nextID++
	s.turns = append(s.turns, storedTurn{userID: userID, message: message, role: role})
	s.ops = append(s.ops, "append:"+role)

	return s.nextID, nil
}

func (s *fakeStore) GetSummary(ctx context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failGetSummary {
		return "", errors.New("get summary: store unavailable")
	}

	s.ops = append(s.ops, "get_summary")

	return s.summaries[userID], nil
}

func (s *fakeStore) SetSummary(ctx context.Context, userID int64, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSetSummary {
		return errors.New("set summary: store unavailable")
	}

	s.summaries[userID] = summary
	s.ops = append(s.ops, "set_summary")

	return nil
}

func (s *fakeStore) summary(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summaries[userID]
}

func (s *fakeStore) turnsByRole(role string) []storedTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []storedTurn
	for _, turn := range s.turns {
		if turn.role == role {
			out = append(out, turn)
		}
	}

	return out
}

func (s *fakeStore) opLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.ops...)
}

type narratorCall struct {
	history       string
	previousReply string
	playerAction  string
}

// scripted generation backend that tracks call concurrency
type fakeNarrator struct {
	mu          sync.Mutex
	calls       []narratorCall
	inFlight    int
	maxInFlight int

	delay time.Duration
	err   error
}

func (n *fakeNarrator) Generate(ctx context.Context, history, previousReply, playerAction string) (string, string, error) {
	n.mu.Lock()
	n.inFlight++
	if n.inFlight > n.maxInFlight {
		n.maxInFlight = n.inFlight
	}
	n.calls = append(n.calls, narratorCall{
		history:       history,
		previousReply: previousReply,
		playerAction:  playerAction,
	})
	delay := n.delay
	failure := n.err
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		n.inFlight--
		n.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}

	if failure != nil {
		return "", "", failure
	}

	reply := "you " + playerAction
	return reply, history + "|" + playerAction, nil
}

func (n *fakeNarrator) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.calls)
}

func (n *fakeNarrator) callAt(i int) narratorCall {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.calls[i]
}

func (n *fakeNarrator) setError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.err = err
}

func (n *fakeNarrator) maxConcurrency() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.maxInFlight
}
