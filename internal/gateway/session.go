package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"codeberg.org/eldoria/server/eldoria/turns"
	"codeberg.org/eldoria/server/internal/errors"
	"codeberg.org/eldoria/server/internal/logger"
)

func newSession(g *Gateway, userID int64, conn Conn) *Session {
	return &Session{
		userID:  userID,
		conn:    conn,
		gateway: g,
		send:    make(chan []byte, sendBufferSize),
		turns:   make(chan TurnRequest, turnQueueSize),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
		state:   StateIdle,
	}
}

// returns the session's identity
func (s *Session) UserID() int64 {
	return s.userID
}

// returns the current state of the turn state machine
func (s *Session) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Session) setState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// closed once the session has fully settled and deregistered
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// queues the connection acknowledgment and starts the session's pumps
func (s *Session) start() {
	s.enqueueJSON(AckMessage{Type: TypeConnectionAck}) //nolint:errcheck // fresh buffer cannot be full

	go s.readPump()
	go s.writePump()
	go s.runTurns()
}

// signals the session to stop and closes the underlying connection.
// The in-flight turn, if any, settles before the session deregisters.
func (s *Session) Shutdown(reason string) {
	s.enqueueJSON(ErrorMessage{ //nolint:errcheck // best-effort notice
		Type:    TypeError,
		Error:   "connection_closed",
		Message: reason,
	})

	s.close()
}

// signals teardown. The connection itself is closed by the write pump
// after it drains queued messages, so closure notices still go out.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.closing)
	})
}

// reads inbound messages and feeds valid turns to the queue in order.
// A message that fails to parse is rejected with a protocol error and the
// session stays idle; no turn is started for it.
func (s *Session) readPump() {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	for {
		_, messageBytes, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error",
					"user_id", s.userID,
					"error", err,
				)
			}

			return
		}

		var req TurnRequest
		if err := json.Unmarshal(messageBytes, &req); err != nil {
			s.enqueueJSON(ErrorMessage{ //nolint:errcheck // best-effort notice
				Type:    TypeError,
				Error:   errors.CodeBadRequest,
				Message: "invalid message format",
				Details: err.Error(),
			})

			continue
		}

		// queue the turn; blocks when the queue is full so rapid input is
		// processed in order rather than dropped
		select {
		case s.turns <- req:
		case <-s.closing:
			return
		}
	}
}

// writes queued outbound messages and keeps the connection alive
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)

	// closing the connection here also unblocks the read pump
	defer func() {
		ticker.Stop()
		s.close()
		s.conn.Close() //nolint:errcheck,gosec // G104: close cleanup
	}()

	for {
		select {
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing

			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closing:
			// drain anything already queued before the connection goes away
			for {
				select {
				case message := <-s.send:
					s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

					if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
						return
					}
				default:
					s.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck,gosec // G104: close message
					return
				}
			}
		}
	}
}

// processes queued turns strictly one at a time. Shutdown is observed
// between turns, never in the middle of one: the in-flight turn settles
// (success or failure path fully applied) before teardown.
func (s *Session) runTurns() {
	defer func() {
		s.setState(StateClosed)
		s.gateway.deregister(s)
		close(s.done)

		logger.Info("session closed",
			"user_id", s.userID,
		)
	}()

	for {
		select {
		case <-s.closing:
			return
		default:
		}

		select {
		case <-s.closing:
			return
		case req := <-s.turns:
			s.setState(StateProcessing)
			s.processTurn(req)
			s.setState(StateIdle)
		}
	}
}

// runs one turn: append the player's action, read the rolling summary,
// call the narrator, append the reply, overwrite the summary, and only
// then emit the reply. Any failure sends an explicit turn_failed notice
// instead; a failed turn never overwrites the summary or emits a reply.
func (s *Session) processTurn(req TurnRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
	defer cancel()

	if _, err := s.gateway.store.AppendTurn(ctx, s.userID, req.PlayerAction, turns.RolePlayer); err != nil {
		logger.ErrorErr(err, "failed to append player turn",
			"user_id", s.userID,
		)

		s.sendTurnFailed(errors.CodeStoreError, "failed to record your action")
		return
	}

	summary, err := s.gateway.store.GetSummary(ctx, s.userID)
	if err != nil {
		logger.ErrorErr(err, "failed to read summary",
			"user_id", s.userID,
		)

		s.sendTurnFailed(errors.CodeStoreError, "failed to load your adventure")
		return
	}

	genCtx, genCancel := context.WithTimeout(context.Background(), s.gateway.genTimeout)
	defer genCancel()

	reply, newHistory, err := s.gateway.narrator.Generate(genCtx, summary, req.PreviousAIResponse, req.PlayerAction)
	if err != nil {
		logger.ErrorErr(err, "narrator call failed",
			"user_id", s.userID,
		)

		s.sendTurnFailed(errors.CodeGenerationFailed, "the narrator is unavailable; your action was recorded")
		return
	}

	persistCtx, persistCancel := context.WithTimeout(context.Background(), storeOpTimeout)
	defer persistCancel()

	if _, err := s.gateway.store.AppendTurn(persistCtx, s.userID, reply, turns.RoleAI); err != nil {
		logger.ErrorErr(err, "failed to append ai turn",
			"user_id", s.userID,
		)

		s.sendTurnFailed(errors.CodeStoreError, "failed to record the narrator's reply")
		return
	}

	if err := s.gateway.store.SetSummary(persistCtx, s.userID, newHistory); err != nil {
		logger.ErrorErr(err, "failed to write summary",
			"user_id", s.userID,
		)

		s.sendTurnFailed(errors.CodeStoreError, "failed to save your adventure")
		return
	}

	s.enqueueJSON(AIResponseMessage{ //nolint:errcheck // overflow closes the session
		Type:             TypeAIResponse,
		LatestAIResponse: reply,
	})
}

func (s *Session) sendTurnFailed(code, message string) {
	s.enqueueJSON(TurnFailedMessage{ //nolint:errcheck // best-effort notice
		Type:    TypeTurnFailed,
		Error:   code,
		Message: message,
	})
}

// marshals a message onto the send queue. A full queue means the client
// has stopped reading; the session is closed rather than blocked.
func (s *Session) enqueueJSON(msg any) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-s.closing:
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- messageBytes:
		return nil
	default:
		logger.Warn("send buffer full, closing session",
			"user_id", s.userID,
		)

		s.close()
		return ErrSendBufferFull
	}
}
