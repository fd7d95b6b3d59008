package gateway

import (
	"time"

	"codeberg.org/eldoria/server/internal/logger"
)

// creates a gateway with the given store and generation backend
func New(store TurnStore, narrator Narrator, genTimeout time.Duration) *Gateway {
	return &Gateway{
		sessions:   make(map[int64]*Session),
		store:      store,
		narrator:   narrator,
		genTimeout: genTimeout,
	}
}

// binds an authenticated connection to a new session and starts it.
// If the identity already has a live session, that session is shut down
// and fully settled before the new one starts, so there is never more
// than one writer for a user's turns and summary.
func (g *Gateway) Accept(userID int64, conn Conn) *Session {
	s := newSession(g, userID, conn)

	g.mu.Lock()
	prior := g.sessions[userID]
	g.sessions[userID] = s
	g.mu.Unlock()

	if prior != nil {
		logger.Info("superseding existing session",
			"user_id", userID,
		)

		prior.Shutdown("superseded by a new connection")
		<-prior.done
	}

	s.start()

	logger.Info("session started",
		"user_id", userID,
	)

	return s
}

// removes the session's registry entry if it still owns it.
// A superseded session no longer owns its entry, so this is a no-op for it.
func (g *Gateway) deregister(s *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessions[s.userID] == s {
		delete(g.sessions, s.userID)
	}
}

// returns the live session for an identity, nil if none
func (g *Gateway) ActiveSession(userID int64) *Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sessions[userID]
}

// returns the number of live sessions
func (g *Gateway) SessionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.sessions)
}

// shuts down all sessions and waits for each to settle.
// In-flight turns complete or fail on their own terms first.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	sessions := make([]*Session, 0, len(g.sessions))

	for _, s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.mu.Unlock()

	logger.Info("shutting down gateway", "session_count", len(sessions))

	for _, s := range sessions {
		s.Shutdown("server is shutting down")
	}

	for _, s := range sessions {
		<-s.done
	}
}
