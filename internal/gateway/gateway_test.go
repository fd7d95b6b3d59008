package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptRegistersSession(t *testing.T) {
	store := newFakeStore()
	narrator := &fakeNarrator{}
	gw := New(store, narrator, 5*time.Second)

	conn := newFakeConn()
	s := gw.Accept(42, conn)
	defer gw.Shutdown()

	require.NotNil(t, s)
	assert.Equal(t, s, gw.ActiveSession(42))
	assert.Equal(t, 1, gw.SessionCount())
	assert.Nil(t, gw.ActiveSession(99))
}

func TestSecondConnectionSupersedesFirst(t *testing.T) {
	store := newFakeStore()
	narrator := &fakeNarrator{}
	gw := New(store, narrator, 5*time.Second)

	connA := newFakeConn()
	sessionA := gw.Accept(1, connA)
	requireAck(t, connA)

	connB := newFakeConn()
	sessionB := gw.Accept(1, connB)
	defer gw.Shutdown()
	requireAck(t, connB)

	// the first session has fully settled
	waitDone(t, sessionA)
	assert.Equal(t, StateClosed, sessionA.State())

	// the new session owns the identity, alone
	assert.Equal(t, sessionB, gw.ActiveSession(1))
	assert.Equal(t, 1, gw.SessionCount())

	// and it serves turns normally
	sendAction(t, connB, "look around", "")
	msg := nextMessage(t, connB)
	require.Equal(t, TypeAIResponse, msg.Type)
	assert.Equal(t, "you look around", msg.LatestAIResponse)
}

func TestSupersedeWaitsForInFlightTurn(t *testing.T) {
	store := newFakeStore()
	store.summaries[1] = "prologue"
	narrator := &fakeNarrator{delay: 150 * time.Millisecond}
	gw := New(store, narrator, 5*time.Second)

	connA := newFakeConn()
	gw.Accept(1, connA)
	requireAck(t, connA)

	// start a turn on the first connection
	sendAction(t, connA, "light the torch", "")
	time.Sleep(50 * time.Millisecond)

	// reconnect while the turn is still generating; Accept blocks until
	// the old session settles, so the turn's effects are fully applied
	connB := newFakeConn()
	gw.Accept(1, connB)
	defer gw.Shutdown()

	assert.Len(t, store.turnsByRole("player"), 1)
	assert.Len(t, store.turnsByRole("ai"), 1)
	assert.Equal(t, "prologue|light the torch", store.summary(1))
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	store := newFakeStore()
	narrator := &fakeNarrator{}
	gw := New(store, narrator, 5*time.Second)
	defer gw.Shutdown()

	connA := newFakeConn()
	connB := newFakeConn()
	gw.Accept(1, connA)
	gw.Accept(2, connB)
	requireAck(t, connA)
	requireAck(t, connB)

	assert.Equal(t, 2, gw.SessionCount())

	sendAction(t, connA, "go west", "")
	sendAction(t, connB, "go east", "")

	msgA := nextMessage(t, connA)
	require.Equal(t, TypeAIResponse, msgA.Type)
	assert.Equal(t, "you go west", msgA.LatestAIResponse)

	msgB := nextMessage(t, connB)
	require.Equal(t, TypeAIResponse, msgB.Type)
	assert.Equal(t, "you go east", msgB.LatestAIResponse)

	// each user's turns landed under their own identity
	for _, turn := range store.turnsByRole("player") {
		switch turn.userID {
		case 1:
			assert.Equal(t, "go west", turn.message)
		case 2:
			assert.Equal(t, "go east", turn.message)
		default:
			t.Errorf("unexpected user id %d", turn.userID)
		}
	}
}

func TestGatewayShutdownSettlesAllSessions(t *testing.T) {
	store := newFakeStore()
	narrator := &fakeNarrator{}
	gw := New(store, narrator, 5*time.Second)

	sessions := make([]*Session, 0, 3)
	for userID := int64(1); userID <= 3; userID++ {
		conn := newFakeConn()
		sessions = append(sessions, gw.Accept(userID, conn))
		requireAck(t, conn)
	}

	require.Equal(t, 3, gw.SessionCount())

	gw.Shutdown()

	for _, s := range sessions {
		waitDone(t, s)
		assert.Equal(t, StateClosed, s.State())
	}

	assert.Equal(t, 0, gw.SessionCount())
}
