package websocket

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/eldoria/server/internal/auth"
	"codeberg.org/eldoria/server/internal/gateway"
)

// in-memory store for integration tests
type memStore struct {
	mu        sync.Mutex
	turns     []string
	summaries map[int64]string
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{summaries: make(map[int64]string)}
}

func (s *memStore) AppendTurn(ctx context.Context, userID int64, message, role string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.turns = append(s.turns, role+":"+message)

	return s.nextID, nil
}

func (s *memStore) GetSummary(ctx context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summaries[userID], nil
}

func (s *memStore) SetSummary(ctx context.Context, userID int64, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[userID] = summary

	return nil
}

// echo-style generation backend for integration tests
type memNarrator struct{}

func (n *memNarrator) Generate(ctx context.Context, history, previousReply, playerAction string) (string, string, error) {
	return "you " + playerAction, history + "|" + playerAction, nil
}

type wireMessage struct {
	Type             string `json:"type"`
	LatestAIResponse string `json:"latest_ai_response"`
	Error            string `json:"error"`
	Message          string `json:"message"`
}

func setupTestServer(t *testing.T) (*httptest.Server, *gateway.Gateway) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	gw := gateway.New(newMemStore(), &memNarrator{}, 5*time.Second)

	v1 := router.Group("/api/v1")
	RegisterRoutes(v1, gw)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		gw.Shutdown()
		server.Close()
	})

	return server, gw
}

func wsURL(server *httptest.Server, token string) string {
	url := strings.Replace(server.URL, "http://", "ws://", 1) + "/api/v1/ws"
	if token != "" {
		url += "?token=" + token
	}

	return url
}

func dial(t *testing.T, server *httptest.Server, token string) *gorilla.Conn {
	t.Helper()

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL(server, token), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close() //nolint:errcheck // test cleanup
	})

	return conn
}

func readWire(t *testing.T, conn *gorilla.Conn) wireMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))

	return msg
}

func TestAdventureHandler_RejectsMissingToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing") //nolint:errcheck // test fixture
	defer os.Unsetenv("JWT_SECRET")                        //nolint:errcheck // test cleanup

	server, gw := setupTestServer(t)

	_, resp, err := gorilla.DefaultDialer.Dial(wsURL(server, ""), nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	// no session state was created for the refused handshake
	assert.Equal(t, 0, gw.SessionCount())
}

func TestAdventureHandler_RejectsInvalidToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing") //nolint:errcheck // test fixture
	defer os.Unsetenv("JWT_SECRET")                        //nolint:errcheck // test cleanup

	server, gw := setupTestServer(t)

	_, resp, err := gorilla.DefaultDialer.Dial(wsURL(server, "not-a-real-token"), nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, 0, gw.SessionCount())
}

func TestAdventureHandler_FullTurnRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing") //nolint:errcheck // test fixture
	defer os.Unsetenv("JWT_SECRET")                        //nolint:errcheck // test cleanup

	server, gw := setupTestServer(t)

	token, err := auth.GenerateJWT(1, "aldric")
	require.NoError(t, err)

	conn := dial(t, server, token)

	// the server acknowledges before accepting turns
	msg := readWire(t, conn)
	require.Equal(t, "connection_ack", msg.Type)
	assert.Equal(t, 1, gw.SessionCount())

	require.NoError(t, conn.WriteJSON(map[string]string{
		"player_action":        "open the door",
		"previous_ai_response": "you stand before a door",
	}))

	msg = readWire(t, conn)
	require.Equal(t, "ai_response", msg.Type)
	assert.Equal(t, "you open the door", msg.LatestAIResponse)
}

func TestAdventureHandler_SecondConnectionSupersedes(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing") //nolint:errcheck // test fixture
	defer os.Unsetenv("JWT_SECRET")                        //nolint:errcheck // test cleanup

	server, gw := setupTestServer(t)

	token, err := auth.GenerateJWT(1, "aldric")
	require.NoError(t, err)

	connA := dial(t, server, token)
	msg := readWire(t, connA)
	require.Equal(t, "connection_ack", msg.Type)

	connB := dial(t, server, token)
	msg = readWire(t, connB)
	require.Equal(t, "connection_ack", msg.Type)

	// only the new connection remains registered
	assert.Equal(t, 1, gw.SessionCount())

	// the old connection is told why, then closed
	require.NoError(t, connA.SetReadDeadline(time.Now().Add(2*time.Second)))
	sawNotice := false
	for {
		var old wireMessage
		if err := connA.ReadJSON(&old); err != nil {
			break
		}
		if old.Type == "error" {
			sawNotice = true
			assert.Contains(t, old.Message, "superseded")
		}
	}
	assert.True(t, sawNotice, "superseded connection should receive a closure notice")

	// the new connection serves turns normally
	require.NoError(t, connB.WriteJSON(map[string]string{
		"player_action": "look around",
	}))

	msg = readWire(t, connB)
	require.Equal(t, "ai_response", msg.Type)
	assert.Equal(t, "you look around", msg.LatestAIResponse)
}
