package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHubServer(t *testing.T, hub *Hub, matchID uuid.UUID) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, matchID, uuid.New())
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	hub := NewHub(zap.NewNop())
	matchA, matchB := uuid.New(), uuid.New()

	connA, _, err := websocket.DefaultDialer.Dial(startHubServer(t, hub, matchA), nil)
	require.NoError(t, err)
	defer connA.Close()
	connB, _, err := websocket.DefaultDialer.Dial(startHubServer(t, hub, matchB), nil)
	require.NoError(t, err)
	defer connB.Close()

	require.Eventually(t, func() bool {
		return hub.RoomSize(matchA) == 1 && hub.RoomSize(matchB) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(matchA, map[string]string{"message": "hola"})

	var got map[string]string
	require.NoError(t, connA.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, connA.ReadJSON(&got))
	assert.Equal(t, "hola", got["message"])

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err)
}

func TestHub_ClientLeavesOnClose(t *testing.T) {
	hub := NewHub(zap.NewNop())
	matchID := uuid.New()

	conn, _, err := websocket.DefaultDialer.Dial(startHubServer(t, hub, matchID), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.RoomSize(matchID) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.RoomSize(matchID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub(zap.NewNop())
	assert.NotPanics(t, func() { hub.Broadcast(uuid.New(), "x") })
	hub.Shutdown()
}
