package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, userID int64) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(hub, zerolog.Nop())
	router := gin.New()
	router.GET("/ws/notifications", func(c *gin.Context) {
		c.Set("userID", userID)
		handler.HandleConnection(c)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/notifications"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversEventToConnectedClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run(context.Background())

	server := newTestServer(t, hub, 7)
	conn := dial(t, server)

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.NotifyUser(&Event{
		Type:             "notification",
		UserID:           7,
		SenderID:         3,
		NotificationType: "like",
		ReferenceID:      12,
		Message:          "somchai liked your post",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "notification", event.Type)
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, int64(3), event.SenderID)
	assert.Equal(t, "like", event.NotificationType)
	assert.Equal(t, "somchai liked your post", event.Message)
}

func TestHubEventForOfflineUserIsDropped(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run(context.Background())

	server := newTestServer(t, hub, 7)
	conn := dial(t, server)

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Addressed to a user with no open connections
	hub.NotifyUser(&Event{Type: "notification", UserID: 99, Message: "ignored"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run(context.Background())

	server := newTestServer(t, hub, 7)
	conn := dial(t, server)

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubCountsConnectionsPerUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run(context.Background())

	server := newTestServer(t, hub, 7)
	dial(t, server)
	dial(t, server)

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(7) == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, hub.GetClientsCount(99))
}
