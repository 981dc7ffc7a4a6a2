package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialReload(t *testing.T, rs *ReloadServer) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(rs.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestReloadServerBroadcastsReload(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	conn := dialReload(t, rs)

	require.Eventually(t, func() bool {
		return rs.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	rs.NotifyReload()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg ReloadMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "reload", msg.Type)
	assert.NotZero(t, msg.Timestamp)
}

func TestReloadServerTracksDisconnects(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	conn := dialReload(t, rs)
	require.Eventually(t, func() bool {
		return rs.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool {
		return rs.ConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestReloadServerRejectsForeignOrigin(t *testing.T) {
	rs := NewReloadServer()
	defer rs.Close()

	srv := httptest.NewServer(http.HandlerFunc(rs.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{"Origin": []string{"http://evil.example.com"}}
	_, _, err := websocket.DefaultDialer.Dial(url, header)
	assert.Error(t, err)
}
