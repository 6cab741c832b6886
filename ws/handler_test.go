package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/seline/velora/models"
)

// fakeValidator, "valid-token" dışındaki her token'ı reddeder.
type fakeValidator struct{}

func (fakeValidator) ValidateAccessToken(token string) (*models.TokenClaims, error) {
	if token != "valid-token" {
		return nil, fmt.Errorf("invalid token")
	}
	return &models.TokenClaims{AdminID: "admin-1", Email: "owner@veloranails.com"}, nil
}

func newWSTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	ts := httptest.NewServer(http.HandlerFunc(NewHandler(hub, fakeValidator{}).HandleConnection))
	t.Cleanup(ts.Close)
	return hub, ts
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestConnectionRejectedWithoutToken(t *testing.T) {
	_, ts := newWSTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.Equal(t, 401, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url+"?token=bogus", nil)
	require.Error(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestConnectionReceivesReady(t *testing.T) {
	_, ts := newWSTestServer(t)
	conn := dial(t, ts, "valid-token")

	event := readEvent(t, conn)
	require.Equal(t, OpReady, event.Op)
}

func TestHeartbeatAck(t *testing.T) {
	_, ts := newWSTestServer(t)
	conn := dial(t, ts, "valid-token")
	readEvent(t, conn) // ready

	require.NoError(t, conn.WriteJSON(Event{Op: OpHeartbeat}))

	event := readEvent(t, conn)
	require.Equal(t, OpHeartbeatAck, event.Op)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, ts := newWSTestServer(t)

	first := dial(t, ts, "valid-token")
	second := dial(t, ts, "valid-token")
	readEvent(t, first) // ready
	readEvent(t, second)

	// Hub kaydı async — her iki client görünene kadar bekle.
	require.Eventually(t, func() bool {
		return len(hub.ConnectedAdminIDs()) == 1 // aynı admin, iki bağlantı
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToAll(Event{Op: OpBookingCreate, Data: map[string]string{"id": "b1"}})

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		require.Equal(t, OpBookingCreate, event.Op)
		require.Greater(t, event.Seq, int64(0), "broadcast events carry a sequence number")
	}
}

// Seq her broadcast'te artar — frontend kayıp event tespiti buna dayanır.
func TestBroadcastSequenceIncreases(t *testing.T) {
	hub, ts := newWSTestServer(t)
	conn := dial(t, ts, "valid-token")
	readEvent(t, conn) // ready

	require.Eventually(t, func() bool {
		return len(hub.ConnectedAdminIDs()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToAll(Event{Op: OpContactCreate})
	hub.BroadcastToAll(Event{Op: OpContactUpdate})

	firstEvent := readEvent(t, conn)
	secondEvent := readEvent(t, conn)
	require.Greater(t, secondEvent.Seq, firstEvent.Seq)
}
