package httpx

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
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"colonnes/game"
	"colonnes/internal/party"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	reg := party.NewRegistry(party.Options{Tick: time.Hour, Seed: 5}, zaptest.NewLogger(t))
	t.Cleanup(reg.Close)
	srv := NewServer(reg, zaptest.NewLogger(t))
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createParty(t *testing.T, h http.Handler, mode string) party.Snapshot {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/party", `{"mode":"`+mode+`"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var snap party.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	require.Len(t, snap.Code, 6)
	return snap
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)
	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestCreateAndCapture(t *testing.T) {
	_, h := newTestServer(t)
	snap := createParty(t, h, "multi")
	assert.Equal(t, game.ModeMulti, snap.State.Mode)
	assert.Equal(t, game.PlayerA, snap.State.Current)

	rr := do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"column":2,"player":"A"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var after party.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Equal(t, game.CapturedByA, after.State.Columns[2])
	assert.Equal(t, game.PlayerB, after.State.Current)

	rr = do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"column":3,"player":"A"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	var e errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Contains(t, e.Error, party.ErrNotYourTurn.Error())
	require.NotNil(t, e.State)

	rr = do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"column":2,"player":"B"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCaptureValidation(t *testing.T) {
	_, h := newTestServer(t)
	snap := createParty(t, h, "solo")

	rr := do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"player":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"column":1,"player":"Z"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"column":9}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/party", `{"mode":"duel"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestClickEndpoint(t *testing.T) {
	_, h := newTestServer(t)
	snap := createParty(t, h, "solo")
	path := "/api/party/" + snap.Code + "/click"

	rr := do(t, h, http.MethodPost, path, `{"x":1,"y":1,"width":800,"height":600}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, path, `{"x":100,"y":300,"width":800,"height":600}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var after party.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Equal(t, game.CapturedByA, after.State.Columns[0])
	assert.True(t, after.State.PendingOpponent)
}

func TestResetAndDelete(t *testing.T) {
	_, h := newTestServer(t)
	snap := createParty(t, h, "solo")

	rr := do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/capture", `{"column":0}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/party/"+snap.Code+"/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var after party.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Zero(t, after.State.Captured)
	assert.False(t, after.State.PendingOpponent)

	rr = do(t, h, http.MethodDelete, "/api/party/"+snap.Code, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, h, http.MethodGet, "/api/party/"+snap.Code, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWebsocketPushesState(t *testing.T) {
	_, h := newTestServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()
	snap := createParty(t, h, "multi")

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + snap.Code
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() wsMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var m wsMessage
		require.NoError(t, conn.ReadJSON(&m))
		return m
	}

	first := read()
	require.Equal(t, "state", first.Type)

	col := 4
	require.NoError(t, conn.WriteJSON(wsInbound{Type: "capture", Column: &col, Player: "A"}))
	m := read()
	require.Equal(t, "state", m.Type)
	var got party.Snapshot
	require.NoError(t, json.Unmarshal(m.Payload, &got))
	assert.Equal(t, game.CapturedByA, got.State.Columns[4])

	require.NoError(t, conn.WriteJSON(wsInbound{Type: "capture", Column: &col, Player: "A"}))
	m = read()
	assert.Equal(t, "error", m.Type)
	assert.NotEmpty(t, m.Error)

	require.NoError(t, conn.WriteJSON(wsInbound{Type: "ping"}))
	assert.Equal(t, "pong", read().Type)

	require.NoError(t, conn.WriteJSON(wsInbound{Type: "key", Key: "R"}))
	m = read()
	require.Equal(t, "state", m.Type)
	require.NoError(t, json.Unmarshal(m.Payload, &got))
	assert.Zero(t, got.State.Captured)
}

func TestWebsocketUnknownParty(t *testing.T) {
	_, h := newTestServer(t)
	rr := do(t, h, http.MethodGet, "/ws/NOPE00", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWebsocketCaptureNeedsColumn(t *testing.T) {
	_, h := newTestServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()
	snap := createParty(t, h, "multi")

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + snap.Code
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var m wsMessage
	require.NoError(t, conn.ReadJSON(&m))
	require.Equal(t, "state", m.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"capture","player":"A"}`)))
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, "error", m.Type)
	assert.Equal(t, errMissingColumn.Error(), m.Error)

	rr := do(t, h, http.MethodGet, "/api/party/"+snap.Code, "")
	var after party.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Zero(t, after.State.Captured)
	assert.Equal(t, game.Unclaimed, after.State.Columns[0])
}

func TestRequestsAreLoggedThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := party.NewRegistry(party.Options{Tick: time.Hour, Seed: 5}, zap.New(core))
	t.Cleanup(reg.Close)
	h := NewServer(reg, zap.New(core)).Handler()

	rr := do(t, h, http.MethodGet, "/api/party/NOPE00", "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/api/party/NOPE00", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}
