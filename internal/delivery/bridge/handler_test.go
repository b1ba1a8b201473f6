package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"terrimap/config"
	"terrimap/internal/domain/entity"
	"terrimap/internal/feature"
	"terrimap/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records the commands routed to it.
type fakeSession struct {
	handles usecase.SessionHandles
	calls   chan string
	closed  chan struct{}
}

func (s *fakeSession) ID() string { return "session-1" }

func (s *fakeSession) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (s *fakeSession) Close() { close(s.closed) }

func (s *fakeSession) ToolkitReady() { s.calls <- "toolkitReady" }

func (s *fakeSession) SelectTool(tool entity.ToolMode) { s.calls <- "tool:" + string(tool) }

func (s *fakeSession) SetLocationDrawType(locationType entity.LocationType) {
	s.calls <- "locationType:" + string(locationType)
}

func (s *fakeSession) SetLayerVisible(id string, visible bool) {
	if visible {
		s.calls <- "show:" + id
		return
	}
	s.calls <- "hide:" + id
}

func (s *fakeSession) SetLayerOpacity(id string, _ float64) { s.calls <- "opacity:" + id }

func (s *fakeSession) Save() { s.calls <- "save" }

func (s *fakeSession) Cancel() { s.calls <- "cancel" }

func (s *fakeSession) SubmitTerritory(form feature.TerritoryForm) {
	s.calls <- "territory:" + form.ScratchID
}

func (s *fakeSession) SubmitLocation(form feature.LocationForm) {
	s.calls <- "location:" + form.ScratchID
}

func (s *fakeSession) CancelForm(scratchID string) { s.calls <- "cancelForm:" + scratchID }

type fakeSessions struct {
	session *fakeSession
}

func (f *fakeSessions) Open(handles usecase.SessionHandles) usecase.MapSession {
	f.session.handles = handles
	return f.session
}

func newTestServer(t *testing.T, cfg *config.SessionConfig) (*fakeSession, string) {
	t.Helper()

	session := &fakeSession{calls: make(chan string, 16), closed: make(chan struct{})}
	handler := NewHandler(HandlerParams{
		Logger:   slog.New(slog.DiscardHandler),
		Config:   &config.Config{Session: cfg},
		Sessions: &fakeSessions{session: session},
	})

	e := echo.New()
	e.GET("/ws/session", handler.Connect)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return session, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/session"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = ws.Close() })

	return ws
}

func send(t *testing.T, ws *websocket.Conn, msgType string, payload any) {
	t.Helper()

	msg := Message{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = raw
	}
	require.NoError(t, ws.WriteJSON(msg))
}

func receive(t *testing.T, ws *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))

	return msg
}

func nextCall(t *testing.T, session *fakeSession) string {
	t.Helper()

	select {
	case call := <-session.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("no session call")
		return ""
	}
}

func TestHandler_RoutesClientMessages(t *testing.T) {
	session, url := newTestServer(t, &config.SessionConfig{})
	ws := dial(t, url)

	ready := receive(t, ws)
	assert.Equal(t, TypeSessionReady, ready.Type)
	assert.JSONEq(t, `{"sessionId":"session-1"}`, string(ready.Payload))

	send(t, ws, TypePing, nil)
	assert.Equal(t, TypePong, receive(t, ws).Type)

	send(t, ws, TypeDrawReady, nil)
	assert.Equal(t, "toolkitReady", nextCall(t, session))
	_, err := session.handles.Toolkits.Attach(session.handles.Map)
	require.NoError(t, err)

	visible := false
	tests := []struct {
		msgType string
		payload any
		want    string
	}{
		{msgType: TypeUITool, payload: toolPayload{Tool: entity.ToolModeDrawPolygon}, want: "tool:" + string(entity.ToolModeDrawPolygon)},
		{msgType: TypeUILocationType, payload: locationTypePayload{LocationType: entity.LocationTypePotential}, want: "locationType:potential"},
		{msgType: TypeUILayer, payload: layerPayload{LayerID: "roads", Visible: &visible}, want: "hide:roads"},
		{msgType: TypeUISave, want: "save"},
		{msgType: TypeUICancel, want: "cancel"},
		{msgType: TypeFormTerritory, payload: feature.TerritoryForm{ScratchID: "s1"}, want: "territory:s1"},
		{msgType: TypeFormLocation, payload: feature.LocationForm{ScratchID: "s2"}, want: "location:s2"},
		{msgType: TypeFormCancel, payload: formCancelPayload{ScratchID: "s3"}, want: "cancelForm:s3"},
	}

	for _, tt := range tests {
		t.Run(tt.msgType, func(t *testing.T) {
			send(t, ws, tt.msgType, tt.payload)
			assert.Equal(t, tt.want, nextCall(t, session))
		})
	}
}

func TestHandler_RejectsInvalidMessages(t *testing.T) {
	session, url := newTestServer(t, &config.SessionConfig{})
	ws := dial(t, url)
	require.Equal(t, TypeSessionReady, receive(t, ws).Type)

	tests := []struct {
		name    string
		msgType string
		payload any
	}{
		{name: "unknown type", msgType: "map.explode"},
		{name: "bad location type", msgType: TypeUILocationType, payload: map[string]string{"locationType": "closed"}},
		{name: "empty layer change", msgType: TypeUILayer, payload: layerPayload{LayerID: "roads"}},
		{name: "opacity out of range", msgType: TypeUILayer, payload: map[string]any{"layerId": "roads", "opacity": 2}},
		{name: "viewport missing", msgType: TypeMapViewport, payload: map[string]any{}},
		{name: "malformed payload", msgType: TypeUITool, payload: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, ws, tt.msgType, tt.payload)

			msg := receive(t, ws)
			require.Equal(t, TypeError, msg.Type)
			var payload errorPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, "VALIDATION_FAILED", payload.Code)
		})
	}

	assert.Empty(t, session.calls)
}

func TestHandler_ClosesSessionOnDisconnect(t *testing.T) {
	session, url := newTestServer(t, &config.SessionConfig{})
	ws := dial(t, url)
	require.Equal(t, TypeSessionReady, receive(t, ws).Type)

	require.NoError(t, ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	select {
	case <-session.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("session not closed")
	}
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{name: "no list allows all", origin: "https://evil.example", want: true},
		{name: "wildcard", allowed: []string{"*"}, origin: "https://evil.example", want: true},
		{name: "listed", allowed: []string{"https://map.example"}, origin: "https://map.example", want: true},
		{name: "not listed", allowed: []string{"https://map.example"}, origin: "https://evil.example", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws/session", nil)
			req.Header.Set("Origin", tt.origin)
			assert.Equal(t, tt.want, checkOrigin(tt.allowed)(req))
		})
	}
}
