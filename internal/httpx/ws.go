package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"colonnes/internal/input"
	"colonnes/internal/party"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type wsInbound struct {
	Type   string  `json:"type"` // capture, click, key, reset, ping
	Column *int    `json:"column"`
	Key    string  `json:"key"`
	Player string  `json:"player"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	p, err := s.registry.Get(chi.URLParam(r, "code"))
	if err != nil {
		s.fail(w, err, nil)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	log := s.logger.With(zap.String("party", p.Code), zap.String("remote", r.RemoteAddr))
	log.Debug("websocket connected")

	updates, unsubscribe := p.Subscribe()
	replies := make(chan wsMessage, 8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := writeWSWithHeartbeat(conn, updates, replies); err != nil {
			log.Debug("websocket write stopped", zap.Error(err))
		}
		conn.Close()
	}()

	reply := func(m wsMessage) {
		select {
		case replies <- m:
		default:
		}
	}

	for {
		var msg wsInbound
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "capture":
			if msg.Column == nil {
				reply(wsMessage{Type: "error", Error: errMissingColumn.Error()})
				continue
			}
			pl, err := parsePlayer(msg.Player)
			if err == nil {
				_, err = p.Capture(pl, *msg.Column)
			}
			if err != nil {
				reply(wsMessage{Type: "error", Error: err.Error()})
			}
		case "click":
			pl, err := parsePlayer(msg.Player)
			if err == nil {
				_, err = p.Click(pl, msg.X, msg.Y, msg.Width, msg.Height)
			}
			if err != nil {
				reply(wsMessage{Type: "error", Error: err.Error()})
			}
		case "key":
			if input.ActionForKey(msg.Key) == input.ActionReset {
				p.Reset()
			}
		case "reset":
			p.Reset()
		case "ping":
			reply(wsMessage{Type: "pong"})
		default:
			reply(wsMessage{Type: "error", Error: "unknown message type " + msg.Type})
		}
	}
	unsubscribe()
	<-done
	log.Debug("websocket disconnected")
}

// writeWSWithHeartbeat est le seul écrivain de la connexion : il pousse les
// états, les réponses, et un ping quand la connexion reste muette.
func writeWSWithHeartbeat(conn *websocket.Conn, updates <-chan party.Snapshot, replies <-chan wsMessage) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		var data []byte
		select {
		case snap, ok := <-updates:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			data = mustMarshal(wsMessage{Type: "state", Payload: mustMarshal(snap)})
		case m := <-replies:
			data = mustMarshal(m)
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			data = pingPayload
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return err
		}
		lastWrite = time.Now()
	}
}
