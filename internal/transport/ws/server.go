// Package ws carries a player's draft over a websocket: offers are pushed
// as they are bound and the client answers with CHOOSE or ABANDON.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
)

const (
	readBufferSize  = 4 * 1024
	writeBufferSize = 16 * 1024
	outQueueSize    = 16
	writeTimeout    = 5 * time.Second
	pongWait        = 60 * time.Second
	pingInterval    = pongWait * 9 / 10
	maxMessageSize  = 4 * 1024
)

// DraftService is the subset of the level-up service the socket drives
type DraftService interface {
	GetActiveDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error)
	ConfirmChoice(ctx context.Context, playerID string, index int) (*domain.DraftResolution, error)
	AbandonDraft(ctx context.Context, playerID string) error
}

// Server upgrades player connections and relays draft traffic
type Server struct {
	svc      DraftService
	hub      *sse.Hub
	upgrader websocket.Upgrader
}

// NewServer creates a websocket server. Events reach clients through hub.
func NewServer(svc DraftService, hub *sse.Hub) *Server {
	return &Server{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves /players/{id}/ws
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "id")
		log := logger.FromContext(r.Context()).With("player_id", playerID)

		snap, err := s.svc.GetActiveDraft(r.Context(), playerID)
		if err != nil {
			if errors.Is(err, domain.ErrPlayerNotFound) {
				http.Error(w, "player not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		client := s.hub.Register(nil, playerID)
		defer s.hub.Unregister(client.ID)

		// request context is detached once the connection is hijacked
		ctx, cancel := context.WithCancel(logger.WithRequestID(context.Background(), logger.GetRequestID(r.Context())))
		defer cancel()

		out := make(chan ServerMsg, outQueueSize)
		out <- ServerMsg{Type: TypeSnapshot, Draft: snap}

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.writeLoop(ctx, cancel, conn, out, client)
		}()

		log.Info("websocket client connected")
		s.readLoop(ctx, conn, playerID, out)
		cancel()
		<-done
		log.Info("websocket client disconnected")
	}
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, playerID string, out chan<- ServerMsg) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := s.handleMessage(ctx, playerID, raw)
		select {
		case out <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, playerID string, raw []byte) ServerMsg {
	var msg ClientMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errorMsg(CodeBadMessage, "malformed message")
	}

	switch msg.Type {
	case TypeChoose:
		if msg.Index == nil {
			return errorMsg(CodeBadMessage, "index is required")
		}
		res, err := s.svc.ConfirmChoice(ctx, playerID, *msg.Index)
		if err != nil {
			return errorMsg(errorCode(err), err.Error())
		}
		return ServerMsg{Type: TypeResolved, Resolution: res}

	case TypeAbandon:
		if err := s.svc.AbandonDraft(ctx, playerID); err != nil {
			return errorMsg(errorCode(err), err.Error())
		}
		return ServerMsg{Type: TypeAbandoned}

	default:
		return errorMsg(CodeBadMessage, "unknown message type")
	}
}

func (s *Server) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out <-chan ServerMsg, client *sse.Client) {
	defer func() {
		cancel()
		_ = conn.Close()
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	write := func(msg ServerMsg) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(msg) == nil
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return

		case msg := <-out:
			if !write(msg) {
				return
			}

		case evt, ok := <-client.EventChannel:
			if !ok {
				return
			}
			if !write(ServerMsg{Type: TypeEvent, Event: &evt}) {
				return
			}

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
