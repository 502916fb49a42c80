package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/service"
)

const (
	requestTimeout = 5 * time.Second
)

// Handler serves one websocket connection bound to one match.
type Handler struct {
	matches *service.MatchService
	matchID string
	ws      *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, matches *service.MatchService, matchID string) *Handler {
	return &Handler{matches: matches, matchID: matchID, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// handleMessage runs one request. Errors of the request itself are sent back to the client, so the
// connection stays open.
func (h *Handler) handleMessage(req *Incoming) *Outgoing {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	view, err := h.dispatch(ctx, req)
	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}
	}

	return &Outgoing{ID: req.ID, Data: view}
}

func (h *Handler) dispatch(ctx context.Context, req *Incoming) (service.MatchView, error) {
	switch req.Event {
	case "":
		return service.MatchView{}, errors.New("event field is either empty or missing")
	case "get":
		return h.matches.Get(ctx, h.matchID)
	case "tick":
		var reqData service.TickRequest
		if err := unmarshalData(req.Data, &reqData); err != nil {
			return service.MatchView{}, err
		}
		return h.matches.Tick(ctx, h.matchID, reqData.Ticks)
	case "select_move":
		var reqData service.SelectMoveRequest
		if err := unmarshalData(req.Data, &reqData); err != nil {
			return service.MatchView{}, err
		}
		if reqData.X == nil || reqData.Z == nil {
			return service.MatchView{}, errors.New("select_move needs x and z")
		}
		landing := models.Position{X: *reqData.X, Z: *reqData.Z}
		return h.matches.SelectMove(ctx, h.matchID, landing)
	default:
		return service.MatchView{}, fmt.Errorf("unknown event: %s", req.Event)
	}
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ws request unmarshal error: %w", err)
	}

	return nil
}

// Handle handles the websocket connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		if err = h.writeMessage(h.handleMessage(req)); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}
