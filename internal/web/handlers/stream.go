package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jusunglee/romanize/internal/romanization"
	"github.com/jusunglee/romanize/internal/romanize"
)

const (
	streamWriteTimeout = 10 * time.Second
	// maxFrameBytes is the hard cap on a single frame. Texts between MaxTextLength and
	// this cap get an error reply; larger frames close the connection with 1009.
	maxFrameBytes = 64 << 10
)

// StreamHandler romanizes over a websocket: each text frame holds one streamRequest and
// is answered with one streamResponse, in order.
type StreamHandler struct {
	svc      *romanization.Service
	log      *slog.Logger
	upgrader websocket.Upgrader
}

type streamRequest struct {
	ID       string `json:"id,omitempty"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

// streamResponse carries either the result fields or error, never both.
type streamResponse struct {
	ID string `json:"id,omitempty"`
	*romanization.Result
	Error string `json:"error,omitempty"`
}

// NewStreamHandler accepts any origin when allowedOrigins is empty.
func NewStreamHandler(svc *romanization.Service, log *slog.Logger, allowedOrigins []string) *StreamHandler {
	return &StreamHandler{
		svc: svc,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				return origin != "" && slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.log.InfoContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameBytes)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WarnContext(r.Context(), "websocket read failed", "error", err)
			}
			return
		}

		resp := h.handle(r, msg)
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			h.log.WarnContext(r.Context(), "websocket write failed", "error", err)
			return
		}
	}
}

func (h *StreamHandler) handle(r *http.Request, msg []byte) streamResponse {
	var req streamRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return streamResponse{Error: "invalid JSON message"}
	}
	resp := streamResponse{ID: req.ID}

	if problem := validateText(req.Text); problem != "" {
		resp.Error = problem
		return resp
	}
	lang, err := romanization.ParseLanguage(req.Language)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	res, err := h.svc.Romanize(r.Context(), req.Text, lang)
	switch {
	case err == nil:
		resp.Result = &res
	case errors.Is(err, romanize.ErrLookup), errors.Is(err, romanize.ErrMalformedToken):
		resp.Error = err.Error()
	default:
		h.log.ErrorContext(r.Context(), "romanizing", "error", err)
		resp.Error = "internal error"
	}
	return resp
}
