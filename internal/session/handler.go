package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/storage"
	"github.com/inamate/board/internal/typeid"
)

type Handler struct {
	hub     *Hub
	kv      storage.KV
	origins []string
	opts    []engine.Option
}

// NewHandler serves boards persisted in kv. origins are the websocket
// origin patterns accepted; opts configure every session's engine.
func NewHandler(hub *Hub, kv storage.KV, origins []string, opts ...engine.Option) *Handler {
	return &Handler{hub: hub, kv: kv, origins: origins, opts: opts}
}

// Register mounts the board routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/boards", h.Create).Methods("POST")
	r.HandleFunc("/boards/{boardId}/scene", h.Scene).Methods("GET")
	r.HandleFunc("/boards/{boardId}/reset", h.Reset).Methods("POST")
	r.HandleFunc("/ws/boards/{boardId}", h.Connect)
}

type createResponse struct {
	ID string `json:"id"`
}

type sceneResponse struct {
	BoardID string          `json:"boardId"`
	Layers  json.RawMessage `json:"layers"`
	Order   []string        `json:"order"`
}

// Create allocates a new board id. The board itself is stored lazily on
// its first mutation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, createResponse{ID: typeid.NewBoardID()})
}

// Scene returns the persisted snapshot of a board.
func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	boardID, ok := boardIDFromRequest(w, r)
	if !ok {
		return
	}

	store := scene.NewStore(h.kv, scene.KeysFor(boardID))
	sc, err := store.Load(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	layers, err := document.MarshalLayers(sc.Layers)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sceneResponse{BoardID: boardID, Layers: layers, Order: sc.Order})
}

// Reset empties a board that no session has open.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	boardID, ok := boardIDFromRequest(w, r)
	if !ok {
		return
	}
	if h.hub.Busy(boardID) {
		handleError(w, ErrBoardBusy)
		return
	}
	if err := scene.NewStore(h.kv, scene.KeysFor(boardID)).Reset(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Connect upgrades to a websocket and runs a session until it closes.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	boardID, ok := boardIDFromRequest(w, r)
	if !ok {
		return
	}
	if h.hub.Busy(boardID) {
		handleError(w, ErrBoardBusy)
		return
	}

	sess, err := Open(r.Context(), h.kv, boardID, h.opts...)
	if err != nil {
		handleError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, sess)
	if err := h.hub.Acquire(client); err != nil {
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func boardIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	boardID := mux.Vars(r)["boardId"]
	if err := typeid.Validate(boardID, typeid.PrefixBoard); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid board id"})
		return "", false
	}
	return boardID, true
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBoardBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("board request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
