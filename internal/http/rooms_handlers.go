package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"room-relay/internal/room"
	"room-relay/pkg/metrics"
)

type RoomsAPI struct {
	Log       *slog.Logger
	Rooms     *room.Registry
	PublicURL string
}

type createRoomResp struct {
	RoomKey  string `json:"room_key"`
	RoomLink string `json:"room_link"`
}

type roomStatusResp struct {
	RoomKey string `json:"room_key"`
	Status  string `json:"status"`
}

type errorResp struct {
	Detail string `json:"detail"`
}

// Create registers a fresh room and returns its key + shareable link.
func (a *RoomsAPI) Create(w http.ResponseWriter, r *http.Request) {
	key := uuid.NewString()
	if err := a.Rooms.Create(key); err != nil {
		// Key generation owns uniqueness; a collision is an
		// internal fault, not a client error.
		a.Log.Error("room.create", "err", err)
		http.Error(w, "could not create room", http.StatusInternalServerError)
		return
	}

	metrics.RoomsCreated.Inc()
	a.Log.Debug("room.created", "key", key)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(createRoomResp{
		RoomKey:  key,
		RoomLink: a.PublicURL + "/room/" + key,
	})
}

// Get checks whether a room is alive and refreshes its activity.
func (a *RoomsAPI) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "room key required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !a.Rooms.Touch(key) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(errorResp{Detail: "Room not found or expired"})
		return
	}
	_ = json.NewEncoder(w).Encode(roomStatusResp{RoomKey: key, Status: "active"})
}
