package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homestead/internal/housing"
)

// handleListRooms returns rooms in the order they were created.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.housing.ListRooms(r.Context())
	if err != nil {
		s.writeHousingError(w, r, "list rooms", err)
		return
	}
	if len(rooms) == 0 {
		writeNotFound(w, "no rooms found")
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}

// handleCreateRoom creates a room inside an existing house.
//
// Validation failures are 400, a duplicate name 409 and an unknown house
// 404, checked in that order.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var in housing.RoomInput
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	room, err := s.housing.CreateRoom(r.Context(), in)
	if err != nil {
		s.writeHousingError(w, r, "create room", err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// handleGetRoom returns a single room including its house id.
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	room, err := s.housing.GetRoom(r.Context(), id)
	if err != nil {
		s.writeHousingError(w, r, "get room", err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// handleUpdateRoom applies a partial update; setting "house" moves the room.
// As with houses, an unknown id wins over a malformed body.
func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in housing.RoomInput
	if err := decodeJSON(r, &in); err != nil {
		if _, getErr := s.housing.GetRoom(r.Context(), id); getErr != nil {
			s.writeHousingError(w, r, "get room", getErr)
			return
		}
		writeBadRequest(w, "invalid JSON body")
		return
	}

	room, err := s.housing.UpdateRoom(r.Context(), id, in)
	if err != nil {
		s.writeHousingError(w, r, "update room", err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// handleDeleteRoom removes a room and detaches it from its house.
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.housing.DeleteRoom(r.Context(), id); err != nil {
		s.writeHousingError(w, r, "delete room", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
