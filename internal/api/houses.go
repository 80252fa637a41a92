package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homestead/internal/housing"
)

// decodeJSON decodes the request body into v. An empty body leaves v
// untouched and is not an error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// handleListHouses returns the most recent houses, newest first.
func (s *Server) handleListHouses(w http.ResponseWriter, r *http.Request) {
	houses, err := s.housing.ListHouses(r.Context())
	if err != nil {
		s.writeHousingError(w, r, "list houses", err)
		return
	}
	if len(houses) == 0 {
		writeNotFound(w, "no houses found")
		return
	}

	writeJSON(w, http.StatusOK, houses)
}

// handleCreateHouse creates a house from name, stories and climate.
func (s *Server) handleCreateHouse(w http.ResponseWriter, r *http.Request) {
	var in housing.HouseInput
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	house, err := s.housing.CreateHouse(r.Context(), in)
	if err != nil {
		s.writeHousingError(w, r, "create house", err)
		return
	}

	writeJSON(w, http.StatusOK, house)
}

// handleGetHouse returns a single house with its room ids.
func (s *Server) handleGetHouse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	house, err := s.housing.GetHouse(r.Context(), id)
	if err != nil {
		s.writeHousingError(w, r, "get house", err)
		return
	}

	writeJSON(w, http.StatusOK, house)
}

// handleUpdateHouse applies a partial update. An unknown id is 404 even
// when the body is malformed; UpdateHouse loads the house before it
// validates anything.
func (s *Server) handleUpdateHouse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in housing.HouseInput
	if err := decodeJSON(r, &in); err != nil {
		if _, getErr := s.housing.GetHouse(r.Context(), id); getErr != nil {
			s.writeHousingError(w, r, "get house", getErr)
			return
		}
		writeBadRequest(w, "invalid JSON body")
		return
	}

	house, err := s.housing.UpdateHouse(r.Context(), id, in)
	if err != nil {
		s.writeHousingError(w, r, "update house", err)
		return
	}

	writeJSON(w, http.StatusOK, house)
}

// handleDeleteHouse removes a house. Its rooms are not touched.
func (s *Server) handleDeleteHouse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.housing.DeleteHouse(r.Context(), id); err != nil {
		s.writeHousingError(w, r, "delete house", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
