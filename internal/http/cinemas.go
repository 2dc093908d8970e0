package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cineworks/catalog-api/internal/domain"
	"github.com/cineworks/catalog-api/internal/patch"
	"github.com/cineworks/catalog-api/internal/repository"
)

// cinemaCreateRequest embeds the owned address; the cinema and its address
// are created together.
type cinemaCreateRequest struct {
	Name    string               `json:"name"`
	Address addressUpsertRequest `json:"address"`
}

// cinemaUpdateRequest covers the cinema's own mutable fields. The owned
// address is updated through the address resource.
type cinemaUpdateRequest struct {
	Name string `json:"name"`
}

type cinemaResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Address addressResponse `json:"address"`
}

func (req cinemaCreateRequest) validate() map[string]string {
	details := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "name is required"
	}
	for field, msg := range req.Address.validate() {
		details["address."+field] = msg
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (req cinemaUpdateRequest) validate() map[string]string {
	if strings.TrimSpace(req.Name) == "" {
		return map[string]string{"name": "name is required"}
	}
	return nil
}

func (s *Server) handleCreateCinema(w http.ResponseWriter, r *http.Request) {
	var req cinemaCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	cinema, err := s.repo.Cinemas.Create(r.Context(), repository.CinemaCreateParams{
		Name: strings.TrimSpace(req.Name),
		Address: repository.AddressCreateParams{
			Street: strings.TrimSpace(req.Address.Street),
			Number: req.Address.Number,
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create cinema")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create cinema")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/cinemas/%d", cinema.ID))
	s.respondJSON(w, http.StatusCreated, toCinemaResponse(cinema))
}

func (s *Server) handleListCinemas(w http.ResponseWriter, r *http.Request) {
	skip, take, err := pageParams(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	cinemas, err := s.repo.Cinemas.List(r.Context(), repository.CinemaListFilters{Skip: skip, Take: take})
	if err != nil {
		s.logger.Error().Err(err).Msg("list cinemas")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list cinemas")
		return
	}

	items := make([]cinemaResponse, 0, len(cinemas))
	for _, cinema := range cinemas {
		items = append(items, toCinemaResponse(cinema))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetCinema(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	cinema, err := s.repo.Cinemas.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("cinema_id", id).Msg("get cinema")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch cinema")
		return
	}
	s.respondJSON(w, http.StatusOK, toCinemaResponse(cinema))
}

func (s *Server) handleUpdateCinema(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req cinemaUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	if err := s.updateCinema(r, id, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("cinema_id", id).Msg("update cinema")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update cinema")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePatchCinema(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	cinema, err := s.repo.Cinemas.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("cinema_id", id).Msg("fetch cinema for patch")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update cinema")
		return
	}

	ops, err := readRawBody(w, r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Unable to read request body")
		return
	}

	current := cinemaUpdateRequest{Name: cinema.Name}
	var patched cinemaUpdateRequest
	if err := patch.Apply(ops, current, &patched); err != nil {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if details := patched.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	if err := s.updateCinema(r, id, patched); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("cinema_id", id).Msg("patch cinema")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update cinema")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateCinema(r *http.Request, id int64, req cinemaUpdateRequest) error {
	_, err := s.repo.Cinemas.Update(r.Context(), id, repository.CinemaUpdateParams{
		Name: strings.TrimSpace(req.Name),
	})
	return err
}

func (s *Server) handleDeleteCinema(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.repo.Cinemas.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, repository.ErrForeignKey):
			s.respondError(w, http.StatusConflict, "CONFLICT", "Cinema still has sessions")
		default:
			s.logger.Error().Err(err).Int64("cinema_id", id).Msg("delete cinema")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete cinema")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCinemaResponse(cinema domain.Cinema) cinemaResponse {
	return cinemaResponse{
		ID:      cinema.ID,
		Name:    cinema.Name,
		Address: toAddressResponse(cinema.Address),
	}
}
