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

// movieUpsertRequest is the payload for POST and PUT, and the representation
// PATCH documents are applied to.
type movieUpsertRequest struct {
	Title           string `json:"title"`
	Genre           string `json:"genre"`
	DurationMinutes int    `json:"durationMinutes"`
}

type movieResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Genre           string `json:"genre"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (req movieUpsertRequest) validate() map[string]string {
	details := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		details["title"] = "title is required"
	}
	if strings.TrimSpace(req.Genre) == "" {
		details["genre"] = "genre is required"
	}
	if req.DurationMinutes <= 0 {
		details["durationMinutes"] = "durationMinutes must be positive"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieUpsertRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:           strings.TrimSpace(req.Title),
		Genre:           strings.TrimSpace(req.Genre),
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create movie")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create movie")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/movies/%d", movie.ID))
	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	skip, take, err := pageParams(query)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	filters := repository.MovieListFilters{Skip: skip, Take: take}
	if name := strings.TrimSpace(query.Get("nomeCinema")); name != "" {
		filters.CinemaName = &name
	}

	movies, err := s.repo.Movies.List(r.Context(), filters)
	if err != nil {
		s.logger.Error().Err(err).Msg("list movies")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("get movie")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req movieUpsertRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	if err := s.updateMovie(r, id, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("update movie")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePatchMovie(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("fetch movie for patch")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}

	ops, err := readRawBody(w, r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Unable to read request body")
		return
	}

	current := movieUpsertRequest{
		Title:           movie.Title,
		Genre:           movie.Genre,
		DurationMinutes: movie.DurationMinutes,
	}
	var patched movieUpsertRequest
	if err := patch.Apply(ops, current, &patched); err != nil {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if details := patched.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	if err := s.updateMovie(r, id, patched); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("patch movie")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateMovie(r *http.Request, id int64, req movieUpsertRequest) error {
	_, err := s.repo.Movies.Update(r.Context(), id, repository.MovieUpdateParams{
		Title:           strings.TrimSpace(req.Title),
		Genre:           strings.TrimSpace(req.Genre),
		DurationMinutes: req.DurationMinutes,
	})
	return err
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.repo.Movies.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, repository.ErrForeignKey):
			s.respondError(w, http.StatusConflict, "CONFLICT", "Movie still has sessions")
		default:
			s.logger.Error().Err(err).Int64("movie_id", id).Msg("delete movie")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete movie")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:              movie.ID,
		Title:           movie.Title,
		Genre:           movie.Genre,
		DurationMinutes: movie.DurationMinutes,
	}
}
