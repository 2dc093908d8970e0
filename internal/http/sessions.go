package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cineworks/catalog-api/internal/domain"
	"github.com/cineworks/catalog-api/internal/repository"
)

type sessionCreateRequest struct {
	MovieID  int64 `json:"movieId"`
	CinemaID int64 `json:"cinemaId"`
}

type sessionResponse struct {
	MovieID  int64 `json:"movieId"`
	CinemaID int64 `json:"cinemaId"`
}

func (req sessionCreateRequest) validate() map[string]string {
	details := make(map[string]string)
	if req.MovieID <= 0 {
		details["movieId"] = "movieId is required"
	}
	if req.CinemaID <= 0 {
		details["cinemaId"] = "cinemaId is required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	session, err := s.repo.Sessions.Create(r.Context(), repository.SessionCreateParams{
		MovieID:  req.MovieID,
		CinemaID: req.CinemaID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrForeignKey):
			s.respondError(w, http.StatusConflict, "CONFLICT", "Referenced movie or cinema does not exist")
		case errors.Is(err, repository.ErrDuplicate):
			s.respondError(w, http.StatusConflict, "CONFLICT", "Session already exists for this movie and cinema")
		default:
			s.logger.Error().Err(err).Msg("create session")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session")
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/sessions/%d/%d", session.MovieID, session.CinemaID))
	s.respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.repo.Sessions.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list sessions")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sessions")
		return
	}

	items := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, toSessionResponse(session))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	movieID, cinemaID, ok := s.sessionParams(w, r)
	if !ok {
		return
	}

	session, err := s.repo.Sessions.Get(r.Context(), movieID, cinemaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("movie_id", movieID).Int64("cinema_id", cinemaID).Msg("get session")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch session")
		return
	}
	s.respondJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	movieID, cinemaID, ok := s.sessionParams(w, r)
	if !ok {
		return
	}

	if err := s.repo.Sessions.Delete(r.Context(), movieID, cinemaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("movie_id", movieID).Int64("cinema_id", cinemaID).Msg("delete session")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	movieID, err := idParam(r, "movieID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return 0, 0, false
	}
	cinemaID, err := idParam(r, "cinemaID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return 0, 0, false
	}
	return movieID, cinemaID, true
}

func toSessionResponse(session domain.Session) sessionResponse {
	return sessionResponse{
		MovieID:  session.MovieID,
		CinemaID: session.CinemaID,
	}
}
