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

type addressUpsertRequest struct {
	Street string `json:"street"`
	Number int    `json:"number"`
}

type addressResponse struct {
	ID     int64  `json:"id"`
	Street string `json:"street"`
	Number int    `json:"number"`
}

func (req addressUpsertRequest) validate() map[string]string {
	details := make(map[string]string)
	if strings.TrimSpace(req.Street) == "" {
		details["street"] = "street is required"
	}
	if req.Number <= 0 {
		details["number"] = "number must be positive"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	var req addressUpsertRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	address, err := s.repo.Addresses.Create(r.Context(), repository.AddressCreateParams{
		Street: strings.TrimSpace(req.Street),
		Number: req.Number,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create address")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create address")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/addresses/%d", address.ID))
	s.respondJSON(w, http.StatusCreated, toAddressResponse(address))
}

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	skip, take, err := pageParams(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	addresses, err := s.repo.Addresses.List(r.Context(), repository.AddressListFilters{Skip: skip, Take: take})
	if err != nil {
		s.logger.Error().Err(err).Msg("list addresses")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list addresses")
		return
	}

	items := make([]addressResponse, 0, len(addresses))
	for _, address := range addresses {
		items = append(items, toAddressResponse(address))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	address, err := s.repo.Addresses.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("address_id", id).Msg("get address")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch address")
		return
	}
	s.respondJSON(w, http.StatusOK, toAddressResponse(address))
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req addressUpsertRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := req.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	if err := s.updateAddress(r, id, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("address_id", id).Msg("update address")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update address")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePatchAddress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	address, err := s.repo.Addresses.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("address_id", id).Msg("fetch address for patch")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update address")
		return
	}

	ops, err := readRawBody(w, r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Unable to read request body")
		return
	}

	current := addressUpsertRequest{Street: address.Street, Number: address.Number}
	var patched addressUpsertRequest
	if err := patch.Apply(ops, current, &patched); err != nil {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if details := patched.validate(); details != nil {
		s.respondValidation(w, details)
		return
	}

	if err := s.updateAddress(r, id, patched); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Int64("address_id", id).Msg("patch address")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update address")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateAddress(r *http.Request, id int64, req addressUpsertRequest) error {
	_, err := s.repo.Addresses.Update(r.Context(), id, repository.AddressUpdateParams{
		Street: strings.TrimSpace(req.Street),
		Number: req.Number,
	})
	return err
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.repo.Addresses.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, repository.ErrForeignKey):
			s.respondError(w, http.StatusConflict, "CONFLICT", "Address is still owned by a cinema")
		default:
			s.logger.Error().Err(err).Int64("address_id", id).Msg("delete address")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete address")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAddressResponse(address domain.Address) addressResponse {
	return addressResponse{
		ID:     address.ID,
		Street: address.Street,
		Number: address.Number,
	}
}
