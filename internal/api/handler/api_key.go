package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/jobboard/internal/api/request"
	"github.com/edvin/jobboard/internal/api/response"
	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/model"
)

type APIKey struct {
	svc *core.APIKeyService
}

func NewAPIKey(svc *core.APIKeyService) *APIKey {
	return &APIKey{svc: svc}
}

// CreateAPIKeyResponse carries the raw key. It is returned exactly once.
type CreateAPIKeyResponse struct {
	Key    *model.APIKey `json:"key"`
	RawKey string        `json:"raw_key"`
}

func (h *APIKey) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, rawKey, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, CreateAPIKeyResponse{Key: key, RawKey: rawKey})
}

func (h *APIKey) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Revoke(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
