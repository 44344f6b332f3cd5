package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/jobboard/internal/api/request"
	"github.com/edvin/jobboard/internal/api/response"
	"github.com/edvin/jobboard/internal/core"
)

type Plan struct {
	svc *core.PlanService
}

func NewPlan(svc *core.PlanService) *Plan {
	return &Plan{svc: svc}
}

func (h *Plan) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, plans)
}

func (h *Plan) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, plan)
}
