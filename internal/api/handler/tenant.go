package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/jobboard/internal/api/request"
	"github.com/edvin/jobboard/internal/api/response"
	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/model"
	"github.com/edvin/jobboard/internal/platform"
)

type Tenant struct {
	svc *core.TenantService
}

func NewTenant(svc *core.TenantService) *Tenant {
	return &Tenant{svc: svc}
}

// List returns tenants, optionally filtered by billing status, with cursor
// pagination.
func (h *Tenant) List(w http.ResponseWriter, r *http.Request) {
	p := request.ParsePagination(r)
	status := r.URL.Query().Get("status")

	tenants, hasMore, err := h.svc.List(r.Context(), status, p.Limit, p.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(tenants) > 0 {
		nextCursor = tenants[len(tenants)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, tenants, nextCursor, hasMore)
}

// Create registers a new tenant account. It starts with no billing plan and
// no access; StartTrial binds the plan.
func (h *Tenant) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTenant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	tenant := &model.Tenant{
		ID:            platform.NewID(),
		Name:          req.Name,
		BillingStatus: model.BillingNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.svc.Create(r.Context(), tenant); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.OwnerEmail != "" {
		admin := &model.AdminUser{
			ID:        platform.NewID(),
			TenantID:  tenant.ID,
			Email:     req.OwnerEmail,
			IsOwner:   true,
			CreatedAt: now,
		}
		if err := h.svc.AddAdmin(r.Context(), admin); err != nil {
			response.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	response.WriteJSON(w, http.StatusCreated, tenant)
}

func (h *Tenant) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, tenant)
}

// AddAdmin attaches an admin user to a tenant. Admins receive expiry warning
// email.
func (h *Tenant) AddAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.AddTenantAdmin
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	admin := &model.AdminUser{
		ID:        platform.NewID(),
		TenantID:  id,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	if req.IsOwner != nil {
		admin.IsOwner = *req.IsOwner
	}

	if err := h.svc.AddAdmin(r.Context(), admin); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, admin)
}

func (h *Tenant) ListAdmins(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	admins, err := h.svc.ListAdmins(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, admins)
}

// writeServiceError maps core errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrTenantNotFound), errors.Is(err, core.ErrPlanNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
