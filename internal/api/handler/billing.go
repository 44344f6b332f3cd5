package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/jobboard/internal/api/request"
	"github.com/edvin/jobboard/internal/api/response"
	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/metrics"
)

type Billing struct {
	svc     *core.BillingService
	tenants *core.TenantService
	clock   core.Clock
}

func NewBilling(svc *core.BillingService, tenants *core.TenantService, clock core.Clock) *Billing {
	return &Billing{svc: svc, tenants: tenants, clock: clock}
}

// StartTrial binds a plan to a tenant. Depending on the plan this starts a
// trial window, grants perpetual free access, or parks the tenant in
// pending_payment until the first charge confirms.
func (h *Billing) StartTrial(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.StartTrial
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.StartTrial(r.Context(), id, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.TrialsStarted.WithLabelValues(req.PlanID).Inc()
	response.WriteJSON(w, http.StatusOK, tenant)
}

// PaymentWebhook handles a confirmed payment from the payment provider and
// grants one paid period.
func (h *Billing) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentWebhook
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.ActivatePaidPeriod(r.Context(), req.TenantID, req.PlanID, req.PeriodStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.PaidActivations.WithLabelValues(req.PlanID).Inc()
	response.WriteJSON(w, http.StatusOK, tenant)
}

// Expire forces an immediate downgrade of a lapsed tenant. The daily
// recompute job performs the same operation; this endpoint exists for
// support tooling.
func (h *Billing) Expire(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.ExpirePremium(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, tenant)
}

// AccessResponse reports whether a tenant currently has premium access.
type AccessResponse struct {
	TenantID      string `json:"tenant_id"`
	BillingStatus string `json:"billing_status"`
	HasAccess     bool   `json:"has_access"`
}

// Access reports the tenant's effective access at the time of the call.
func (h *Billing) Access(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.tenants.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, AccessResponse{
		TenantID:      tenant.ID,
		BillingStatus: tenant.BillingStatus,
		HasAccess:     core.HasAccess(tenant, h.clock.Now().UTC()),
	})
}
