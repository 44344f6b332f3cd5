package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/jobboard/internal/model"
)

const tenantColumns = `id, name, billing_status, plan_id, trial_started_at, trial_ends_at, premium_until, created_at, updated_at`

type TenantService struct {
	db DB
}

func NewTenantService(db DB) *TenantService {
	return &TenantService{db: db}
}

func (s *TenantService) Create(ctx context.Context, tenant *model.Tenant) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tenants (id, name, billing_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tenant.ID, tenant.Name, tenant.BillingStatus, tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	var t model.Tenant
	err := s.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.BillingStatus, &t.PlanID,
		&t.TrialStartedAt, &t.TrialEndsAt, &t.PremiumUntil, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return &t, nil
}

func (s *TenantService) List(ctx context.Context, status string, limit int, cursor string) ([]model.Tenant, bool, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants`
	args := []any{}
	argIdx := 1
	var conds []string

	if status != "" {
		conds = append(conds, fmt.Sprintf("billing_status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}
	if cursor != "" {
		conds = append(conds, fmt.Sprintf("id > $%d", argIdx))
		args = append(args, cursor)
		argIdx++
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		var t model.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.BillingStatus, &t.PlanID,
			&t.TrialStartedAt, &t.TrialEndsAt, &t.PremiumUntil, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate tenants: %w", err)
	}

	hasMore := len(tenants) > limit
	if hasMore {
		tenants = tenants[:limit]
	}
	return tenants, hasMore, nil
}

// AddAdmin attaches an admin user to a tenant. The first admin of a tenant
// is typically the owner; owners sort first in warning recipient lists.
func (s *TenantService) AddAdmin(ctx context.Context, admin *model.AdminUser) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tenant_admins (id, tenant_id, email, is_owner, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		admin.ID, admin.TenantID, admin.Email, admin.IsOwner, admin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant admin: %w", err)
	}
	return nil
}

func (s *TenantService) ListAdmins(ctx context.Context, tenantID string) ([]model.AdminUser, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tenant_id, email, is_owner, created_at
		 FROM tenant_admins WHERE tenant_id = $1
		 ORDER BY is_owner DESC, created_at, id`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list admins for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var admins []model.AdminUser
	for rows.Next() {
		var a model.AdminUser
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Email, &a.IsOwner, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
