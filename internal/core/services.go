package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DB defines the database operations used by service structs.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Services struct {
	Plan    *PlanService
	Tenant  *TenantService
	Billing *BillingService
	Warning *WarningService
	Search  *SearchService
}

func NewServices(db DB, clock Clock, logger zerolog.Logger) *Services {
	plans := NewPlanService(db)
	return &Services{
		Plan:    plans,
		Tenant:  NewTenantService(db),
		Billing: NewBillingService(db, plans, clock),
		Warning: NewWarningService(db, clock, logger),
		Search:  NewSearchService(db),
	}
}
