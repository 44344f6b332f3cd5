package core

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/jobboard/internal/model"
)

// WarningService selects tenants approaching trial or premium expiry and
// resolves the notification recipients for each. Selection is idempotent:
// a sent_warnings ledger keyed by (tenant, kind, threshold, expiry) ensures
// each threshold fires at most once per expiry window, even when the daily
// scheduler misses a tick.
type WarningService struct {
	db     DB
	clock  Clock
	logger zerolog.Logger
}

func NewWarningService(db DB, clock Clock, logger zerolog.Logger) *WarningService {
	return &WarningService{db: db, clock: clock, logger: logger}
}

// daysLeft is the number of whole or partial days between now and until.
func daysLeft(until, now time.Time) int {
	return int(math.Ceil(until.Sub(now).Hours() / 24))
}

// matchThreshold returns the threshold a tenant should be warned for, given
// the thresholds already recorded as sent for this expiry window. The most
// imminent unsent threshold wins, so a missed scheduler day degrades into a
// late warning instead of a skipped one, and stale larger thresholds are
// never sent once a smaller one applies.
func matchThreshold(thresholds []int, until, now time.Time, sent func(threshold int) bool) (int, bool) {
	left := daysLeft(until, now)
	if left <= 0 {
		return 0, false
	}

	sorted := append([]int(nil), thresholds...)
	sort.Ints(sorted)
	for _, t := range sorted {
		if left <= t {
			if sent(t) {
				return 0, false
			}
			return t, true
		}
	}
	return 0, false
}

// FindTenantsToWarn returns at most one warning candidate per tenant for the
// current run. Tenants without any resolvable admin email are logged and
// skipped, not treated as an error.
func (s *WarningService) FindTenantsToWarn(ctx context.Context, thresholds []int) ([]model.WarningCandidate, error) {
	if len(thresholds) == 0 {
		return nil, nil
	}

	now := s.clock.Now().UTC()
	maxDays := thresholds[0]
	for _, t := range thresholds[1:] {
		if t > maxDays {
			maxDays = t
		}
	}
	horizon := now.Add(time.Duration(maxDays) * 24 * time.Hour)

	tenants, err := s.listExpiring(ctx, now, horizon)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, nil
	}

	sent, err := s.loadSentLedger(ctx, now)
	if err != nil {
		return nil, err
	}

	var candidates []model.WarningCandidate
	for _, t := range tenants {
		kind, until := warningTarget(&t)
		if until == nil {
			continue
		}

		threshold, ok := matchThreshold(thresholds, *until, now, func(th int) bool {
			return sent[ledgerKey(t.ID, kind, th, *until)]
		})
		if !ok {
			continue
		}

		recipients, err := s.adminEmails(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if len(recipients) == 0 {
			s.logger.Warn().Str("tenant_id", t.ID).Str("kind", kind).
				Msg("tenant has no admin emails, skipping expiry warning")
			continue
		}

		candidates = append(candidates, model.WarningCandidate{
			TenantID:           t.ID,
			TenantName:         t.Name,
			Kind:               kind,
			ThresholdDays:      threshold,
			DaysLeft:           daysLeft(*until, now),
			WarnForDate:        *until,
			RecipientAddresses: recipients,
		})
	}
	return candidates, nil
}

// MarkWarningSent records a delivered warning in the ledger. The insert is
// idempotent so a retried workflow activity cannot create duplicates.
func (s *WarningService) MarkWarningSent(ctx context.Context, c model.WarningCandidate, id string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sent_warnings (id, tenant_id, kind, threshold_days, expires_at, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (tenant_id, kind, threshold_days, expires_at) DO NOTHING`,
		id, c.TenantID, c.Kind, c.ThresholdDays, c.WarnForDate, s.clock.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record sent warning for tenant %s: %w", c.TenantID, err)
	}
	return nil
}

// warningTarget resolves which expiry timestamp applies to a tenant, based on
// billing status. Returns a nil timestamp when there is nothing to warn about
// (e.g. free tier).
func warningTarget(t *model.Tenant) (string, *time.Time) {
	switch t.BillingStatus {
	case model.BillingTrial:
		return model.WarningKindTrial, t.TrialEndsAt
	case model.BillingActive:
		return model.WarningKindPremium, t.PremiumUntil
	default:
		return "", nil
	}
}

func ledgerKey(tenantID, kind string, threshold int, expiresAt time.Time) string {
	return fmt.Sprintf("%s|%s|%d|%d", tenantID, kind, threshold, expiresAt.Unix())
}

func (s *WarningService) listExpiring(ctx context.Context, now, horizon time.Time) ([]model.Tenant, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants
		 WHERE (billing_status = $1 AND trial_ends_at IS NOT NULL AND trial_ends_at > $3 AND trial_ends_at <= $4)
		    OR (billing_status = $2 AND premium_until IS NOT NULL AND premium_until > $3 AND premium_until <= $4)
		 ORDER BY id`,
		model.BillingTrial, model.BillingActive, now, horizon,
	)
	if err != nil {
		return nil, fmt.Errorf("list expiring tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		var t model.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.BillingStatus, &t.PlanID,
			&t.TrialStartedAt, &t.TrialEndsAt, &t.PremiumUntil, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expiring tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *WarningService) loadSentLedger(ctx context.Context, now time.Time) (map[string]bool, error) {
	rows, err := s.db.Query(ctx,
		`SELECT tenant_id, kind, threshold_days, expires_at
		 FROM sent_warnings WHERE expires_at > $1`, now,
	)
	if err != nil {
		return nil, fmt.Errorf("load sent warnings: %w", err)
	}
	defer rows.Close()

	sent := make(map[string]bool)
	for rows.Next() {
		var (
			tenantID, kind string
			threshold      int
			expiresAt      time.Time
		)
		if err := rows.Scan(&tenantID, &kind, &threshold, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan sent warning: %w", err)
		}
		sent[ledgerKey(tenantID, kind, threshold, expiresAt)] = true
	}
	return sent, rows.Err()
}

func (s *WarningService) adminEmails(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT email FROM tenant_admins WHERE tenant_id = $1
		 ORDER BY is_owner DESC, created_at, id`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list admin emails for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan admin email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
