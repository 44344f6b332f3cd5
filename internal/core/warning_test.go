package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/jobboard/internal/model"
)

func newTestWarning(db DB, now time.Time) *WarningService {
	return NewWarningService(db, FixedClock(now), zerolog.Nop())
}

func queryContaining(substr string) any {
	return mock.MatchedBy(func(q string) bool { return strings.Contains(q, substr) })
}

// ---------- daysLeft / matchThreshold ----------

func TestDaysLeft(t *testing.T) {
	now := testNow

	assert.Equal(t, 3, daysLeft(now.Add(3*24*time.Hour), now))
	// Partial days round up.
	assert.Equal(t, 3, daysLeft(now.Add(2*24*time.Hour+12*time.Hour), now))
	assert.Equal(t, 1, daysLeft(now.Add(time.Minute), now))
	assert.Equal(t, 0, daysLeft(now, now))
	assert.Equal(t, -1, daysLeft(now.Add(-25*time.Hour), now))
}

func TestMatchThreshold(t *testing.T) {
	thresholds := []int{7, 3, 1}
	now := testNow
	noneSent := func(int) bool { return false }

	cases := []struct {
		name   string
		until  time.Time
		sent   func(int) bool
		want   int
		wantOK bool
	}{
		{"exact seven days", now.Add(7 * 24 * time.Hour), noneSent, 7, true},
		{"exact three days", now.Add(3 * 24 * time.Hour), func(th int) bool { return th == 7 }, 3, true},
		{"four days catches up to seven", now.Add(4 * 24 * time.Hour), noneSent, 7, true},
		{"four days already warned", now.Add(4 * 24 * time.Hour), func(th int) bool { return th == 7 }, 0, false},
		{"beyond largest threshold", now.Add(8 * 24 * time.Hour), noneSent, 0, false},
		{"already expired", now.Add(-time.Hour), noneSent, 0, false},
		{"expiring this instant", now, noneSent, 0, false},
		{"one day left skips stale thresholds", now.Add(20 * time.Hour), noneSent, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := matchThreshold(thresholds, tc.until, now, tc.sent)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ---------- FindTenantsToWarn ----------

func expiringTenantRows(tenants ...model.Tenant) *mockRows {
	funcs := make([]func(dest ...any) error, 0, len(tenants))
	for _, tenant := range tenants {
		tenant := tenant
		funcs = append(funcs, func(dest ...any) error {
			*(dest[0].(*string)) = tenant.ID
			*(dest[1].(*string)) = tenant.Name
			*(dest[2].(*string)) = tenant.BillingStatus
			*(dest[4].(**time.Time)) = tenant.TrialStartedAt
			*(dest[5].(**time.Time)) = tenant.TrialEndsAt
			*(dest[6].(**time.Time)) = tenant.PremiumUntil
			return nil
		})
	}
	return newMockRows(funcs...)
}

func emailRows(emails ...string) *mockRows {
	funcs := make([]func(dest ...any) error, 0, len(emails))
	for _, email := range emails {
		email := email
		funcs = append(funcs, func(dest ...any) error {
			*(dest[0].(*string)) = email
			return nil
		})
	}
	return newMockRows(funcs...)
}

func TestWarningService_FindTenantsToWarn_TrialAtThreeDays(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)
	ctx := context.Background()

	ends := testNow.Add(3 * 24 * time.Hour)
	db.On("Query", ctx, queryContaining("FROM tenants"), mock.Anything).
		Return(expiringTenantRows(model.Tenant{
			ID: "tenant-1", Name: "acme", BillingStatus: model.BillingTrial, TrialEndsAt: &ends,
		}), nil)
	// The 7-day warning for this window was already delivered.
	db.On("Query", ctx, queryContaining("FROM sent_warnings"), mock.Anything).
		Return(newMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "tenant-1"
			*(dest[1].(*string)) = model.WarningKindTrial
			*(dest[2].(*int)) = 7
			*(dest[3].(*time.Time)) = ends
			return nil
		}), nil)
	db.On("Query", ctx, queryContaining("FROM tenant_admins"), mock.Anything).
		Return(emailRows("owner@acme.test", "admin@acme.test"), nil)

	candidates, err := svc.FindTenantsToWarn(ctx, []int{7, 3, 1})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "tenant-1", c.TenantID)
	assert.Equal(t, model.WarningKindTrial, c.Kind)
	assert.Equal(t, 3, c.ThresholdDays)
	assert.Equal(t, 3, c.DaysLeft)
	assert.Equal(t, ends, c.WarnForDate)
	assert.Equal(t, []string{"owner@acme.test", "admin@acme.test"}, c.RecipientAddresses)
}

func TestWarningService_FindTenantsToWarn_AlreadyWarned(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)
	ctx := context.Background()

	ends := testNow.Add(4 * 24 * time.Hour)
	db.On("Query", ctx, queryContaining("FROM tenants"), mock.Anything).
		Return(expiringTenantRows(model.Tenant{
			ID: "tenant-1", Name: "acme", BillingStatus: model.BillingTrial, TrialEndsAt: &ends,
		}), nil)
	db.On("Query", ctx, queryContaining("FROM sent_warnings"), mock.Anything).
		Return(newMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "tenant-1"
			*(dest[1].(*string)) = model.WarningKindTrial
			*(dest[2].(*int)) = 7
			*(dest[3].(*time.Time)) = ends
			return nil
		}), nil)

	candidates, err := svc.FindTenantsToWarn(ctx, []int{7, 3, 1})
	require.NoError(t, err)
	assert.Empty(t, candidates)
	db.AssertNotCalled(t, "Query", ctx, queryContaining("FROM tenant_admins"), mock.Anything)
}

func TestWarningService_FindTenantsToWarn_PremiumKind(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)
	ctx := context.Background()

	until := testNow.Add(7 * 24 * time.Hour)
	db.On("Query", ctx, queryContaining("FROM tenants"), mock.Anything).
		Return(expiringTenantRows(model.Tenant{
			ID: "tenant-2", Name: "globex", BillingStatus: model.BillingActive, PremiumUntil: &until,
		}), nil)
	db.On("Query", ctx, queryContaining("FROM sent_warnings"), mock.Anything).
		Return(newEmptyMockRows(), nil)
	db.On("Query", ctx, queryContaining("FROM tenant_admins"), mock.Anything).
		Return(emailRows("billing@globex.test"), nil)

	candidates, err := svc.FindTenantsToWarn(ctx, []int{7, 3, 1})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, model.WarningKindPremium, candidates[0].Kind)
	assert.Equal(t, 7, candidates[0].ThresholdDays)
}

func TestWarningService_FindTenantsToWarn_NoAdminEmailsSkipped(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)
	ctx := context.Background()

	ends := testNow.Add(3 * 24 * time.Hour)
	db.On("Query", ctx, queryContaining("FROM tenants"), mock.Anything).
		Return(expiringTenantRows(model.Tenant{
			ID: "tenant-1", Name: "acme", BillingStatus: model.BillingTrial, TrialEndsAt: &ends,
		}), nil)
	db.On("Query", ctx, queryContaining("FROM sent_warnings"), mock.Anything).
		Return(newEmptyMockRows(), nil)
	db.On("Query", ctx, queryContaining("FROM tenant_admins"), mock.Anything).
		Return(newEmptyMockRows(), nil)

	candidates, err := svc.FindTenantsToWarn(ctx, []int{7, 3, 1})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestWarningService_FindTenantsToWarn_NoMatches(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)
	ctx := context.Background()

	db.On("Query", ctx, queryContaining("FROM tenants"), mock.Anything).
		Return(newEmptyMockRows(), nil)

	candidates, err := svc.FindTenantsToWarn(ctx, []int{7, 3, 1})
	require.NoError(t, err)
	assert.Empty(t, candidates)
	// The ledger is not loaded when nothing is expiring.
	db.AssertNotCalled(t, "Query", ctx, queryContaining("FROM sent_warnings"), mock.Anything)
}

func TestWarningService_FindTenantsToWarn_NoThresholds(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)

	candidates, err := svc.FindTenantsToWarn(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
	db.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
}

// ---------- MarkWarningSent ----------

func TestWarningService_MarkWarningSent(t *testing.T) {
	db := &mockDB{}
	svc := newTestWarning(db, testNow)
	ctx := context.Background()

	ends := testNow.Add(3 * 24 * time.Hour)
	c := model.WarningCandidate{
		TenantID:      "tenant-1",
		Kind:          model.WarningKindTrial,
		ThresholdDays: 3,
		WarnForDate:   ends,
	}

	var execArgs []any
	db.On("Exec", ctx, queryContaining("ON CONFLICT"), mock.Anything).
		Run(func(args mock.Arguments) { execArgs = args.Get(2).([]any) }).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := svc.MarkWarningSent(ctx, c, "warn-1")
	require.NoError(t, err)

	require.Len(t, execArgs, 6)
	assert.Equal(t, "warn-1", execArgs[0])
	assert.Equal(t, "tenant-1", execArgs[1])
	assert.Equal(t, model.WarningKindTrial, execArgs[2])
	assert.Equal(t, 3, execArgs[3])
	assert.Equal(t, ends, execArgs[4])
}
