package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/jobboard/internal/model"
)

func TestTenantService_Create(t *testing.T) {
	db := &mockDB{}
	svc := NewTenantService(db)
	ctx := context.Background()

	tenant := &model.Tenant{
		ID:            "tenant-1",
		Name:          "acme",
		BillingStatus: model.BillingNone,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{"tenant-1", "acme", model.BillingNone, testNow, testNow},
	).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	require.NoError(t, svc.Create(ctx, tenant))
	db.AssertExpectations(t)
}

func TestTenantService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewTenantService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"ghost"}).Return(noRow())

	tenant, err := svc.GetByID(ctx, "ghost")
	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestTenantService_GetByID_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewTenantService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"tenant-1"}).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			return errors.New("connection refused")
		}})

	tenant, err := svc.GetByID(ctx, "tenant-1")
	assert.Nil(t, tenant)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get tenant tenant-1")
}

func TestTenantService_List_Pagination(t *testing.T) {
	db := &mockDB{}
	svc := NewTenantService(db)
	ctx := context.Background()

	rows := newMockRows(
		func(dest ...any) error { *(dest[0].(*string)) = "tenant-1"; return nil },
		func(dest ...any) error { *(dest[0].(*string)) = "tenant-2"; return nil },
		func(dest ...any) error { *(dest[0].(*string)) = "tenant-3"; return nil },
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	tenants, hasMore, err := svc.List(ctx, "", 2, "")
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, tenants, 2)
	assert.Equal(t, "tenant-1", tenants[0].ID)
}

func TestTenantService_ListAdmins_OwnerFirstOrdering(t *testing.T) {
	db := &mockDB{}
	svc := NewTenantService(db)
	ctx := context.Background()

	var capturedSQL string
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"tenant-1"}).
		Run(func(args mock.Arguments) { capturedSQL = args.Get(1).(string) }).
		Return(newMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "admin-1"
			*(dest[1].(*string)) = "tenant-1"
			*(dest[2].(*string)) = "owner@acme.test"
			*(dest[3].(*bool)) = true
			*(dest[4].(*time.Time)) = testNow
			return nil
		}), nil)

	admins, err := svc.ListAdmins(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsOwner)
	assert.Contains(t, capturedSQL, "ORDER BY is_owner DESC, created_at, id")
}
