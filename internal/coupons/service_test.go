package coupons

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Coupon{}))
	return NewService(NewRepository(conn))
}

func requireCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	typed := errors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func validCreate(code string) CreateInput {
	return CreateRequest{
		Code:        code,
		Name:        "Summer Sale",
		Description: "ten percent off everything",
		Discount:    decimal.RequireFromString("0.10"),
		StartsAt:    time.Now().Add(time.Hour),
		EndsAt:      time.Now().Add(48 * time.Hour),
	}.ToInput()
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateRequest{
		Code:        "  SUMMER10 ",
		Name:        "Summer Sale",
		Description: "ten percent off everything",
		Discount:    decimal.RequireFromString("0.10"),
		StartsAt:    time.Now().Add(time.Hour),
		EndsAt:      time.Now().Add(48 * time.Hour),
	}.ToInput())
	require.NoError(t, err)
	require.Equal(t, "summer10", view.Code)

	got, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	require.Equal(t, view.ID, got.ID)

	_, err = svc.Get(ctx, "missing")
	requireCode(t, err, errors.CodeNotFound)
}

func TestCreateRejectsBadWindows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	input := validCreate("pastcode")
	input.StartsAt = time.Now().Add(-time.Hour)
	_, err := svc.Create(ctx, input)
	requireCode(t, err, errors.CodeInvalidRequest)

	input = validCreate("backward")
	input.StartsAt = time.Now().Add(48 * time.Hour)
	input.EndsAt = time.Now().Add(time.Hour)
	_, err = svc.Create(ctx, input)
	requireCode(t, err, errors.CodeInvalidRequest)

	// Both bounds in the past reports every violated rule at once.
	input = validCreate("allwrong")
	input.StartsAt = time.Now().Add(-2 * time.Hour)
	input.EndsAt = time.Now().Add(-3 * time.Hour)
	_, err = svc.Create(ctx, input)
	requireCode(t, err, errors.CodeInvalidRequest)
	require.Len(t, errors.As(err).Details(), 3)
}

func TestCreateConflictOnCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreate("taken_code"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validCreate("taken_code"))
	requireCode(t, err, errors.CodeConflict)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreate("first_code"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validCreate("second_code"))
	require.NoError(t, err)

	code := "second_code"
	_, err = svc.Update(ctx, first.ID, UpdateRequest{Code: &code}.ToInput())
	requireCode(t, err, errors.CodeConflict)

	// The merged window must stay ordered even when only one bound moves.
	badEnd := first.StartsAt.Add(-time.Minute)
	_, err = svc.Update(ctx, first.ID, UpdateRequest{EndsAt: &badEnd}.ToInput())
	requireCode(t, err, errors.CodeInvalidRequest)

	// A running coupon can still be edited; only creation rejects past starts.
	pastStart := time.Now().Add(-time.Hour)
	discount := decimal.RequireFromString("0.25")
	view, err := svc.Update(ctx, first.ID, UpdateRequest{StartsAt: &pastStart, Discount: &discount}.ToInput())
	require.NoError(t, err)
	require.True(t, view.Discount.Equal(discount))

	_, err = svc.Update(ctx, "missing", UpdateRequest{Discount: &discount}.ToInput())
	requireCode(t, err, errors.CodeNotFound)
}

func TestDeleteFreesCodeAndKeepsRowVisible(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, validCreate("reusable"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, view.ID))
	requireCode(t, svc.Delete(ctx, view.ID), errors.CodeNotFound)

	// Reads keep answering for deleted coupons.
	got, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)

	// The tombstone freed the code for a new coupon.
	_, err = svc.Create(ctx, validCreate("reusable"))
	require.NoError(t, err)

	result, err := svc.List(ctx, listing.Query{Page: 1})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.TotalCoupons)
}
