package servers

import (
	"context"
	"fmt"
	"testing"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/errors"
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
	require.NoError(t, conn.AutoMigrate(&models.Server{}))
	return NewService(NewRepository(conn))
}

func requireCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	typed := errors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateRequest{
		Name:        "  Survival One  ",
		Description: "the main survival world",
	}.ToInput())
	require.NoError(t, err)
	require.Equal(t, "survival one", view.Identifier)
	require.Equal(t, "Survival One", view.Name)

	got, err := svc.Get(ctx, view.ID, false)
	require.NoError(t, err)
	require.Equal(t, view.ID, got.ID)
}

func TestCreateConflictOnIdentifier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Skyblock", Description: "floating islands"}.ToInput())
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "SKYBLOCK", Description: "another one"}.ToInput())
	requireCode(t, err, errors.CodeConflict)
}

func TestDeleteHidesFromUnprivilegedAndFreesIdentifier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateRequest{Name: "Seasonal", Description: "rotates monthly"}.ToInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, view.ID))

	// Unprivileged existence check fails, privileged still sees the row.
	_, err = svc.Get(ctx, view.ID, false)
	requireCode(t, err, errors.CodeNotFound)

	got, err := svc.Get(ctx, view.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)

	// Not idempotent.
	requireCode(t, svc.Delete(ctx, view.ID), errors.CodeNotFound)

	// The tombstone freed the name.
	_, err = svc.Create(ctx, CreateRequest{Name: "Seasonal", Description: "rotates monthly"}.ToInput())
	require.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateRequest{Name: "Alpha World", Description: "first world"}.ToInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Beta World", Description: "second world"}.ToInput())
	require.NoError(t, err)

	name := "Beta World"
	_, err = svc.Update(ctx, first.ID, UpdateRequest{Name: &name}.ToInput())
	requireCode(t, err, errors.CodeConflict)

	name = "Gamma World"
	view, err := svc.Update(ctx, first.ID, UpdateRequest{Name: &name}.ToInput())
	require.NoError(t, err)
	require.Equal(t, "gamma world", view.Identifier)

	_, err = svc.Update(ctx, "missing-id", UpdateRequest{Name: &name}.ToInput())
	requireCode(t, err, errors.CodeNotFound)
}

func TestListVisibility(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	live, err := svc.Create(ctx, CreateRequest{Name: "Kept Server", Description: "stays live"}.ToInput())
	require.NoError(t, err)
	gone, err := svc.Create(ctx, CreateRequest{Name: "Gone Server", Description: "gets deleted"}.ToInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, gone.ID))

	public, err := svc.List(ctx, listing.Query{Page: 1}, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, public.TotalServers)
	require.Equal(t, live.ID, public.Servers[0].ID)

	admin, err := svc.List(ctx, listing.Query{Page: 1}, true)
	require.NoError(t, err)
	require.EqualValues(t, 2, admin.TotalServers)
}
