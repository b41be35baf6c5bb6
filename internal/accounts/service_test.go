package accounts

import (
	"context"
	"fmt"
	"testing"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/enums"
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
	require.NoError(t, conn.AutoMigrate(&models.AdminUser{}))

	passwords := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return NewService(NewRepository(conn), passwords)
}

func requireCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	typed := errors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestCreateNormalizesAndGeneratesPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := CreateRequest{Nickname: "  NewUser  ", Email: "  NewUser@Gmail.com "}
	view, password, err := svc.Create(ctx, req.ToInput())
	require.NoError(t, err)
	require.Equal(t, "newuser", view.Identifier)
	require.Equal(t, "NewUser", view.Nickname)
	require.Equal(t, "newuser@gmail.com", view.Email)
	require.Equal(t, enums.RoleAdmin, view.Permission)
	require.Len(t, password, 12)

	// The stored hash verifies against the one-time password.
	user, err := svc.VerifyCredentials(ctx, "newuser@gmail.com", password)
	require.NoError(t, err)
	require.Equal(t, view.ID, user.ID)

	fetched, err := svc.GetByIdentifier(ctx, "NewUser")
	require.NoError(t, err)
	require.Equal(t, view.ID, fetched.ID)
}

func TestCreateConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateRequest{Nickname: "Taken", Email: "taken@gmail.com"}.ToInput())
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, CreateRequest{Nickname: "taken", Email: "other@gmail.com"}.ToInput())
	requireCode(t, err, errors.CodeConflict)

	_, _, err = svc.Create(ctx, CreateRequest{Nickname: "Other", Email: "taken@gmail.com"}.ToInput())
	requireCode(t, err, errors.CodeConflict)
}

func TestDeleteFreesIdentifierForReuse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateRequest{Nickname: "Recycle", Email: "recycle@gmail.com"}.ToInput())
	require.NoError(t, err)

	self, err := svc.Delete(ctx, "recycle", "someone_else")
	require.NoError(t, err)
	require.False(t, self)

	// Deleting again answers not-found, not an idempotent success.
	_, err = svc.Delete(ctx, "recycle", "someone_else")
	requireCode(t, err, errors.CodeNotFound)

	_, err = svc.GetByIdentifier(ctx, "recycle")
	requireCode(t, err, errors.CodeNotFound)

	// Tombstoning freed the natural keys.
	_, _, err = svc.Create(ctx, CreateRequest{Nickname: "Recycle", Email: "recycle@gmail.com"}.ToInput())
	require.NoError(t, err)
}

func TestDeleteSelfDetected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateRequest{Nickname: "Leaver", Email: "leaver@gmail.com"}.ToInput())
	require.NoError(t, err)

	self, err := svc.Delete(ctx, "leaver", "Leaver")
	require.NoError(t, err)
	require.True(t, self)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateRequest{Nickname: "First", Email: "first@gmail.com"}.ToInput())
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, CreateRequest{Nickname: "Second", Email: "second@gmail.com"}.ToInput())
	require.NoError(t, err)

	nickname := "Renamed"
	manager := string(enums.RoleManager)
	view, err := svc.Update(ctx, "first", UpdateRequest{Nickname: &nickname, Permission: &manager}.ToInput())
	require.NoError(t, err)
	require.Equal(t, "renamed", view.Identifier)
	require.Equal(t, enums.RoleManager, view.Permission)

	// Old identifier is gone, new one resolves.
	_, err = svc.GetByIdentifier(ctx, "first")
	requireCode(t, err, errors.CodeNotFound)
	_, err = svc.GetByIdentifier(ctx, "renamed")
	require.NoError(t, err)

	// Taking the other account's email conflicts.
	email := "second@gmail.com"
	_, err = svc.Update(ctx, "renamed", UpdateRequest{Email: &email}.ToInput())
	requireCode(t, err, errors.CodeConflict)

	_, err = svc.Update(ctx, "missing", UpdateRequest{Nickname: &nickname}.ToInput())
	requireCode(t, err, errors.CodeNotFound)
}

func TestUpdatePasswordChangesCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, password, err := svc.Create(ctx, CreateRequest{Nickname: "Rotate", Email: "rotate@gmail.com"}.ToInput())
	require.NoError(t, err)

	newPassword := "fresh-secret"
	_, err = svc.Update(ctx, "rotate", UpdateRequest{Password: &newPassword}.ToInput())
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "rotate@gmail.com", password)
	requireCode(t, err, errors.CodeWrongPassword)
	_, err = svc.VerifyCredentials(ctx, "rotate@gmail.com", newPassword)
	require.NoError(t, err)
}

func TestVerifyCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.VerifyCredentials(ctx, "nobody@gmail.com", "whatever")
	requireCode(t, err, errors.CodeNotFound)

	_, password, err := svc.Create(ctx, CreateRequest{Nickname: "Login", Email: "login@gmail.com"}.ToInput())
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "login@gmail.com", password+"x")
	requireCode(t, err, errors.CodeWrongPassword)
}

func TestListIncludesDeletedAndFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := svc.Create(ctx, CreateRequest{
			Nickname: fmt.Sprintf("Player_%d", i),
			Email:    fmt.Sprintf("player%d@gmail.com", i),
		}.ToInput())
		require.NoError(t, err)
	}
	_, err := svc.Delete(ctx, "player_0", "boss")
	require.NoError(t, err)

	result, err := svc.List(ctx, listing.Query{Page: 1})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.TotalUsers)

	deleted := 0
	for _, user := range result.Users {
		if user.DeletedAt != nil {
			deleted++
		}
	}
	require.Equal(t, 1, deleted)

	result, err = svc.List(ctx, listing.Query{Page: 1, Search: "player_1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.TotalUsers)
	require.Len(t, result.Users, 1)
	require.Equal(t, "player_1", result.Users[0].Identifier)
}
