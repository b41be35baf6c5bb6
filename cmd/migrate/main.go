package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/db"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/gamestore/admin-backend/pkg/migrate"
	"github.com/gamestore/admin-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const usage = "usage: migrate <up|down|status|seed>"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fail(usage)
	}
	command := strings.ToLower(os.Args[1])

	cfg, err := config.Load()
	if err != nil {
		fail("loading config: " + err.Error())
	}

	logg := logger.New(logger.Options{
		ServiceName: "gamestore-admin-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		fail("connecting: " + err.Error())
	}
	defer func() {
		_ = client.Close()
	}()

	sqlDB, err := client.DB().DB()
	if err != nil {
		fail("getting sql handle: " + err.Error())
	}

	switch command {
	case "up":
		err = migrate.Up(ctx, sqlDB)
	case "down":
		err = migrate.Down(ctx, sqlDB)
	case "status":
		err = migrate.Status(ctx, sqlDB)
	case "seed":
		err = seedDefaultManager(ctx, client.DB(), cfg)
	default:
		fail(usage)
	}
	if err != nil {
		fail(command + ": " + err.Error())
	}

	logg.Info(ctx, "migrate "+command+" completed")
}

// seedDefaultManager provisions the bootstrap manager account once; reruns
// are no-ops while a live account holds the seeded identifier.
func seedDefaultManager(ctx context.Context, conn *gorm.DB, cfg *config.Config) error {
	identifier := strings.ToLower(strings.TrimSpace(cfg.Seed.ManagerNickname))

	var existing models.AdminUser
	err := conn.WithContext(ctx).Where("identifier = ?", identifier).First(&existing).Error
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.Seed.ManagerPassword, cfg.Password)
	if err != nil {
		return err
	}

	return conn.WithContext(ctx).Create(&models.AdminUser{
		ID:         uuid.NewString(),
		Identifier: identifier,
		Nickname:   strings.TrimSpace(cfg.Seed.ManagerNickname),
		Email:      strings.ToLower(strings.TrimSpace(cfg.Seed.ManagerEmail)),
		Password:   hash,
		Permission: enums.RoleManager,
	}).Error
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
