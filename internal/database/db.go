package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"problemas/internal/config"
	"problemas/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to the configured database, retrying while it comes up, and
// runs the migrations.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		log.Info().Int("attempt", i).Str("driver", cfg.Driver).Msg("connecting to database")

		db, err = gorm.Open(dialector(cfg), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}

		log.Warn().Err(err).Int("attempt", i).Msg("database connection failed")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Msg("database ready")
	return db, nil
}

func dialector(cfg config.DBConfig) gorm.Dialector {
	if cfg.Driver == config.DriverPostgres {
		return postgres.Open(cfg.DSN)
	}
	return sqlite.Open(sqliteDSN(cfg.DSN))
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Post{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Seed creates the fixed role rows and, when configured, a bootstrap admin.
func Seed(ctx context.Context, store Store, admin config.AdminConfig, cost int, log zerolog.Logger) error {
	if err := store.Roles().EnsureDefaults(ctx); err != nil {
		return err
	}

	count, err := store.Users().CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if !admin.Enabled() {
		log.Warn().Msg("no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
		return nil
	}

	role, err := store.Roles().FindByName(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &models.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := store.Users().Create(ctx, user); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.Info().Str("username", user.Username).Str("email", user.Email).Msg("created default admin")
	return nil
}
