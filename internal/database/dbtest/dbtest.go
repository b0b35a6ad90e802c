// Package dbtest builds throwaway SQLite-backed stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"problemas/internal/database"
	"problemas/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Password is the plaintext credential of every user created by Fixture.User.
const Password = "secret123"

type Fixture struct {
	t     *testing.T
	DB    *gorm.DB
	Store *database.GormStore
}

// NewFixture opens a migrated database in t.TempDir with the roles seeded.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps SQLite from reporting "database is locked"
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	store := database.NewStore(db)
	require.NoError(t, store.Roles().EnsureDefaults(context.Background()))

	return &Fixture{t: t, DB: db, Store: store}
}

// User inserts username@example.com with the given role and Password.
func (f *Fixture) User(username string, role models.RoleName) *models.User {
	f.t.Helper()
	ctx := context.Background()

	r, err := f.Store.Roles().FindByName(ctx, role)
	require.NoError(f.t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(f.t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		RoleID:       r.ID,
	}
	require.NoError(f.t, f.Store.Users().Create(ctx, user))

	loaded, err := f.Store.Users().FindByID(ctx, user.ID)
	require.NoError(f.t, err)
	return loaded
}

// Post inserts a post owned by owner.
func (f *Fixture) Post(owner *models.User, title string) *models.Post {
	f.t.Helper()

	post := &models.Post{
		Title:       title,
		Content:     "contenido de " + title,
		ContactInfo: "595981000000",
		DatePosted:  time.Now().UTC(),
		UserID:      owner.ID,
	}
	require.NoError(f.t, f.Store.Posts().Create(context.Background(), post))
	return post
}

func (f *Fixture) CountUsers() int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.DB.Model(&models.User{}).Count(&n).Error)
	return n
}

// OrphanPosts counts posts whose owner row no longer exists.
func (f *Fixture) OrphanPosts() int64 {
	f.t.Helper()
	var n int64
	err := f.DB.Model(&models.Post{}).
		Where("user_id NOT IN (?)", f.DB.Model(&models.User{}).Select("id")).
		Count(&n).Error
	require.NoError(f.t, err)
	return n
}
