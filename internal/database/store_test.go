package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"problemas/internal/config"
	"problemas/internal/database"
	"problemas/internal/database/dbtest"
	"problemas/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRoles_EnsureDefaultsIsIdempotent(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store, db := fx.Store, fx.DB
	ctx := context.Background()

	require.NoError(t, store.Roles().EnsureDefaults(ctx))

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.AllRoles)), count)

	_, err := store.Roles().FindByName(ctx, models.RoleName("superuser"))
	assert.ErrorIs(t, err, models.ErrRoleNotFound)
}

func TestUsers_CreateAndLookup(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	u := fx.User("ana", models.RoleCitizen)
	assert.Equal(t, models.RoleCitizen, u.Role.Name)

	byEmail, err := store.Users().FindByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = store.Users().FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = store.Users().FindByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	exists, err := store.Users().ExistsByUsernameOrEmail(ctx, "ana", "other@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Users().ExistsByUsernameOrEmail(ctx, "other", "Ana@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Users().ExistsByUsernameOrEmail(ctx, "other", "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUsers_CreateDuplicateUsername(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	u := fx.User("ana", models.RoleCitizen)

	dup := &models.User{Username: "ana", Email: "x@example.com", PasswordHash: "h", RoleID: u.RoleID}
	assert.ErrorIs(t, store.Users().Create(ctx, dup), models.ErrUserExists)
}

func TestUsers_UpdateRoleAndCount(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	u := fx.User("ana", models.RoleCitizen)
	admin, err := store.Roles().FindByName(ctx, models.RoleAdmin)
	require.NoError(t, err)

	n, err := store.Users().CountByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, store.Users().UpdateRole(ctx, u.ID, admin.ID))

	reloaded, err := store.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, reloaded.Role.Name)

	n, err = store.Users().CountByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, store.Users().UpdateRole(ctx, 9999, admin.ID), models.ErrUserNotFound)
}

func TestUsers_ListWithPostCounts(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	ana := fx.User("ana", models.RoleCitizen)
	beto := fx.User("beto", models.RoleAdmin)
	fx.Post(ana, "bache")
	fx.Post(ana, "luz")

	rows, err := store.Users().ListWithPostCounts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ana.ID, rows[0].User.ID)
	assert.Equal(t, int64(2), rows[0].PostCount)
	assert.Equal(t, beto.ID, rows[1].User.ID)
	assert.Equal(t, int64(0), rows[1].PostCount)
	assert.Equal(t, models.RoleAdmin, rows[1].User.Role.Name)
}

func TestPosts_ListNewestFirst(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	ana := fx.User("ana", models.RoleCitizen)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		title  string
		offset time.Duration
	}{
		{"viejo", 0},
		{"nuevo", 2 * time.Hour},
		{"medio", time.Hour},
	}
	for _, s := range seed {
		require.NoError(t, store.Posts().Create(ctx, &models.Post{
			Title: s.title, Content: "c", ContactInfo: "1", DatePosted: base.Add(s.offset), UserID: ana.ID,
		}))
	}

	posts, err := store.Posts().ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"nuevo", "medio", "viejo"}, []string{posts[0].Title, posts[1].Title, posts[2].Title})
	assert.Equal(t, "ana", posts[0].Author.Username)
}

func TestPosts_UpdateKeepsOwnerAndDate(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	ana := fx.User("ana", models.RoleCitizen)
	beto := fx.User("beto", models.RoleCitizen)
	p := fx.Post(ana, "bache")
	original, err := store.Posts().FindByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, store.Posts().Update(ctx, &models.Post{
		ID: p.ID, Title: "bache grande", Content: "nuevo", ContactInfo: "595", UserID: beto.ID,
	}))

	got, err := store.Posts().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "bache grande", got.Title)
	assert.Equal(t, "nuevo", got.Content)
	assert.Equal(t, "595", got.ContactInfo)
	assert.Equal(t, ana.ID, got.UserID)
	assert.True(t, original.DatePosted.Equal(got.DatePosted))

	assert.ErrorIs(t, store.Posts().Update(ctx, &models.Post{ID: 9999, Title: "x"}), models.ErrPostNotFound)
}

func TestPosts_DeleteAndCounts(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	ana := fx.User("ana", models.RoleCitizen)
	p1 := fx.Post(ana, "uno")
	fx.Post(ana, "dos")

	n, err := store.Posts().CountByOwner(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, store.Posts().Delete(ctx, p1.ID))
	assert.ErrorIs(t, store.Posts().Delete(ctx, p1.ID), models.ErrPostNotFound)

	_, err = store.Posts().FindByID(ctx, p1.ID)
	assert.ErrorIs(t, err, models.ErrPostNotFound)

	deleted, err := store.Posts().DeleteByOwner(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	total, err := store.Posts().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	ana := fx.User("ana", models.RoleCitizen)
	fx.Post(ana, "uno")

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx database.Store) error {
		if _, err := tx.Posts().DeleteByOwner(ctx, ana.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := store.Posts().CountByOwner(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAudit_RecordRecentDetach(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	ana := fx.User("ana", models.RoleAdmin)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Audit().Record(ctx, &models.AuditLog{
			UserID: &ana.ID, ActorName: ana.Username,
			Entity: models.AuditEntityPost, EntityID: uint(i + 1), Action: models.AuditActionDelete,
		}))
	}

	logs, err := store.Audit().Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, uint(3), logs[0].EntityID)

	require.NoError(t, store.Audit().DetachActor(ctx, ana.ID))
	logs, err = store.Audit().Recent(ctx, 10)
	require.NoError(t, err)
	for _, l := range logs {
		assert.Nil(t, l.UserID)
		assert.Equal(t, "ana", l.ActorName)
	}
}

func TestSeed_CreatesAdminOnce(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()
	admin := config.AdminConfig{Username: "root", Email: "root@example.com", Password: "Secret123"}

	require.NoError(t, database.Seed(ctx, store, admin, bcrypt.MinCost, zerolog.Nop()))
	require.NoError(t, database.Seed(ctx, store, admin, bcrypt.MinCost, zerolog.Nop()))

	n, err := store.Users().CountByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	u, err := store.Users().FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Secret123")))
}

func TestSeed_SkipsWithoutCredentials(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	ctx := context.Background()

	require.NoError(t, database.Seed(ctx, store, config.AdminConfig{Username: "root"}, bcrypt.MinCost, zerolog.Nop()))

	n, err := store.Users().CountByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPing(t *testing.T) {
	fx := dbtest.NewFixture(t)
	store := fx.Store
	assert.NoError(t, store.Ping(context.Background()))
}
