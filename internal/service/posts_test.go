package service

import (
	"context"
	"testing"
	"time"

	"problemas/internal/database/dbtest"
	"problemas/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPosts(t *testing.T) (*PostService, *dbtest.Fixture) {
	t.Helper()
	fx := dbtest.NewFixture(t)
	return NewPostService(fx.Store, zerolog.Nop()), fx
}

func TestPostService_Create(t *testing.T) {
	svc, fx := newPosts(t)
	fixed := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ana := fx.User("ana", models.RoleCitizen)
	post, err := svc.Create(context.Background(), *ana, PostInput{
		Title:       "  Bache en la avenida ",
		Content:     "Hay un bache enorme",
		ContactInfo: "0981 123-456",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bache en la avenida", post.Title)
	assert.Equal(t, "595981123456", post.ContactInfo)
	assert.Equal(t, ana.ID, post.UserID)

	stored, err := fx.Store.Posts().FindByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(stored.DatePosted))
	assert.Equal(t, "ana", stored.Author.Username)
}

func TestPostService_Create_Validation(t *testing.T) {
	svc, fx := newPosts(t)
	ana := fx.User("ana", models.RoleCitizen)

	cases := map[string]PostInput{
		"no title":         {Content: "c", ContactInfo: "0981"},
		"no content":       {Title: "t", ContactInfo: "0981"},
		"contact is noise": {Title: "t", Content: "c", ContactInfo: " ( ) - + "},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), *ana, in)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}

	posts, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostService_UpdateByOwner(t *testing.T) {
	svc, fx := newPosts(t)
	ctx := context.Background()
	ana := fx.User("ana", models.RoleCitizen)
	p := fx.Post(ana, "bache")

	updated, err := svc.Update(ctx, *ana, p.ID, PostInput{Title: "bache 2", Content: "más grande", ContactInfo: "+595 981 000 111"})
	require.NoError(t, err)
	assert.Equal(t, "bache 2", updated.Title)
	assert.Equal(t, "595981000111", updated.ContactInfo)
	assert.Equal(t, ana.ID, updated.UserID)

	// owners editing their own posts are not journaled
	logs, err := fx.Store.Audit().Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestPostService_AdminModerationIsAudited(t *testing.T) {
	svc, fx := newPosts(t)
	ctx := context.Background()
	ana := fx.User("ana", models.RoleCitizen)
	root := fx.User("root", models.RoleAdmin)
	p := fx.Post(ana, "bache")

	_, err := svc.Update(ctx, *root, p.ID, PostInput{Title: "editado", Content: "c", ContactInfo: "021"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, *root, p.ID))

	logs, err := fx.Store.Audit().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.AuditActionDelete, logs[0].Action)
	assert.Equal(t, models.AuditActionUpdate, logs[1].Action)
	assert.Equal(t, "root", logs[0].ActorName)
	assert.Equal(t, p.ID, logs[0].EntityID)
}

func TestPostService_NonOwnerCitizenIsForbidden(t *testing.T) {
	svc, fx := newPosts(t)
	ctx := context.Background()
	ana := fx.User("ana", models.RoleCitizen)
	beto := fx.User("beto", models.RoleCitizen)
	p := fx.Post(ana, "bache")

	_, err := svc.Editable(ctx, *beto, p.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Update(ctx, *beto, p.ID, PostInput{Title: "hack", Content: "c", ContactInfo: "1"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, *beto, p.ID), models.ErrForbidden)

	stored, err := fx.Store.Posts().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "bache", stored.Title)
}

func TestPostService_NotFound(t *testing.T) {
	svc, fx := newPosts(t)
	ctx := context.Background()
	root := fx.User("root", models.RoleAdmin)

	_, err := svc.Editable(ctx, *root, 77)
	assert.ErrorIs(t, err, models.ErrPostNotFound)
	_, err = svc.Update(ctx, *root, 77, PostInput{Title: "t", Content: "c", ContactInfo: "1"})
	assert.ErrorIs(t, err, models.ErrPostNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, *root, 77), models.ErrPostNotFound)
}

func TestPostService_OwnerDeletes(t *testing.T) {
	svc, fx := newPosts(t)
	ctx := context.Background()
	ana := fx.User("ana", models.RoleCitizen)
	p := fx.Post(ana, "bache")

	require.NoError(t, svc.Delete(ctx, *ana, p.ID))

	_, err := fx.Store.Posts().FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}
