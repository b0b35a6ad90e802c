package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"problemas/internal/database"
	"problemas/internal/metrics"
	"problemas/internal/models"
	"problemas/internal/policy"

	"github.com/rs/zerolog"
)

type PostInput struct {
	Title       string `validate:"required,max=100" label:"título"`
	Content     string `validate:"required" label:"descripción"`
	ContactInfo string `validate:"required,max=100" label:"contacto"`
}

func (in PostInput) normalized() PostInput {
	return PostInput{
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		ContactInfo: NormalizeContact(in.ContactInfo),
	}
}

type PostService struct {
	store database.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewPostService(store database.Store, log zerolog.Logger) *PostService {
	return &PostService{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns every post with its author, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.store.Posts().ListNewestFirst(ctx)
}

// Create stores a post owned by actor.
func (s *PostService) Create(ctx context.Context, actor models.User, in PostInput) (*models.Post, error) {
	in = in.normalized()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		ContactInfo: in.ContactInfo,
		DatePosted:  s.now(),
		UserID:      actor.ID,
	}
	if err := s.store.Posts().Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = actor

	metrics.PostsTotal.WithLabelValues("create").Inc()
	s.log.Info().Uint("post_id", post.ID).Uint("user_id", actor.ID).Msg("post created")
	return post, nil
}

// Editable loads a post that actor is allowed to modify.
func (s *PostService) Editable(ctx context.Context, actor models.User, id uint) (*models.Post, error) {
	return authorizedPost(ctx, s.store, actor, id)
}

// Update rewrites title, content and contact; owner and date are untouched.
func (s *PostService) Update(ctx context.Context, actor models.User, id uint, in PostInput) (*models.Post, error) {
	in = in.normalized()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var updated *models.Post
	err := s.store.Transaction(ctx, func(tx database.Store) error {
		post, err := authorizedPost(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		post.Title = in.Title
		post.Content = in.Content
		post.ContactInfo = in.ContactInfo
		if err := tx.Posts().Update(ctx, post); err != nil {
			return err
		}
		if err := auditModeration(ctx, tx, actor, post, models.AuditActionUpdate); err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PostsTotal.WithLabelValues("update").Inc()
	s.log.Info().Uint("post_id", id).Uint("actor_id", actor.ID).Msg("post updated")
	return updated, nil
}

// Delete removes the post permanently.
func (s *PostService) Delete(ctx context.Context, actor models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx database.Store) error {
		post, err := authorizedPost(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := tx.Posts().Delete(ctx, post.ID); err != nil {
			return err
		}
		return auditModeration(ctx, tx, actor, post, models.AuditActionDelete)
	})
	if err != nil {
		return err
	}

	metrics.PostsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Uint("post_id", id).Uint("actor_id", actor.ID).Msg("post deleted")
	return nil
}

func authorizedPost(ctx context.Context, store database.Store, actor models.User, id uint) (*models.Post, error) {
	post, err := store.Posts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(actor, post.UserID) {
		return nil, models.ErrForbidden
	}
	return post, nil
}

// auditModeration journals changes an admin makes to someone else's post.
func auditModeration(ctx context.Context, store database.Store, actor models.User, post *models.Post, action string) error {
	if actor.ID == post.UserID {
		return nil
	}
	return store.Audit().Record(ctx, &models.AuditLog{
		UserID:    &actor.ID,
		ActorName: actor.Username,
		Entity:    models.AuditEntityPost,
		EntityID:  post.ID,
		Action:    action,
		Details:   fmt.Sprintf("%q de %s", post.Title, post.Author.Username),
	})
}
