package service

import (
	"context"
	"errors"
	"fmt"

	"problemas/internal/database"
	"problemas/internal/metrics"
	"problemas/internal/models"
	"problemas/internal/policy"

	"github.com/rs/zerolog"
)

const DefaultAuditLimit = 200

type Dashboard struct {
	Users      []models.UserSummary
	TotalPosts int64
}

// AdminService implements the user-management operations. Every method
// requires an admin actor and refuses to act on the actor's own account.
type AdminService struct {
	store database.Store
	log   zerolog.Logger
}

func NewAdminService(store database.Store, log zerolog.Logger) *AdminService {
	return &AdminService{store: store, log: log}
}

func (s *AdminService) Dashboard(ctx context.Context, actor models.User) (*Dashboard, error) {
	if !policy.IsAdmin(actor) {
		return nil, models.ErrForbidden
	}

	users, err := s.store.Users().ListWithPostCounts(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Posts().Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Users: users, TotalPosts: total}, nil
}

// ToggleRole flips the target between admin and citizen and returns it with
// the new role loaded.
func (s *AdminService) ToggleRole(ctx context.Context, actor models.User, targetID uint) (*models.User, error) {
	const action = "role_change"

	var target *models.User
	err := s.store.Transaction(ctx, func(tx database.Store) error {
		var err error
		target, err = s.checkTarget(ctx, tx, actor, targetID, models.ErrSelfRoleChange)
		if err != nil {
			return err
		}

		from := target.Role.Name
		role, err := tx.Roles().FindByName(ctx, from.Toggled())
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateRole(ctx, target.ID, role.ID); err != nil {
			return err
		}
		target.RoleID = role.ID
		target.Role = *role

		return tx.Audit().Record(ctx, &models.AuditLog{
			UserID:    &actor.ID,
			ActorName: actor.Username,
			Entity:    models.AuditEntityUser,
			EntityID:  target.ID,
			Action:    models.AuditActionRoleChange,
			Details:   fmt.Sprintf("%s: %s -> %s", target.Username, from, role.Name),
		})
	})
	metrics.AdminActionsTotal.WithLabelValues(action, outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("actor_id", actor.ID).
		Uint("user_id", target.ID).
		Str("role", string(target.Role.Name)).
		Msg("user role changed")
	return target, nil
}

// DeleteUser removes the target and every post it owns in one transaction.
// It returns the removed user and the number of posts deleted with it.
func (s *AdminService) DeleteUser(ctx context.Context, actor models.User, targetID uint) (*models.User, int64, error) {
	const action = "user_delete"

	var (
		target *models.User
		posts  int64
	)
	err := s.store.Transaction(ctx, func(tx database.Store) error {
		var err error
		target, err = s.checkTarget(ctx, tx, actor, targetID, models.ErrSelfDelete)
		if err != nil {
			return err
		}

		if posts, err = tx.Posts().DeleteByOwner(ctx, target.ID); err != nil {
			return err
		}
		if err := tx.Audit().DetachActor(ctx, target.ID); err != nil {
			return err
		}
		if err := tx.Users().Delete(ctx, target.ID); err != nil {
			return err
		}

		return tx.Audit().Record(ctx, &models.AuditLog{
			UserID:    &actor.ID,
			ActorName: actor.Username,
			Entity:    models.AuditEntityUser,
			EntityID:  target.ID,
			Action:    models.AuditActionDelete,
			Details:   fmt.Sprintf("%s (%d publicaciones eliminadas)", target.Username, posts),
		})
	})
	metrics.AdminActionsTotal.WithLabelValues(action, outcome(err)).Inc()
	if err != nil {
		return nil, 0, err
	}

	s.log.Info().
		Uint("actor_id", actor.ID).
		Uint("user_id", target.ID).
		Int64("posts_deleted", posts).
		Msg("user deleted")
	return target, posts, nil
}

// AuditTrail returns the most recent journal entries.
func (s *AdminService) AuditTrail(ctx context.Context, actor models.User, limit int) ([]models.AuditLog, error) {
	if !policy.IsAdmin(actor) {
		return nil, models.ErrForbidden
	}
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	return s.store.Audit().Recent(ctx, limit)
}

// checkTarget applies the common preconditions: admin actor, existing target,
// target distinct from actor (selfErr otherwise).
func (s *AdminService) checkTarget(ctx context.Context, tx database.Store, actor models.User, targetID uint, selfErr error) (*models.User, error) {
	if !policy.IsAdmin(actor) {
		return nil, models.ErrForbidden
	}
	target, err := tx.Users().FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == actor.ID {
		return nil, selfErr
	}
	return target, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrForbidden):
		return "forbidden"
	case errors.Is(err, models.ErrSelfRoleChange), errors.Is(err, models.ErrSelfDelete):
		return "self"
	case errors.Is(err, models.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}
