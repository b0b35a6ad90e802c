package middleware

import (
	"context"
	"errors"

	"problemas/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// SessionUserKey is the session value holding the logged-in user's id.
	SessionUserKey = "user_id"

	actorKey = "CurrentUser"
)

type ActorLoader interface {
	Actor(ctx context.Context, id uint) (*models.User, error)
}

// InjectUser resolves the session's user id into the request's actor. The
// user is reloaded on every request so role changes apply immediately.
func InjectUser(loader ActorLoader, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserKey).(uint); ok && uid > 0 {
			user, err := loader.Actor(c.Request.Context(), uid)
			switch {
			case err == nil:
				c.Set(actorKey, *user)
			case errors.Is(err, models.ErrUserNotFound):
				// account removed while the session was alive
				sess.Clear()
				_ = sess.Save()
			default:
				log.Error().Err(err).Uint("user_id", uid).Msg("load session user")
			}
		}

		c.Next()
	}
}

// CurrentActor returns the actor set by InjectUser.
func CurrentActor(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
