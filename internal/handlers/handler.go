package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"problemas/internal/middleware"
	"problemas/internal/models"
	"problemas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services every route needs. The acting user is read per
// request with middleware.CurrentActor and passed to the services explicitly.
type Handler struct {
	auth  *service.AuthService
	posts *service.PostService
	admin *service.AdminService
	db    Pinger
	log   zerolog.Logger
}

func New(auth *service.AuthService, posts *service.PostService, admin *service.AdminService, db Pinger, log zerolog.Logger) *Handler {
	return &Handler{auth: auth, posts: posts, admin: admin, db: db, log: log}
}

// idParam parses a positive numeric path parameter; anything else is a 404.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		renderError(c, http.StatusNotFound, "Recurso no encontrado")
		return 0, false
	}
	return uint(id), true
}

// actor returns the authenticated user. Routes using it sit behind
// middleware.RequireAuth, so a miss is a wiring bug.
func actor(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentActor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
	return user, ok
}

// fail maps terminal errors to a response: 403, 404, or a logged 500.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrForbidden):
		renderError(c, http.StatusForbidden, "Acceso denegado")
	case errors.Is(err, models.ErrUserNotFound):
		renderError(c, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, models.ErrPostNotFound):
		renderError(c, http.StatusNotFound, "Publicación no encontrada")
	default:
		h.log.Error().
			Err(err).
			Str("request_id", c.Writer.Header().Get(middleware.RequestIDHeader)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("unhandled error")
		renderError(c, http.StatusInternalServerError, "Error interno del servidor")
	}
}

// validationMessage turns a validation error into the inline form notice.
func validationMessage(err error) (string, bool) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Error(), true
	}
	return "", false
}
