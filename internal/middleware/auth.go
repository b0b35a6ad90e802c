package middleware

import (
	"net/http"

	"problemas/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// FlashInfo is the session flash key used for neutral notices.
const FlashInfo = "info"

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentActor(c); !ok {
			sess := sessions.Default(c)
			sess.AddFlash("Por favor inicia sesión para acceder a esta página.", FlashInfo)
			_ = sess.Save()

			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnonymous sends logged-in users away from the login and register pages.
func RequireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentActor(c); ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...models.RoleName) gin.HandlerFunc {
	roleSet := map[models.RoleName]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, ok := roleSet[actor.Role.Name]; !ok {
			c.String(http.StatusForbidden, "acceso denegado")
			c.Abort()
			return
		}
		c.Next()
	}
}
