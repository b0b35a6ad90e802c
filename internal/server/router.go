package server

import (
	"net/http"

	"problemas/internal/config"
	"problemas/internal/database"
	"problemas/internal/handlers"
	"problemas/internal/middleware"
	"problemas/internal/models"
	"problemas/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const sessionName = "problemas_session"

// one week, in seconds
const sessionMaxAge = 7 * 24 * 60 * 60

func NewRouter(cfg *config.Config, store database.Store, log zerolog.Logger) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	authSvc := service.NewAuthService(store, cfg.BcryptCost, log)
	postSvc := service.NewPostService(store, log)
	adminSvc := service.NewAdminService(store, log)
	h := handlers.New(authSvc, postSvc, adminSvc, store, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.SetHTMLTemplate(tmpl)

	cookies := cookie.NewStore([]byte(cfg.Session.Secret))
	cookies.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, cookies))

	// probes and metrics skip the session lookup
	r.GET("/health", h.Liveness)
	r.GET("/health/ready", h.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/v1/problemas", h.ProblemasAPI)

	site := r.Group("/")
	site.Use(middleware.InjectUser(authSvc, log))

	site.GET("/", h.Home)
	site.GET("/home", h.Home)

	anon := site.Group("/")
	anon.Use(middleware.RequireAnonymous())
	anon.GET("/register", h.ShowRegister)
	anon.POST("/register", h.Register)
	anon.GET("/login", h.ShowLogin)
	anon.POST("/login", h.Login)

	site.GET("/logout", h.Logout)

	authed := site.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.GET("/post/new", h.ShowNewPost)
	authed.POST("/post/new", h.CreatePost)
	authed.GET("/post/:id/update", h.ShowUpdatePost)
	authed.POST("/post/:id/update", h.UpdatePost)
	authed.POST("/post/:id/delete", h.DeletePost)

	admin := site.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard)
	admin.POST("/cambiar_rol/:user_id", h.ToggleRole)
	admin.POST("/eliminar_usuario/:user_id", h.DeleteUser)
	admin.GET("/audit", h.AuditLog)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"title":   http.StatusText(http.StatusNotFound),
			"status":  http.StatusNotFound,
			"message": "Página no encontrada",
		})
	})

	return r, nil
}
