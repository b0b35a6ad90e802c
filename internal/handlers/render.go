package handlers

import (
	"net/http"

	"problemas/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// flash categories, also used as CSS suffixes
const (
	flashSuccess = "success"
	flashInfo    = middleware.FlashInfo
	flashWarning = "warning"
	flashDanger  = "danger"
)

var flashCategories = []string{flashSuccess, flashInfo, flashWarning, flashDanger}

type flashMessage struct {
	Category string
	Message  string
}

// render wraps c.HTML and passes CurrentUser and pending flashes to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if actor, ok := middleware.CurrentActor(c); ok {
		data["CurrentUser"] = actor
	}
	data["Flashes"] = popFlashes(c)

	c.HTML(status, tmpl, data)
}

func popFlashes(c *gin.Context) []flashMessage {
	sess := sessions.Default(c)

	var out []flashMessage
	for _, cat := range flashCategories {
		for _, v := range sess.Flashes(cat) {
			if msg, ok := v.(string); ok {
				out = append(out, flashMessage{Category: cat, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		_ = sess.Save()
	}
	return out
}

func flash(c *gin.Context, category, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, category)
	_ = sess.Save()
}

// redirectWith stores a flash and sends the client to location.
func redirectWith(c *gin.Context, location, category, msg string) {
	flash(c, category, msg)
	c.Redirect(http.StatusFound, location)
}

func renderError(c *gin.Context, status int, msg string) {
	render(c, status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": msg,
	})
	c.Abort()
}
