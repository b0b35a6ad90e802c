package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Home(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"title": "Inicio",
		"posts": posts,
	})
}

type problemaJSON struct {
	ID        uint      `json:"id"`
	Titulo    string    `json:"titulo"`
	Contenido string    `json:"contenido"`
	Fecha     time.Time `json:"fecha"`
	Autor     string    `json:"autor"`
}

// ProblemasAPI is the public read-only feed. Contact details are left out.
func (h *Handler) ProblemasAPI(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list posts for api")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]problemaJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, problemaJSON{
			ID:        p.ID,
			Titulo:    p.Title,
			Contenido: p.Content,
			Fecha:     p.DatePosted,
			Autor:     p.Author.Username,
		})
	}

	c.JSON(http.StatusOK, gin.H{"problemas": out})
}
