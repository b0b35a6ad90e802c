package handlers

import (
	"errors"
	"net/http"

	"problemas/internal/models"
	"problemas/internal/service"

	"github.com/gin-gonic/gin"
)

type postForm struct {
	Title       string `form:"title"`
	Content     string `form:"content"`
	ContactInfo string `form:"contact_info"`
}

func (f postForm) input() service.PostInput {
	return service.PostInput{Title: f.Title, Content: f.Content, ContactInfo: f.ContactInfo}
}

func (h *Handler) ShowNewPost(c *gin.Context) {
	render(c, http.StatusOK, "create.html", gin.H{"title": "Nuevo problema", "form": postForm{}})
}

func (h *Handler) CreatePost(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "create.html", gin.H{"form": form, "error": "Datos inválidos"})
		return
	}

	if _, err := h.posts.Create(c.Request.Context(), user, form.input()); err != nil {
		if msg, ok := validationMessage(err); ok {
			render(c, http.StatusBadRequest, "create.html", gin.H{"form": form, "error": msg})
			return
		}
		h.fail(c, err)
		return
	}

	redirectWith(c, "/", flashSuccess, "Tu voz ha sido escuchada. El problema está publicado.")
}

func (h *Handler) ShowUpdatePost(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.Editable(c.Request.Context(), user, id)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			redirectWith(c, "/", flashDanger, "No tienes permiso para editar esto")
			return
		}
		h.fail(c, err)
		return
	}

	render(c, http.StatusOK, "create.html", gin.H{
		"title": "Editar Post",
		"post":  post,
		"form":  postForm{Title: post.Title, Content: post.Content, ContactInfo: post.ContactInfo},
	})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	_, err := h.posts.Update(c.Request.Context(), user, id, form.input())
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			redirectWith(c, "/", flashDanger, "No tienes permiso para editar esto")
			return
		}
		if msg, ok := validationMessage(err); ok {
			render(c, http.StatusBadRequest, "create.html", gin.H{
				"post":  models.Post{ID: id},
				"form":  form,
				"error": msg,
			})
			return
		}
		h.fail(c, err)
		return
	}

	redirectWith(c, "/", flashSuccess, "¡Publicación actualizada!")
}

func (h *Handler) DeletePost(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), user, id); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			redirectWith(c, "/", flashDanger, "Acción no permitida")
			return
		}
		h.fail(c, err)
		return
	}

	redirectWith(c, "/", flashInfo, "Publicación eliminada")
}
