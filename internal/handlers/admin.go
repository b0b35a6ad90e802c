package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"problemas/internal/models"
	"problemas/internal/service"

	"github.com/gin-gonic/gin"
)

const dashboardPath = "/admin/dashboard"

func (h *Handler) Dashboard(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	dash, err := h.admin.Dashboard(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	render(c, http.StatusOK, "admin.html", gin.H{
		"title":     "Panel de administración",
		"dashboard": dash,
	})
}

func (h *Handler) ToggleRole(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	target, err := h.admin.ToggleRole(c.Request.Context(), user, id)
	if err != nil {
		if errors.Is(err, models.ErrSelfRoleChange) {
			redirectWith(c, dashboardPath, flashWarning, "No puedes quitarte el rol de administrador a ti mismo.")
			return
		}
		h.fail(c, err)
		return
	}

	redirectWith(c, dashboardPath, flashSuccess,
		fmt.Sprintf("El rol de %s ahora es %s.", target.Username, target.Role.Name.Label()))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	target, _, err := h.admin.DeleteUser(c.Request.Context(), user, id)
	if err != nil {
		if errors.Is(err, models.ErrSelfDelete) {
			redirectWith(c, dashboardPath, flashDanger, "No puedes eliminar tu propia cuenta.")
			return
		}
		h.fail(c, err)
		return
	}

	redirectWith(c, dashboardPath, flashSuccess,
		fmt.Sprintf("Usuario %s y sus publicaciones han sido eliminados.", target.Username))
}

func (h *Handler) AuditLog(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	logs, err := h.admin.AuditTrail(c.Request.Context(), user, service.DefaultAuditLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	render(c, http.StatusOK, "audit.html", gin.H{
		"title": "Auditoría",
		"logs":  logs,
	})
}
