package handlers

import (
	"errors"
	"net/http"

	"problemas/internal/middleware"
	"problemas/internal/models"
	"problemas/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginFailed = "Login fallido. Revisa correo y contraseña"

type registerForm struct {
	Username string `form:"username"`
	FullName string `form:"nombre_apellido"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"title": "Registro", "form": registerForm{}})
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"form": form, "error": "Datos inválidos"})
		return
	}

	_, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: form.Username,
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		form.Password = ""
		if msg, ok := validationMessage(err); ok {
			render(c, http.StatusBadRequest, "register.html", gin.H{"form": form, "error": msg})
			return
		}
		if errors.Is(err, models.ErrUserExists) {
			render(c, http.StatusBadRequest, "register.html", gin.H{
				"form":  form,
				"error": "El nombre de usuario o el correo ya están registrados",
			})
			return
		}
		h.fail(c, err)
		return
	}

	redirectWith(c, "/login", flashSuccess, "Tu cuenta ha sido creada. ¡Ya puedes ingresar!")
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"title": "Ingresar", "email": ""})
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"email": "", "error": loginFailed})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			render(c, http.StatusBadRequest, "login.html", gin.H{"email": form.Email, "error": loginFailed})
			return
		}
		h.fail(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/")
}
