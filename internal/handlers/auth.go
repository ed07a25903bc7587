package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droneport/internal/middleware"
	"droneport/internal/models"
	"droneport/internal/service"
)

// User-facing messages, in the portal's original Romanian.
const (
	msgDuplicateName      = "Acest nume este deja folosit!"
	msgDuplicateEmail     = "Acest email este deja folosit!"
	msgInvalidCredentials = "Nume sau parolă incorectă!"
	msgServerError        = "A apărut o eroare. Încearcă din nou mai târziu."
)

type signupForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h HandlerSet) LoginView(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h HandlerSet) SignupView(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h HandlerSet) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, "signup.html", msgServerError)
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateName):
			h.renderError(c, http.StatusBadRequest, "signup.html", msgDuplicateName)
		case errors.Is(err, service.ErrDuplicateEmail):
			h.renderError(c, http.StatusBadRequest, "signup.html", msgDuplicateEmail)
		default:
			h.log.Error().Err(err).Msg("signup failed")
			h.renderError(c, http.StatusInternalServerError, "signup.html", msgServerError)
		}
		return
	}

	h.setSessionCookie(c, result.Token)
	h.renderHome(c, result.User, "")
}

func (h HandlerSet) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, "login.html", msgInvalidCredentials)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), form.Name, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.renderError(c, http.StatusBadRequest, "login.html", msgInvalidCredentials)
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		h.renderError(c, http.StatusInternalServerError, "login.html", msgServerError)
		return
	}

	h.setSessionCookie(c, result.Token)
	h.renderHome(c, result.User, "")
}

// Logout always sends the client back to the login view; a failed session
// destroy is logged inside the service and never surfaced.
func (h HandlerSet) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), middleware.SessionToken(c))
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		h.cfg.Session.CookieName,
		token,
		int(h.cfg.Session.TTL.Seconds()),
		"/",
		"",
		h.cfg.Session.Secure,
		true,
	)
}

func (h HandlerSet) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)
}

func (h HandlerSet) renderError(c *gin.Context, status int, view string, message string) {
	c.HTML(status, view, gin.H{"Error": message})
}

func (h HandlerSet) renderHome(c *gin.Context, user models.SessionUser, imagePath string) {
	h.homeView(c, http.StatusOK, user, imagePath, "")
}

// renderHomeError keeps the signed-in user's greeting and upload list on the
// page while surfacing the message.
func (h HandlerSet) renderHomeError(c *gin.Context, status int, user models.SessionUser, message string) {
	h.homeView(c, status, user, "", message)
}

func (h HandlerSet) homeView(c *gin.Context, status int, user models.SessionUser, imagePath string, message string) {
	uploads, err := h.uploadService.RecentUploads(c.Request.Context(), user.Name, 20)
	if err != nil {
		h.log.Warn().Err(err).Str("user", user.Name).Msg("list uploads failed")
	}

	c.HTML(status, "home.html", gin.H{
		"Name":      user.Name,
		"Email":     user.Email,
		"ImagePath": imagePath,
		"Uploads":   uploads,
		"Error":     message,
	})
}
