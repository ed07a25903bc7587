package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droneport/internal/middleware"
	"droneport/internal/service"
)

const (
	msgUnauthenticated = "Trebuie să fii autentificat pentru a încărca imagini!"
	msgMissingFile     = "Nicio imagine selectată!"
	msgUploadRejected  = "Fișierul trebuie să fie o imagine (jpeg, jpg, png sau gif) sub limita de mărime!"
)

// Upload accepts one multipart image under the fixed field name. The session
// is checked before the file is read, so an unauthenticated request never
// touches the upload directory.
func (h HandlerSet) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.renderError(c, http.StatusBadRequest, "login.html", msgUnauthenticated)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.renderHomeError(c, http.StatusBadRequest, user, msgMissingFile)
		return
	}
	defer file.Close()

	upload, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		User:   user,
		File:   file,
		Header: header,
	})
	if err != nil {
		if errors.Is(err, service.ErrUploadRejected) {
			h.log.Warn().Err(err).Str("user", user.Name).Msg("upload rejected")
			h.renderHomeError(c, http.StatusBadRequest, user, msgUploadRejected)
			return
		}
		h.log.Error().Err(err).Str("user", user.Name).Msg("upload failed")
		h.renderHomeError(c, http.StatusInternalServerError, user, msgServerError)
		return
	}

	h.renderHome(c, user, upload.PublicPath())
}
