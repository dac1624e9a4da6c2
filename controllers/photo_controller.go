package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadPhoto (POST /api/photos) accepts a base64 guest ID photo and
// returns the stored path to attach to a check-in or booking.
func UploadPhoto(c *gin.Context) {
	var payload struct {
		Photo  string `json:"photo"`
		Subdir string `json:"subdir"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	if payload.Subdir == "" {
		payload.Subdir = "guests"
	}

	ref, err := photoService.SaveBase64(payload.Photo, payload.Subdir)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "path": ref})
}
