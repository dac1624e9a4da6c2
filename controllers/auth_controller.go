package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	session, err := authService.Login(payload.Username, payload.Password)
	if err != nil {
		// Credential failures come back as validation errors; the client
		// sees 401 either way.
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": session.Token,
		"admin": gin.H{
			"id":        session.Admin.ID,
			"full_name": session.Admin.FullName,
			"username":  session.Admin.Username,
		},
	})
}
