package controllers

import (
	"errors"
	"net/http"

	"lodge-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type lodgeSettingsPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func GetLodgeSettings(c *gin.Context) {
	var lodge models.LodgeSetting
	if err := db.First(&lodge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"lodge": models.LodgeSetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lodge": lodge})
}

func UpdateLodgeSettings(c *gin.Context) {
	var payload lodgeSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	var lodge models.LodgeSetting
	err := db.First(&lodge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			lodge = models.LodgeSetting{
				Name:    payload.Name,
				Address: payload.Address,
				Phone:   payload.Phone,
			}
			if err := db.Create(&lodge).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"lodge": lodge})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lodge.Name = payload.Name
	lodge.Address = payload.Address
	lodge.Phone = payload.Phone

	if err := db.Save(&lodge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lodge": lodge})
}
