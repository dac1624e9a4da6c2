package controllers

import (
	"net/http"

	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. List / Get Settlements (GET /api/settlements, /:id)
// ----------------------------------------------------

func GetSettlements(c *gin.Context) {
	settlements, err := settlementService.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlements)
}

func GetSettlement(c *gin.Context) {
	settlement, err := settlementService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// ----------------------------------------------------
// 2. Collect (POST /api/settlements/:id/collect)
// ----------------------------------------------------

func CollectSettlement(c *gin.Context) {
	var payload services.CollectInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	payload.SettlementID = c.Param("id")

	settlement, err := settlementService.Collect(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "settlement": settlement})
}

// ----------------------------------------------------
// 3. Cancel (POST /api/settlements/:id/cancel)
// ----------------------------------------------------

func CancelSettlement(c *gin.Context) {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	settlement, err := settlementService.Cancel(c.Param("id"), payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "settlement": settlement})
}
