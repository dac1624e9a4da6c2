package controllers

import (
	"errors"
	"log"
	"net/http"

	"lodge-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ledgerService     *services.LedgerService
	lifecycleService  *services.LifecycleService
	bookingService    *services.BookingService
	settlementService *services.SettlementService
	reportService     *services.ReportService
	photoService      *services.PhotoService
	authService       *services.AuthService
	db                *gorm.DB
)

// Init wires every handler to its service. Called once from main after the
// database is up.
func Init(gormDB *gorm.DB) {
	db = gormDB
	ledgerService = services.NewLedgerService(gormDB)
	lifecycleService = services.NewLifecycleService(gormDB, ledgerService)
	bookingService = services.NewBookingService(gormDB, lifecycleService)
	settlementService = services.NewSettlementService(gormDB)
	reportService = services.NewReportService(gormDB, ledgerService)
	photoService = services.NewPhotoService("uploads")
	authService = services.NewAuthService(gormDB)
}

// respondError translates a service error into the HTTP status the client
// should see. Anything untyped is a 500 and gets logged.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Kind {
		case services.ErrValidation:
			status = http.StatusBadRequest
		case services.ErrNotFound:
			status = http.StatusNotFound
		case services.ErrStateConflict, services.ErrConcurrency:
			status = http.StatusConflict
		case services.ErrCollaborator:
			status = http.StatusBadGateway
		}
		payload := gin.H{"status": "error", "message": svcErr.Message}
		if svcErr.Field != "" {
			payload["field"] = svcErr.Field
		}
		c.JSON(status, payload)
		return
	}

	log.Printf("❌ internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "internal server error",
	})
}

func bindError(c *gin.Context, err error) {
	log.Printf("❌ JSON BINDING ERROR (400): %v", err)
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request payload",
		"details": err.Error(),
	})
}
