package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lodge-backend/controllers"
	"lodge-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/checkin", controllers.CheckIn)
		api.POST("/checkout", controllers.Checkout)
		api.POST("/transfer", controllers.TransferRoom)
		api.GET("/availability", controllers.CheckAvailability)
		api.POST("/availability", controllers.CheckAvailability)
		api.POST("/photos", controllers.UploadPhoto)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.DELETE("/:number", controllers.DeleteRoom)
			rooms.POST("/:number/renew", controllers.RenewRent)
			rooms.POST("/:number/services", controllers.AddRoomService)
			rooms.POST("/:number/discount", controllers.ApplyDiscount)
			rooms.POST("/:number/payments", controllers.AddRoomPayment)
			rooms.POST("/:number/refunds", controllers.ProcessRefund)
			rooms.POST("/:number/cleaning", controllers.MarkForCleaning)
			rooms.POST("/:number/cleaned", controllers.MarkCleaned)
			rooms.PATCH("/:number/checkin-time", controllers.UpdateCheckinTime)
			rooms.GET("/:number/ledger", controllers.GetRoomLedger)
			rooms.GET("/:number/history", controllers.GetRoomHistory)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookings)
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("/:ref", controllers.GetBooking)
			bookings.PUT("/:ref", controllers.UpdateBooking)
			bookings.POST("/:ref/payments", controllers.AddBookingPayment)
			bookings.POST("/:ref/cancel", controllers.CancelBooking)
			bookings.POST("/:ref/convert", controllers.ConvertBooking)
		}

		settlements := api.Group("/settlements")
		{
			settlements.GET("", controllers.GetSettlements)
			settlements.GET("/:id", controllers.GetSettlement)
			settlements.POST("/:id/collect", controllers.CollectSettlement)
			settlements.POST("/:id/cancel", controllers.CancelSettlement)
		}

		reports := api.Group("/reports")
		{
			reports.GET("", controllers.GetReport)
			reports.POST("", controllers.GetReport)
			reports.GET("/snapshot", controllers.GetSnapshot)
			reports.GET("/shifts", controllers.GetShiftHistory)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", controllers.GetExpenses)
			expenses.POST("", controllers.RecordExpense)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/lodge", controllers.GetLodgeSettings)
			settings.PUT("/lodge", controllers.UpdateLodgeSettings)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}
	}

	return r
}
