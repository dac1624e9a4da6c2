package controllers

import (
	"net/http"

	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Check Availability (GET/POST /api/availability)
// ----------------------------------------------------

func CheckAvailability(c *gin.Context) {
	checkin := c.Query("checkin")
	checkout := c.Query("checkout")
	if checkin == "" && c.Request.Method == http.MethodPost {
		var payload struct {
			CheckIn  string `json:"checkin_date"`
			CheckOut string `json:"checkout_date"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			bindError(c, err)
			return
		}
		checkin, checkout = payload.CheckIn, payload.CheckOut
	}

	rooms, err := bookingService.CheckAvailability(checkin, checkout)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": rooms})
}

// ----------------------------------------------------
// 2. Create Booking (POST /api/bookings)
// ----------------------------------------------------

func CreateBooking(c *gin.Context) {
	var payload services.BookingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	// An ID photo may arrive inline with the booking.
	if payload.PhotoRef != "" {
		ref, err := photoService.SaveBase64(payload.PhotoRef, "bookings")
		if err != nil {
			respondError(c, err)
			return
		}
		payload.PhotoRef = ref
	}

	booking, err := bookingService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "booking": booking})
}

// ----------------------------------------------------
// 3. List / Get Bookings (GET /api/bookings, /api/bookings/:ref)
// ----------------------------------------------------

func GetBookings(c *gin.Context) {
	bookings, err := bookingService.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func GetBooking(c *gin.Context) {
	booking, err := bookingService.Get(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ----------------------------------------------------
// 4. Update Booking (PUT /api/bookings/:ref)
// ----------------------------------------------------

func UpdateBooking(c *gin.Context) {
	var payload services.BookingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	booking, err := bookingService.Update(c.Param("ref"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "booking": booking})
}

// ----------------------------------------------------
// 5. Booking Payment (POST /api/bookings/:ref/payments)
// ----------------------------------------------------

func AddBookingPayment(c *gin.Context) {
	var payload struct {
		Amount int    `json:"amount"`
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	booking, err := bookingService.AddPayment(c.Param("ref"), payload.Amount, payload.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "booking": booking})
}

// ----------------------------------------------------
// 6. Cancel Booking (POST /api/bookings/:ref/cancel)
// ----------------------------------------------------

func CancelBooking(c *gin.Context) {
	var payload struct {
		Reason       string `json:"reason"`
		RefundMethod string `json:"refund_method"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	booking, err := bookingService.Cancel(c.Param("ref"), payload.Reason, payload.RefundMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "booking": booking})
}

// ----------------------------------------------------
// 7. Convert to Check-In (POST /api/bookings/:ref/convert)
// ----------------------------------------------------

func ConvertBooking(c *gin.Context) {
	var payload services.ConvertInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	payload.Reference = c.Param("ref")

	episode, err := bookingService.ConvertToCheckIn(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "episode": episode})
}
