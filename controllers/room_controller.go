package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"lodge-backend/domain"
	"lodge-backend/models"
	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms)
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	views, err := lifecycleService.ListRooms()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ----------------------------------------------------
// 1b. Create / Delete Room (POST /api/rooms, DELETE /api/rooms/:number)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var payload struct {
		RoomNumber string `json:"roomNumber"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	payload.RoomNumber = strings.TrimSpace(payload.RoomNumber)
	if payload.RoomNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Room Number is required.",
		})
		return
	}

	room := models.Room{
		RoomNumber: payload.RoomNumber,
		Status:     models.RoomVacant,
		Floor:      domain.Floor(payload.RoomNumber),
	}
	if err := db.Create(&room).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "room " + payload.RoomNumber + " already exists",
		})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func DeleteRoom(c *gin.Context) {
	number := c.Param("number")

	var room models.Room
	if err := db.Where("room_number = ?", number).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "room " + number + " not found"})
		return
	}
	if room.Status != models.RoomVacant {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "room " + number + " is " + room.Status + "; only a vacant room can be removed",
		})
		return
	}
	if err := db.Delete(&room).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ----------------------------------------------------
// 2. Check In (POST /api/checkin)
// ----------------------------------------------------

func CheckIn(c *gin.Context) {
	var payload services.CheckInInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	episode, err := lifecycleService.CheckIn(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "episode": episode})
}

// ----------------------------------------------------
// 3. Renew Rent (POST /api/rooms/:number/renew)
// ----------------------------------------------------

func RenewRent(c *gin.Context) {
	var payload struct {
		ExpectedCount int `json:"expected_count"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	count, err := lifecycleService.Renew(c.Param("number"), payload.ExpectedCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "renewal_count": count})
}

// ----------------------------------------------------
// 4. Add Service (POST /api/rooms/:number/services)
// ----------------------------------------------------

func AddRoomService(c *gin.Context) {
	var payload struct {
		Item     string `json:"item"`
		Price    int    `json:"price"`
		Quantity int    `json:"quantity"`
		Method   string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	entry, err := lifecycleService.AddService(c.Param("number"), payload.Item, payload.Price, payload.Quantity, payload.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "entry": entry})
}

// ----------------------------------------------------
// 5. Apply Discount (POST /api/rooms/:number/discount)
// ----------------------------------------------------

func ApplyDiscount(c *gin.Context) {
	var payload struct {
		Amount int    `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	entry, err := lifecycleService.ApplyDiscount(c.Param("number"), payload.Amount, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "entry": entry})
}

// ----------------------------------------------------
// 6. Add Payment (POST /api/rooms/:number/payments)
// ----------------------------------------------------

func AddRoomPayment(c *gin.Context) {
	var payload struct {
		Amount int    `json:"amount"`
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	entry, err := lifecycleService.AddPayment(c.Param("number"), payload.Amount, payload.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "entry": entry})
}

// ----------------------------------------------------
// 7. Process Refund (POST /api/rooms/:number/refunds)
// ----------------------------------------------------

func ProcessRefund(c *gin.Context) {
	var payload struct {
		Amount int    `json:"amount"`
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	entry, err := lifecycleService.ProcessRefund(c.Param("number"), payload.Amount, payload.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "entry": entry})
}

// ----------------------------------------------------
// 8. Checkout (POST /api/checkout)
// ----------------------------------------------------

func Checkout(c *gin.Context) {
	var payload struct {
		Room        string `json:"room"`
		SettleLater bool   `json:"settle_later"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	result, err := lifecycleService.Checkout(payload.Room, payload.SettleLater, payload.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}

// ----------------------------------------------------
// 9. Transfer Room (POST /api/transfer)
// ----------------------------------------------------

func TransferRoom(c *gin.Context) {
	var payload services.TransferInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	if err := lifecycleService.TransferRoom(payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ----------------------------------------------------
// 10. Cleaning (POST /api/rooms/:number/cleaning, /cleaned)
// ----------------------------------------------------

func MarkForCleaning(c *gin.Context) {
	if err := lifecycleService.MarkForCleaning(c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func MarkCleaned(c *gin.Context) {
	if err := lifecycleService.MarkCleaned(c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ----------------------------------------------------
// 11. Fix Check-in Time (PATCH /api/rooms/:number/checkin-time)
// ----------------------------------------------------

func UpdateCheckinTime(c *gin.Context) {
	var payload struct {
		CheckinTime string `json:"checkin_time"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	if err := lifecycleService.UpdateCheckinTime(c.Param("number"), payload.CheckinTime); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ----------------------------------------------------
// 12. Room Ledger (GET /api/rooms/:number/ledger)
// ----------------------------------------------------

func GetRoomLedger(c *gin.Context) {
	number := c.Param("number")

	var room models.Room
	if err := db.Preload("Episode").Where("room_number = ?", number).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "room " + number + " not found"})
		return
	}
	if room.Episode == nil {
		c.JSON(http.StatusOK, gin.H{"room": number, "entries": []interface{}{}})
		return
	}

	entries, err := ledgerService.ForEpisode(room.Episode.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": number, "balance": room.Episode.Balance, "entries": entries})
}

// ----------------------------------------------------
// 13. Room History (GET /api/rooms/:number/history)
// ----------------------------------------------------

func GetRoomHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	episodes, err := reportService.EpisodeHistory(c.Param("number"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, episodes)
}
