package controllers

import (
	"net/http"
	"time"

	"lodge-backend/models"
	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Daily / Range Report (GET/POST /api/reports)
// ----------------------------------------------------

func GetReport(c *gin.Context) {
	start := c.Query("start")
	if start == "" {
		start = c.Query("date")
	}
	end := c.Query("end")
	if start == "" && c.Request.Method == http.MethodPost {
		var payload struct {
			Start string `json:"start_date"`
			End   string `json:"end_date"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			bindError(c, err)
			return
		}
		start, end = payload.Start, payload.End
	}

	report, err := reportService.BuildReport(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ----------------------------------------------------
// 2. Dashboard Snapshot (GET /api/reports/snapshot)
// ----------------------------------------------------

func GetSnapshot(c *gin.Context) {
	snapshot, err := reportService.Snapshot(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ----------------------------------------------------
// 3. Shift History (GET /api/reports/shifts)
// ----------------------------------------------------

func GetShiftHistory(c *gin.Context) {
	shifts, err := reportService.ShiftHistory(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// ----------------------------------------------------
// 4. Expenses (POST /api/expenses, GET /api/expenses)
// ----------------------------------------------------

func RecordExpense(c *gin.Context) {
	var payload services.ExpenseInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	entry, err := ledgerService.RecordExpense(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "entry": entry})
}

func GetExpenses(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if end == "" {
		end = start
	}
	entries, err := ledgerService.QueryByDateRange(start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	expenses := entries[:0]
	for _, e := range entries {
		if e.Kind == models.EntryExpense {
			expenses = append(expenses, e)
		}
	}
	c.JSON(http.StatusOK, expenses)
}
