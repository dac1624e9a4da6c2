package services

import (
	"fmt"
	"time"

	"lodge-backend/domain"
	"lodge-backend/models"

	"gorm.io/gorm"
)

func renewalDue(ep *models.OccupancyEpisode, now time.Time) bool {
	return domain.Renewal(ep.CheckinTime, ep.RenewalCount, now).Expired
}

// ReportService assembles date-range summaries from the ledger and the
// occupancy history. It never mutates anything.
type ReportService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewReportService(db *gorm.DB, ledger *LedgerService) *ReportService {
	return &ReportService{DB: db, Ledger: ledger}
}

// Report is the front desk's daily (or ranged) summary.
type Report struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	CashTotal           int `json:"cash_total"`
	OnlineTotal         int `json:"online_total"`
	RefundTotal         int `json:"refund_total"`
	AddOnTotal          int `json:"addon_total"`
	RenewalTotal        int `json:"renewal_total"`
	TransactionExpenses int `json:"transaction_expenses"`
	ReportExpenses      int `json:"report_expenses"`
	TotalExpenses       int `json:"total_expenses"`
	TotalRevenue        int `json:"total_revenue"`

	CheckinCount int `json:"checkin_count"`
	RenewalCount int `json:"renewal_count"`

	Entries []models.LedgerEntry `json:"entries"`
}

// BuildReport aggregates everything between start and end, inclusive.
func (s *ReportService) BuildReport(start, end string) (*Report, error) {
	if !validDate(start) {
		return nil, validation("start_date", "expected YYYY-MM-DD, got %q", start)
	}
	if end == "" {
		end = start
	}
	if !validDate(end) {
		return nil, validation("end_date", "expected YYYY-MM-DD, got %q", end)
	}
	if end < start {
		return nil, validation("end_date", "end date %s is before start date %s", end, start)
	}

	entries, err := s.Ledger.QueryByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	totals := TotalsByKind(entries)
	report := &Report{
		StartDate:           start,
		EndDate:             end,
		CashTotal:           totals.Cash,
		OnlineTotal:         totals.Online,
		RefundTotal:         totals.Refunds,
		AddOnTotal:          totals.AddOns,
		RenewalTotal:        totals.RenewalCharges,
		RenewalCount:        totals.RenewalCount,
		TransactionExpenses: totals.TransactionExpenses,
		ReportExpenses:      totals.ReportExpenses,
		TotalExpenses:       totals.Expenses,
		TotalRevenue:        totals.Revenue(),
		Entries:             entries,
	}

	for _, e := range entries {
		if e.Kind == models.EntryRent && e.Day == 1 {
			report.CheckinCount++
		}
	}
	return report, nil
}

// EpisodeHistory lists archived stays for a room, newest first.
func (s *ReportService) EpisodeHistory(roomNumber string, limit int) ([]models.OccupancyEpisode, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var episodes []models.OccupancyEpisode
	q := s.DB.Preload("Entries").
		Where("archived_at IS NOT NULL").
		Order("archived_at DESC").
		Limit(limit)
	if roomNumber != "" {
		q = q.Where("room_number = ?", roomNumber)
	}
	if err := q.Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("failed to load episode history: %w", err)
	}
	return episodes, nil
}

// ShiftHistory lists room transfers in a date range.
func (s *ReportService) ShiftHistory(start, end string) ([]models.RoomShift, error) {
	if start != "" && !validDate(start) {
		return nil, validation("start_date", "expected YYYY-MM-DD, got %q", start)
	}
	if end == "" {
		end = start
	}
	var shifts []models.RoomShift
	q := s.DB.Order("date DESC, time DESC")
	if start != "" {
		q = q.Where("date >= ? AND date <= ?", start, end)
	}
	if err := q.Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("failed to load shift history: %w", err)
	}
	return shifts, nil
}

// OccupancySnapshot is a point-in-time dashboard summary.
type OccupancySnapshot struct {
	Date          string `json:"date"`
	TotalRooms    int    `json:"total_rooms"`
	OccupiedRooms int    `json:"occupied_rooms"`
	VacantRooms   int    `json:"vacant_rooms"`
	CleaningRooms int    `json:"cleaning_rooms"`
	DueForRenewal int    `json:"due_for_renewal"`
}

// Snapshot counts rooms by status and how many occupied rooms have an
// overdue renewal.
func (s *ReportService) Snapshot(now time.Time) (*OccupancySnapshot, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Episode").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	snap := &OccupancySnapshot{Date: lodgeDate(now), TotalRooms: len(rooms)}
	for _, room := range rooms {
		switch room.Status {
		case models.RoomOccupied:
			snap.OccupiedRooms++
			if room.Episode != nil {
				if due := renewalDue(room.Episode, now); due {
					snap.DueForRenewal++
				}
			}
		case models.RoomCleaning:
			snap.CleaningRooms++
		default:
			snap.VacantRooms++
		}
	}
	return snap, nil
}
