package services

import (
	"fmt"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
)

// LedgerService is the append-only money record. Entries are validated hard
// on the way in: a negative, zero or non-numeric amount is a rejection, not
// a silent zero.
type LedgerService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db, Now: time.Now}
}

func (s *LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validateEntry(entry *models.LedgerEntry) *Error {
	if entry.Kind == "" {
		return validation("kind", "ledger entry kind is required")
	}
	if entry.Amount <= 0 {
		return validation("amount", "amount must be a positive whole number, got %d", entry.Amount)
	}
	if !models.ValidMethod(entry.Method) {
		return validation("method", "payment method must be cash, online or balance, got %q", entry.Method)
	}
	return nil
}

// recordTx appends an entry inside the caller's transaction and, when the
// entry belongs to an occupancy episode, applies its signed amount to the
// episode balance and bumps the version stamp. Entry and balance move
// together or not at all. The caller passes its own now so every entry of
// one operation carries the same stamp.
func (s *LedgerService) recordTx(tx *gorm.DB, entry *models.LedgerEntry, episode *models.OccupancyEpisode, now time.Time) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	if entry.Date == "" {
		entry.Date = lodgeDate(now)
	}
	if entry.Time == "" {
		entry.Time = lodgeClock(now)
	}

	if episode != nil {
		entry.EpisodeID = &episode.ID
		if entry.RoomNumber == "" {
			entry.RoomNumber = episode.RoomNumber
		}
		if entry.GuestName == "" {
			entry.GuestName = episode.GuestName
		}
	}

	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	if episode != nil {
		episode.Balance += entry.SignedAmount()
		episode.Version++
		if err := tx.Model(&models.OccupancyEpisode{}).
			Where("id = ?", episode.ID).
			Updates(map[string]interface{}{
				"balance": episode.Balance,
				"version": episode.Version,
			}).Error; err != nil {
			return fmt.Errorf("failed to apply entry to episode balance: %w", err)
		}
	}

	return nil
}

// ExpenseInput is a lodge operating expense, independent of any stay.
type ExpenseInput struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int    `json:"amount"`
	Method      string `json:"payment_method"`
	Type        string `json:"type"`
}

// RecordExpense appends an expense entry. Only transaction expenses count
// against daily revenue; report expenses exist for reporting alone.
func (s *LedgerService) RecordExpense(in ExpenseInput) (*models.LedgerEntry, error) {
	if in.Date == "" || !validDate(in.Date) {
		return nil, validation("date", "date is required in YYYY-MM-DD format")
	}
	if in.Category == "" {
		return nil, validation("category", "category is required")
	}
	if in.Description == "" {
		return nil, validation("description", "description is required")
	}
	if in.Method == "" {
		in.Method = models.MethodCash
	}
	if in.Method != models.MethodCash && in.Method != models.MethodOnline {
		return nil, validation("payment_method", "expenses are paid by cash or online, got %q", in.Method)
	}
	if in.Type == "" {
		in.Type = models.ExpenseTransaction
	}
	if in.Type != models.ExpenseTransaction && in.Type != models.ExpenseReport {
		return nil, validation("type", "expense type must be %q or %q", models.ExpenseTransaction, models.ExpenseReport)
	}

	entry := &models.LedgerEntry{
		Kind:        models.EntryExpense,
		Amount:      in.Amount,
		Method:      in.Method,
		Date:        in.Date,
		Time:        lodgeClock(s.now()),
		Category:    in.Category,
		Description: in.Description,
		ExpenseType: in.Type,
	}
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	if err := s.DB.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}
	return entry, nil
}

// QueryByDateRange returns every entry with start <= date <= end, all kinds
// included, ordered as they happened.
func (s *LedgerService) QueryByDateRange(start, end string) ([]models.LedgerEntry, error) {
	if !validDate(start) || !validDate(end) {
		return nil, validation("date", "start and end are required in YYYY-MM-DD format")
	}
	if end < start {
		return nil, validation("date", "end date %s is before start date %s", end, start)
	}

	var entries []models.LedgerEntry
	if err := s.DB.
		Where("date >= ? AND date <= ?", start, end).
		Order("date, time, id").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	return entries, nil
}

// ForEpisode returns the full money history of one stay.
func (s *LedgerService) ForEpisode(episodeID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := s.DB.
		Where("episode_id = ?", episodeID).
		Order("date, time, id").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load episode history: %w", err)
	}
	return entries, nil
}

// Totals is the pure aggregation over a batch of entries.
type Totals struct {
	Cash                int `json:"cash_total"`
	Online              int `json:"online_total"`
	Refunds             int `json:"refund_total"`
	AddOns              int `json:"addon_total"`
	TransactionExpenses int `json:"transaction_expense_total"`
	ReportExpenses      int `json:"report_expense_total"`
	Expenses            int `json:"expense_total"`

	// Rent charged beyond day 1: rupees and entry count.
	RenewalCharges int `json:"renewal_charges"`
	RenewalCount   int `json:"renewal_count"`
}

// TotalsByKind folds entries into per-kind totals. Cash and online cover
// every payment taken by that method, wherever it came from (stays, add-ons
// paid on the spot, booking advances, settlement collections).
func TotalsByKind(entries []models.LedgerEntry) Totals {
	var t Totals
	for _, e := range entries {
		switch e.Kind {
		case models.EntryPayment:
			switch e.Method {
			case models.MethodCash:
				t.Cash += e.Amount
			case models.MethodOnline:
				t.Online += e.Amount
			}
		case models.EntryAddOn:
			t.AddOns += e.Amount
			switch e.Method {
			case models.MethodCash:
				t.Cash += e.Amount
			case models.MethodOnline:
				t.Online += e.Amount
			}
		case models.EntryRefund:
			t.Refunds += e.Amount
		case models.EntryExpense:
			t.Expenses += e.Amount
			if e.ExpenseType == models.ExpenseReport {
				t.ReportExpenses += e.Amount
			} else {
				t.TransactionExpenses += e.Amount
			}
		case models.EntryRent:
			if e.Day > 1 {
				t.RenewalCharges += e.Amount
				t.RenewalCount++
			}
		}
	}
	return t
}

// Revenue is collected money less refunds and operating spend for the
// period. Report-only expenses stay out.
func (t Totals) Revenue() int {
	return t.Cash + t.Online - t.Refunds - t.TransactionExpenses
}
