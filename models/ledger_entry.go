package models

import (
	"time"

	"gorm.io/gorm"
)

// LedgerEntryKind is fixed at creation time; every entry carries exactly
// one kind, never inferred later from which fields happen to be set.
type LedgerEntryKind string

const (
	EntryRent       LedgerEntryKind = "rent"       // rent falling due (check-in day 1, renewals)
	EntryAddOn      LedgerEntryKind = "addon"      // billable service (food, laundry, ...)
	EntryDiscount   LedgerEntryKind = "discount"   // reduction of the amount owed
	EntryPayment    LedgerEntryKind = "payment"    // money received
	EntryRefund     LedgerEntryKind = "refund"     // money returned to the guest
	EntryExpense    LedgerEntryKind = "expense"    // lodge operating expense, not tied to a stay
	EntrySettlement LedgerEntryKind = "settlement" // positive balance deferred into a settlement at checkout
)

const (
	MethodCash    = "cash"
	MethodOnline  = "online"
	MethodBalance = "balance"
)

const (
	ExpenseTransaction = "transaction" // counts against daily revenue
	ExpenseReport      = "report"      // report-only, never in daily totals
)

// LedgerEntry is immutable once created. Amount is always non-negative;
// direction comes from the kind.
type LedgerEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Kind   LedgerEntryKind `gorm:"column:kind;size:32;index" json:"kind"`
	Amount int             `gorm:"column:amount" json:"amount"`
	Method string          `gorm:"column:method;size:16" json:"method"`

	// Calendar stamps in lodge-local time.
	Date string `gorm:"column:date;size:10;index" json:"date"`
	Time string `gorm:"column:time;size:5" json:"time"`

	// Nil for expenses and booking/settlement money not tied to a stay.
	EpisodeID  *uint  `gorm:"column:episode_id;index" json:"episodeId,omitempty"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber,omitempty"`
	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName,omitempty"`

	BookingRef    string `gorm:"column:booking_ref;size:64" json:"bookingRef,omitempty"`
	SettlementRef string `gorm:"column:settlement_ref;size:64" json:"settlementRef,omitempty"`

	// Add-on detail.
	Item     string `gorm:"column:item;size:255" json:"item,omitempty"`
	Quantity int    `gorm:"column:quantity" json:"quantity,omitempty"`

	// Rent detail: which stay day this charge covers (1-based).
	Day int `gorm:"column:day" json:"day,omitempty"`

	// Expense detail.
	Category    string `gorm:"column:category;size:128" json:"category,omitempty"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	ExpenseType string `gorm:"column:expense_type;size:16" json:"expenseType,omitempty"`

	Note string `gorm:"column:note;type:text" json:"note,omitempty"`
}

// SignedAmount is the entry's contribution to the owning episode's balance.
// Entries that settle at the moment they are created (an add-on paid in cash
// on the spot) and entries with no episode contribute nothing.
func (e *LedgerEntry) SignedAmount() int {
	switch e.Kind {
	case EntryRent:
		return e.Amount
	case EntryAddOn:
		if e.Method == MethodBalance {
			return e.Amount
		}
		return 0
	case EntryDiscount, EntryPayment, EntrySettlement:
		return -e.Amount
	case EntryRefund:
		return e.Amount
	default:
		return 0
	}
}

// ValidMethod reports whether m is one of the accepted payment methods.
func ValidMethod(m string) bool {
	return m == MethodCash || m == MethodOnline || m == MethodBalance
}
