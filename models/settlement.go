package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SettlementPending   = "pending"
	SettlementPartial   = "partial"
	SettlementPaid      = "paid"
	SettlementCancelled = "cancelled"
)

// Settlement tracks a positive balance deferred at checkout ("settle later")
// so the room could be vacated without the money being collected first.
type Settlement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SettlementID string `gorm:"column:settlement_id;size:64;uniqueIndex" json:"settlement_id"`

	RoomNumber  string `gorm:"column:room_number;size:50" json:"room"`
	GuestName   string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestMobile string `gorm:"column:guest_mobile;size:32" json:"guest_mobile"`

	// Snapshot of the originating episode at checkout time.
	GuestSnapshot datatypes.JSON `gorm:"column:guest_snapshot" json:"guest_snapshot,omitempty"`
	EpisodeID     *uint          `gorm:"column:episode_id;index" json:"episode_id,omitempty"`

	AmountDue     int `gorm:"column:amount_due" json:"amount_due"`
	Collected     int `gorm:"column:collected;default:0" json:"collected"`
	DiscountTotal int `gorm:"column:discount_total;default:0" json:"discount_total"`

	Status string `gorm:"column:status;size:32;default:pending" json:"status"`

	Notes        string `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CancelReason string `gorm:"column:cancel_reason;type:text" json:"cancel_reason,omitempty"`

	Payments []SettlementPayment `gorm:"foreignKey:SettlementDBID" json:"payments"`
}

// Remaining is what is still owed on the settlement.
func (s *Settlement) Remaining() int {
	return s.AmountDue - s.Collected - s.DiscountTotal
}

// Terminal reports whether the settlement can no longer be mutated.
func (s *Settlement) Terminal() bool {
	return s.Status == SettlementPaid || s.Status == SettlementCancelled
}

// SettlementPayment records one partial collection. Each collection is kept
// individually for audit, not folded into a running total.
type SettlementPayment struct {
	gorm.Model

	SettlementDBID uint `gorm:"column:settlement_db_id;index" json:"-"`

	Amount         int    `gorm:"column:amount" json:"amount"`
	Method         string `gorm:"column:method;size:16" json:"method"`
	Discount       int    `gorm:"column:discount;default:0" json:"discount"`
	DiscountReason string `gorm:"column:discount_reason;size:255" json:"discount_reason,omitempty"`
	Date           string `gorm:"column:date;size:10" json:"date"`
	Time           string `gorm:"column:time;size:5" json:"time"`
}
