package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingConfirmed = "confirmed"
	BookingCheckedIn = "checked_in"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	RoomNumber    string `gorm:"column:room_number;size:50;index" json:"room"`

	GuestName   string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestMobile string `gorm:"column:guest_mobile;size:32" json:"guest_mobile"`
	GuestCount  int    `gorm:"column:guest_count;default:1" json:"guest_count"`

	BookingDate  string `gorm:"column:booking_date;size:10" json:"booking_date"`
	CheckInDate  string `gorm:"column:check_in_date;size:10;index" json:"check_in_date"`
	CheckOutDate string `gorm:"column:check_out_date;size:10" json:"check_out_date"`

	Status string `gorm:"column:status;size:32;default:confirmed" json:"status"`

	TotalAmount int `gorm:"column:total_amount" json:"total_amount"`
	PaidAmount  int `gorm:"column:paid_amount;default:0" json:"paid_amount"`

	Notes    string `gorm:"column:notes;type:text" json:"notes,omitempty"`
	PhotoRef string `gorm:"column:photo_ref;size:512" json:"photo_ref,omitempty"`

	CheckedInAt        *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CancellationDate   string     `gorm:"column:cancellation_date;size:10" json:"cancellation_date,omitempty"`
	CancellationReason string     `gorm:"column:cancellation_reason;type:text" json:"cancellation_reason,omitempty"`
}

// Balance is the amount still unpaid on the booking.
func (b *Booking) Balance() int {
	return b.TotalAmount - b.PaidAmount
}
