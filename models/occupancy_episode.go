package models

import (
	"time"

	"gorm.io/gorm"
)

// OccupancyEpisode is one continuous stay in one room, from check-in to
// checkout. Balance is signed: positive means the guest owes the lodge,
// negative means a refund is owed to the guest. The balance must always
// equal the sum of the signed ledger entries attached to the episode.
type OccupancyEpisode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomNumber string `gorm:"column:room_number;index;type:varchar(50)" json:"roomNumber"`

	GuestName   string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestMobile string `gorm:"column:guest_mobile;size:32" json:"guestMobile"`
	GuestCount  int    `gorm:"column:guest_count;default:1" json:"guestCount"`

	// Only meaningful for the premium AC room range (202-205).
	ACEnabled bool `gorm:"column:ac_enabled;default:false" json:"acEnabled"`

	CheckinTime time.Time `gorm:"column:checkin_time" json:"checkinTime"`

	// Nightly price; renewals bill at this rate.
	Price int `gorm:"column:price" json:"price"`

	RenewalCount int `gorm:"column:renewal_count;default:0" json:"renewalCount"`
	Balance      int `gorm:"column:balance;default:0" json:"balance"`

	// Optimistic stamp, bumped on every mutation.
	Version int `gorm:"column:version;default:1" json:"version"`

	PhotoRef string `gorm:"column:photo_ref;size:512" json:"photoRef,omitempty"`

	// Set when the episode ends; the room is vacated at the same moment.
	CheckoutTime *time.Time `gorm:"column:checkout_time" json:"checkoutTime,omitempty"`
	ArchivedAt   *time.Time `gorm:"column:archived_at" json:"archivedAt,omitempty"`

	Entries []LedgerEntry `gorm:"foreignKey:EpisodeID" json:"entries,omitempty"`
}
