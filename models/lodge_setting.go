package models

import "time"

type LodgeSetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`

	// When the renewal sweep last ran, "2006-01-02 15:04:05" lodge-local.
	LastRentCheck string `gorm:"column:last_rent_check;size:32" json:"last_rent_check"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
