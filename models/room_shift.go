package models

import "gorm.io/gorm"

// RoomShift is the audit record of a guest transfer between rooms.
type RoomShift struct {
	gorm.Model

	EpisodeID uint   `gorm:"column:episode_id;index" json:"episode_id"`
	FromRoom  string `gorm:"column:from_room;size:50" json:"old_room"`
	ToRoom    string `gorm:"column:to_room;size:50" json:"room"`
	GuestName string `gorm:"column:guest_name;size:255" json:"name"`
	Date      string `gorm:"column:date;size:10" json:"date"`
	Time      string `gorm:"column:time;size:5" json:"time"`
	Note      string `gorm:"column:note;type:text" json:"note"`
}
