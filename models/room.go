package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoomVacant   = "vacant"
	RoomOccupied = "occupied"
	RoomCleaning = "cleaning"
)

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Status     string `json:"status" gorm:"size:32;default:vacant"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	// Set while the room is occupied; nil otherwise.
	CurrentEpisodeID *uint `json:"currentEpisodeId,omitempty" gorm:"column:current_episode_id"`

	CleaningStart *time.Time `json:"cleaningStart,omitempty" gorm:"column:cleaning_start"`

	Episode *OccupancyEpisode `json:"episode,omitempty" gorm:"foreignKey:CurrentEpisodeID"`
}
