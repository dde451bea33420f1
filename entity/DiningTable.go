package entity

import (
	"gorm.io/gorm"
)

// Table statuses mirror the upstream table service.
const (
	TableAvailable = "Available"
	TableBooked    = "Booked"
	TableOccupied  = "Occupied"
)

type DiningTable struct {
	gorm.Model
	TableNo  string `json:"tableNo" gorm:"uniqueIndex"`
	Seats    int    `json:"seats"`
	Status   string `json:"status" gorm:"default:Available"`
	RemoteID string `json:"remoteId"` // id on the upstream table service, empty until synced

	Orders []Order `json:"-" gorm:"foreignKey:TableID"`
}
