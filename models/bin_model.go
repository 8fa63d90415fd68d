package models

import (
	"gorm.io/gorm"
)

// LocationKind tells what kind of place a bin sits at. Transfers into a new
// location must name the kind explicitly; the ledger never guesses.
type LocationKind string

const (
	LocationWarehouse LocationKind = "warehouse"
	LocationJob       LocationKind = "job"
	LocationVehicle   LocationKind = "vehicle"
)

func (k LocationKind) Valid() bool {
	switch k {
	case LocationWarehouse, LocationJob, LocationVehicle:
		return true
	}
	return false
}

// Bin is a located quantity of one item. A bin may exist with quantity 0;
// job bin status displays depend on "empty bin" being distinct from "no bin".
type Bin struct {
	gorm.Model
	ItemID       uint         `json:"item_id" gorm:"not null;uniqueIndex:idx_bins_item_location"`
	Kind         LocationKind `json:"kind" gorm:"size:16;not null" validate:"required"`
	LocationCode string       `json:"location_code" gorm:"size:64;not null;uniqueIndex:idx_bins_item_location" validate:"required"`
	Label        string       `json:"label"`
	Quantity     int          `json:"quantity" gorm:"not null;default:0"`
}
