package models

import (
	"gorm.io/gorm"
)

// Consumable is a flat per-item counter with no location split. Quantity is
// clamped at zero on decrement.
type Consumable struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null" validate:"required"`
	Quantity int    `json:"quantity" gorm:"not null;default:0"`
	Unit     string `json:"unit" gorm:"size:16;default:pcs"`
	MinLevel int    `json:"min_level" gorm:"default:10"`
}

func (c *Consumable) BelowMinimum() bool {
	return c.Quantity < c.MinLevel
}
