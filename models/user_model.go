package models

import (
	"gorm.io/gorm"
)

// User is a minimal directory record. Authentication and sessions live in an
// external identity service; this table only backs role lookups for alert
// recipients and seeding.
type User struct {
	gorm.Model
	Name  string `json:"name"`
	Email string `json:"email" gorm:"size:128;uniqueIndex"`
	Role  string `json:"role" gorm:"size:32;default:tech"`
}
