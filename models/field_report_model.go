package models

import (
	"time"

	"gorm.io/gorm"
)

// FieldReport is a capture record (photo reference, checklist submission,
// damage report) created by a technician, often replayed from a device's
// offline queue. The client key makes replay a no-op.
type FieldReport struct {
	gorm.Model
	ClientKey  string    `json:"client_key" gorm:"size:64;uniqueIndex;not null"`
	Collection string    `json:"collection" gorm:"size:32;not null;index"`
	Payload    string    `json:"payload" gorm:"type:text"`
	CapturedAt time.Time `json:"captured_at"`
	ActingUser string    `json:"acting_user" gorm:"size:64"`
}
