package models

import (
	"gorm.io/gorm"
)

type RMAStatus string

const (
	RMAPending   RMAStatus = "Pending"
	RMAApproved  RMAStatus = "Approved"
	RMARejected  RMAStatus = "Rejected"
	RMACompleted RMAStatus = "Completed"
)

// CanTransition reports whether moving to next is allowed. The flow is
// roughly linear: Pending resolves to Approved or Rejected, Approved closes
// as Completed. No reverse transitions.
func (s RMAStatus) CanTransition(next RMAStatus) bool {
	switch s {
	case RMAPending:
		return next == RMAApproved || next == RMARejected
	case RMAApproved:
		return next == RMACompleted
	}
	return false
}

// RMARequest is a return authorization with attached evidence photos.
// Status changes are direct writes, not ledger entries.
type RMARequest struct {
	gorm.Model
	ItemName     string    `json:"item_name" gorm:"not null" validate:"required"`
	SerialNumber string    `json:"serial_number" gorm:"size:64"`
	Reason       string    `json:"reason"`
	Status       RMAStatus `json:"status" gorm:"size:16;not null;default:Pending"`
	// Photos holds storage URLs as a JSON array.
	Photos    string `json:"photos" gorm:"type:text"`
	CreatedBy string `json:"created_by" gorm:"size:64"`
}
