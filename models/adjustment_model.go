package models

import (
	"time"

	"gorm.io/gorm"
)

type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "pending"
	AdjustmentApproved AdjustmentStatus = "approved"
	AdjustmentRejected AdjustmentStatus = "rejected"
)

// AdjustmentRequest proposes setting an item's warehouse bin to an absolute
// quantity. It only touches the ledger when an approver resolves it, and a
// resolved request is immutable.
type AdjustmentRequest struct {
	gorm.Model
	ItemID uint `json:"item_id" gorm:"index;not null" validate:"required"`
	// CurrentQuantity is a snapshot of total stock at request time, kept for
	// the approver's display. It is not re-validated at approval time since
	// stock may have legitimately moved in between.
	CurrentQuantity   int              `json:"current_quantity"`
	RequestedQuantity int              `json:"requested_quantity" gorm:"not null"`
	Reason            string           `json:"reason"`
	Status            AdjustmentStatus `json:"status" gorm:"size:16;not null;default:pending;index"`
	RequestedBy       string           `json:"requested_by" gorm:"size:64"`
	ResolvedBy        string           `json:"resolved_by" gorm:"size:64"`
	ResolvedAt        *time.Time       `json:"resolved_at"`
}
