package models

import (
	"time"

	"fieldops-backend/types"
)

type TransactionKind string

const (
	TransactionTransfer     TransactionKind = "transfer"
	TransactionAdjustment   TransactionKind = "adjustment"
	TransactionInitialStock TransactionKind = "initial-stock"
)

// StockTransaction is the append-only audit trail of every quantity move.
// Rows are never updated or deleted; current bin quantities can be rebuilt
// by replaying them in order.
type StockTransaction struct {
	ID types.SnowflakeID `json:"id" gorm:"primaryKey"`
	// ClientKey is the idempotency key. Clients replaying an offline intent
	// reuse the same key, and the write path ignores duplicates, so a drain
	// retried after a mid-loop crash cannot double-apply a move.
	ClientKey    string          `json:"client_key" gorm:"size:64;uniqueIndex;not null"`
	ItemID       uint            `json:"item_id" gorm:"index;not null"`
	SKU          string          `json:"sku" gorm:"size:64;index"`
	FromLocation string          `json:"from_location" gorm:"size:64"`
	ToLocation   string          `json:"to_location" gorm:"size:64"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	// QuantityBefore/After capture the source bin quantity around the move,
	// or the warehouse bin quantity for adjustments.
	QuantityBefore int             `json:"quantity_before"`
	QuantityAfter  int             `json:"quantity_after"`
	Kind           TransactionKind `json:"kind" gorm:"size:16;not null"`
	ActingUser     string          `json:"acting_user" gorm:"size:64"`
	CreatedAt      time.Time       `json:"created_at"`
}
