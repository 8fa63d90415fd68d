package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldops-backend/models"
)

// CollectionTransfers is the reserved sync target handled by the transfer
// engine; every other collection lands as a FieldReport capture row.
const CollectionTransfers = "inventory_transfers"

// SyncRepository applies drained offline intents. Every path de-duplicates
// on the client key, so a device that crashed between "apply" and "mark
// synced" can replay the same intent without double-applying it.
type SyncRepository struct {
	db     *gorm.DB
	ledger *LedgerRepository
}

func NewSyncRepository(db *gorm.DB, ledger *LedgerRepository) *SyncRepository {
	return &SyncRepository{db: db, ledger: ledger}
}

type IntentInput struct {
	Collection string          `json:"collection" validate:"required"`
	ClientKey  string          `json:"client_key" validate:"required"`
	CapturedAt time.Time       `json:"captured_at"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
}

// Apply writes one intent to its target collection. Safe to call multiple
// times with the same client key.
func (r *SyncRepository) Apply(input IntentInput, actingUser string) error {
	if input.ClientKey == "" {
		return fmt.Errorf("client key is required for offline intents")
	}

	if input.Collection == CollectionTransfers {
		var transfer TransferInput
		if err := json.Unmarshal(input.Payload, &transfer); err != nil {
			return fmt.Errorf("decoding transfer intent: %w", err)
		}
		transfer.ClientKey = input.ClientKey
		if transfer.ActingUser == "" {
			transfer.ActingUser = actingUser
		}
		_, err := r.ledger.Transfer(transfer)
		return err
	}

	capturedAt := input.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	report := models.FieldReport{
		ClientKey:  input.ClientKey,
		Collection: input.Collection,
		Payload:    string(input.Payload),
		CapturedAt: capturedAt,
		ActingUser: actingUser,
	}
	// Blind insert would double-apply on replay; ignore the duplicate key
	// instead.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_key"}},
		DoNothing: true,
	}).Create(&report).Error
}

// PendingReports lists captures for one collection, newest first.
func (r *SyncRepository) PendingReports(collection string) ([]models.FieldReport, error) {
	var reports []models.FieldReport
	err := r.db.Where("collection = ?", collection).
		Order("captured_at desc").Find(&reports).Error
	return reports, err
}
