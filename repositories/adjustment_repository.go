package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldops-backend/events"
	"fieldops-backend/idgen"
	"fieldops-backend/models"
	"fieldops-backend/types"
)

// AdjustmentRepository runs the request/approve/reject workflow. Requests
// are created by any authorized user and only an approver's resolution
// touches the bin ledger.
type AdjustmentRepository struct {
	db     *gorm.DB
	ledger *LedgerRepository
	hub    *events.Hub
}

func NewAdjustmentRepository(db *gorm.DB, ledger *LedgerRepository, hub *events.Hub) *AdjustmentRepository {
	return &AdjustmentRepository{db: db, ledger: ledger, hub: hub}
}

// Request records a proposed absolute correction. The current total stock
// is snapshotted for the approver's display; no ledger effect yet.
func (r *AdjustmentRepository) Request(itemID uint, requestedQuantity int, reason, requestedBy string) (*models.AdjustmentRequest, error) {
	if requestedQuantity < 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := r.ledger.resolveItem(itemID, "")
	if err != nil {
		return nil, err
	}
	total, err := r.ledger.TotalStock(item.ID)
	if err != nil {
		return nil, err
	}

	request := models.AdjustmentRequest{
		ItemID:            item.ID,
		CurrentQuantity:   total,
		RequestedQuantity: requestedQuantity,
		Reason:            reason,
		Status:            models.AdjustmentPending,
		RequestedBy:       requestedBy,
	}
	if err := r.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Approve flips the request to approved and sets the item's warehouse bin
// to the requested absolute quantity, appending an adjustment transaction,
// all in one commit. The status flip is the guard: of two concurrent
// resolutions exactly one wins, the other gets ErrAlreadyResolved.
func (r *AdjustmentRepository) Approve(requestID uint, approver string) (*models.AdjustmentRequest, error) {
	var request models.AdjustmentRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.AdjustmentRequest{}).
			Where("id = ? AND status = ?", requestID, models.AdjustmentPending).
			Updates(map[string]interface{}{
				"status":      models.AdjustmentApproved,
				"resolved_by": approver,
				"resolved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyResolved
		}
		request.Status = models.AdjustmentApproved
		request.ResolvedBy = approver
		request.ResolvedAt = &now

		var bin models.Bin
		err := tx.Where("item_id = ? AND kind = ?", request.ItemID, models.LocationWarehouse).
			Order("created_at").First(&bin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Creating a bin here would put stock on the books with no
			// provenance; the approver has to seed the warehouse bin first.
			return ErrNoWarehouseBin
		} else if err != nil {
			return err
		}

		before := bin.Quantity
		if err := tx.Model(&models.Bin{}).
			Where("id = ?", bin.ID).
			Update("quantity", request.RequestedQuantity).Error; err != nil {
			return err
		}

		var item models.Item
		if err := tx.First(&item, request.ItemID).Error; err != nil {
			return err
		}

		txn := models.StockTransaction{
			ID:             types.SnowflakeID(idgen.GenerateID()),
			ClientKey:      uuid.NewString(),
			ItemID:         item.ID,
			SKU:            item.SKU,
			ToLocation:     bin.LocationCode,
			Quantity:       request.RequestedQuantity - before,
			QuantityBefore: before,
			QuantityAfter:  request.RequestedQuantity,
			Kind:           models.TransactionAdjustment,
			ActingUser:     approver,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	if r.hub != nil {
		r.hub.Publish(events.Event{
			Type:     events.EventAdjustmentResolved,
			ItemID:   request.ItemID,
			EntityID: request.ID,
			Message:  fmt.Sprintf("Adjustment #%d approved by %s: warehouse set to %d", request.ID, approver, request.RequestedQuantity),
		})
	}
	return &request, nil
}

// Reject resolves the request with no ledger effect.
func (r *AdjustmentRepository) Reject(requestID uint, approver string) (*models.AdjustmentRequest, error) {
	var request models.AdjustmentRequest
	if err := r.db.First(&request, requestID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	res := r.db.Model(&models.AdjustmentRequest{}).
		Where("id = ? AND status = ?", requestID, models.AdjustmentPending).
		Updates(map[string]interface{}{
			"status":      models.AdjustmentRejected,
			"resolved_by": approver,
			"resolved_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyResolved
	}

	request.Status = models.AdjustmentRejected
	request.ResolvedBy = approver
	request.ResolvedAt = &now

	if r.hub != nil {
		r.hub.Publish(events.Event{
			Type:     events.EventAdjustmentResolved,
			ItemID:   request.ItemID,
			EntityID: request.ID,
			Message:  fmt.Sprintf("Adjustment #%d rejected by %s", request.ID, approver),
		})
	}
	return &request, nil
}

// ListPending returns unresolved requests, oldest first.
func (r *AdjustmentRepository) ListPending() ([]models.AdjustmentRequest, error) {
	var requests []models.AdjustmentRequest
	err := r.db.Where("status = ?", models.AdjustmentPending).
		Order("created_at").Find(&requests).Error
	return requests, err
}
