package repositories

import (
	"errors"

	"gorm.io/gorm"

	"fieldops-backend/models"
)

// ConsumableRepository tracks the flat per-item counters. No locations,
// no ledger entries; a single clamped counter per consumable.
type ConsumableRepository struct {
	db *gorm.DB
}

func NewConsumableRepository(db *gorm.DB) *ConsumableRepository {
	return &ConsumableRepository{db: db}
}

// Adjust adds delta to the counter, clamping at zero. Returns the updated
// record.
func (r *ConsumableRepository) Adjust(id uint, delta int) (*models.Consumable, error) {
	var consumable models.Consumable

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&consumable, id).Error; err != nil {
			return err
		}

		newQty := consumable.Quantity + delta
		if newQty < 0 {
			newQty = 0
		}
		consumable.Quantity = newQty
		return tx.Model(&models.Consumable{}).
			Where("id = ?", id).
			Update("quantity", newQty).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &consumable, nil
}

// ListBelowMinimum returns consumables under their configured minimum.
func (r *ConsumableRepository) ListBelowMinimum() ([]models.Consumable, error) {
	var consumables []models.Consumable
	err := r.db.Where("quantity < min_level").Order("name").Find(&consumables).Error
	return consumables, err
}
