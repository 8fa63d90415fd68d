package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/events"
	"fieldops-backend/idgen"
	"fieldops-backend/models"
	"fieldops-backend/types"
)

// LedgerRepository owns the bin ledger: atomic transfers, stock
// aggregation, and item lifecycle including the seed bin and the
// cascade delete.
type LedgerRepository struct {
	db  *gorm.DB
	hub *events.Hub
}

func NewLedgerRepository(db *gorm.DB, hub *events.Hub) *LedgerRepository {
	return &LedgerRepository{db: db, hub: hub}
}

type TransferInput struct {
	// ClientKey is the caller-assigned idempotency key. Offline replays
	// reuse the key; online callers may leave it empty and one is assigned.
	ClientKey    string `json:"client_key"`
	ItemID       uint   `json:"item_id"`
	SKU          string `json:"sku"`
	FromLocation string `json:"from_location" validate:"required"`
	ToLocation   string `json:"to_location" validate:"required"`
	// DestinationKind must be set when the destination bin does not exist
	// yet. The ledger refuses to guess a kind for a bare location code.
	DestinationKind models.LocationKind `json:"destination_kind"`
	Quantity        int                 `json:"quantity" validate:"required"`
	ActingUser      string              `json:"acting_user"`
}

// errReplayed signals that the transaction row for this client key was
// inserted by a concurrent writer while we were working.
var errReplayed = errors.New("transfer already applied under this client key")

// Transfer moves a quantity between two bins of one item. The source
// decrement, destination increment (or creation) and ledger append commit
// together or not at all. Applying the same client key twice returns the
// original transaction without touching the bins again.
func (r *LedgerRepository) Transfer(input TransferInput) (*models.StockTransaction, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.FromLocation == input.ToLocation {
		return nil, ErrSameLocation
	}

	item, err := r.resolveItem(input.ItemID, input.SKU)
	if err != nil {
		return nil, err
	}

	key := input.ClientKey
	if key == "" {
		key = uuid.NewString()
	}

	limit := config.TransferRetryLimit
	if limit <= 0 {
		limit = 3
	}

	var lastErr error
	for attempt := 0; attempt < limit; attempt++ {
		txn, replayed, err := r.transferOnce(item, input, key)
		if err == nil {
			if !replayed {
				r.publishBinChanges(item, input)
			}
			return txn, nil
		}
		if isLedgerError(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrConcurrentModification, lastErr)
}

func (r *LedgerRepository) transferOnce(item *models.Item, input TransferInput, key string) (*models.StockTransaction, bool, error) {
	var result models.StockTransaction
	replayed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Replay check first: a drained offline intent may already be applied.
		var existing models.StockTransaction
		if err := tx.Where("client_key = ?", key).First(&existing).Error; err == nil {
			result = existing
			replayed = true
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var source models.Bin
		if err := tx.Where("item_id = ? AND location_code = ?", item.ID, input.FromLocation).First(&source).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSourceNotFound
			}
			return err
		}

		// The sufficient-stock check rides inside the decrement itself so
		// two transfers cannot both pass validation against stale reads.
		res := tx.Model(&models.Bin{}).
			Where("id = ? AND quantity >= ?", source.ID, input.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", input.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		// Re-read the decremented quantity inside the transaction; the
		// earlier read may be stale under a concurrent transfer and the
		// audit row must record the real before/after.
		if err := tx.First(&source, source.ID).Error; err != nil {
			return err
		}

		var dest models.Bin
		err := tx.Where("item_id = ? AND location_code = ?", item.ID, input.ToLocation).First(&dest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !input.DestinationKind.Valid() {
				return ErrInvalidDestinationKind
			}
			dest = models.Bin{
				ItemID:       item.ID,
				Kind:         input.DestinationKind,
				LocationCode: input.ToLocation,
				Quantity:     0,
			}
			if err := tx.Create(&dest).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Model(&models.Bin{}).
			Where("id = ?", dest.ID).
			Update("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error; err != nil {
			return err
		}

		result = models.StockTransaction{
			ID:             types.SnowflakeID(idgen.GenerateID()),
			ClientKey:      key,
			ItemID:         item.ID,
			SKU:            item.SKU,
			FromLocation:   input.FromLocation,
			ToLocation:     input.ToLocation,
			Quantity:       input.Quantity,
			QuantityBefore: source.Quantity + input.Quantity,
			QuantityAfter:  source.Quantity,
			Kind:           models.TransactionTransfer,
			ActingUser:     input.ActingUser,
		}
		if err := tx.Create(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errReplayed
			}
			return err
		}
		return nil
	})

	if errors.Is(err, errReplayed) {
		// A concurrent writer applied this key first; their commit is the
		// authoritative one.
		var existing models.StockTransaction
		if ferr := r.db.Where("client_key = ?", key).First(&existing).Error; ferr != nil {
			return nil, false, ferr
		}
		return &existing, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &result, replayed, nil
}

func (r *LedgerRepository) publishBinChanges(item *models.Item, input TransferInput) {
	if r.hub == nil {
		return
	}

	for _, loc := range []string{input.FromLocation, input.ToLocation} {
		var qty int
		r.db.Model(&models.Bin{}).
			Where("item_id = ? AND location_code = ?", item.ID, loc).
			Select("COALESCE(SUM(quantity), 0)").Scan(&qty)
		r.hub.Publish(events.Event{
			Type:     events.EventBinChanged,
			ItemID:   item.ID,
			ItemName: item.Name,
			SKU:      item.SKU,
			Location: loc,
			Quantity: qty,
		})
	}

	total, err := r.TotalStock(item.ID)
	if err != nil {
		return
	}
	if item.Status(total) != models.StatusInStock {
		r.hub.Publish(events.Event{
			Type:     events.EventLowStock,
			ItemID:   item.ID,
			ItemName: item.Name,
			SKU:      item.SKU,
			Quantity: total,
		})
	}
}

// TotalStock sums bin quantities for one item. Pure read.
func (r *LedgerRepository) TotalStock(itemID uint) (int, error) {
	var total int
	err := r.db.Model(&models.Bin{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

// StockBreakdown is the per-location-kind split shown on the dashboard.
type StockBreakdown struct {
	Warehouse int `json:"warehouse"`
	Job       int `json:"job"`
	Vehicle   int `json:"vehicle"`
}

func (r *LedgerRepository) Breakdown(itemID uint) (StockBreakdown, error) {
	var rows []struct {
		Kind     models.LocationKind
		Quantity int
	}
	err := r.db.Model(&models.Bin{}).
		Where("item_id = ?", itemID).
		Select("kind, COALESCE(SUM(quantity), 0) as quantity").
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return StockBreakdown{}, err
	}

	var b StockBreakdown
	for _, row := range rows {
		switch row.Kind {
		case models.LocationWarehouse:
			b.Warehouse = row.Quantity
		case models.LocationJob:
			b.Job = row.Quantity
		case models.LocationVehicle:
			b.Vehicle = row.Quantity
		}
	}
	return b, nil
}

// ItemOverview is the derived item view: metadata plus aggregate stock,
// per-kind split, status classification and the live bins.
type ItemOverview struct {
	models.Item
	TotalStock int                `json:"total_stock"`
	Status     models.StockStatus `json:"status"`
	Breakdown  StockBreakdown     `json:"breakdown"`
	Bins       []models.Bin       `json:"bins"`
}

func (r *LedgerRepository) GetItemOverview(itemID uint) (*ItemOverview, error) {
	item, err := r.resolveItem(itemID, "")
	if err != nil {
		return nil, err
	}

	total, err := r.TotalStock(item.ID)
	if err != nil {
		return nil, err
	}
	breakdown, err := r.Breakdown(item.ID)
	if err != nil {
		return nil, err
	}

	var bins []models.Bin
	if err := r.db.Where("item_id = ?", item.ID).Order("location_code").Find(&bins).Error; err != nil {
		return nil, err
	}

	return &ItemOverview{
		Item:       *item,
		TotalStock: total,
		Status:     item.Status(total),
		Breakdown:  breakdown,
		Bins:       bins,
	}, nil
}

func (r *LedgerRepository) ListItemOverviews() ([]ItemOverview, error) {
	var items []models.Item
	if err := r.db.Order("sku").Find(&items).Error; err != nil {
		return nil, err
	}

	overviews := make([]ItemOverview, 0, len(items))
	for _, item := range items {
		ov, err := r.GetItemOverview(item.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, *ov)
	}
	return overviews, nil
}

type NewItemInput struct {
	models.Item
	// InitialStock seeds one warehouse bin and logs an initial-stock
	// transaction when positive.
	InitialStock      int    `json:"initial_stock"`
	WarehouseLocation string `json:"warehouse_location"`
}

// CreateItem creates the catalog record and, when initial stock is given,
// its seed warehouse bin plus the initial-stock ledger entry, in one
// transaction.
func (r *LedgerRepository) CreateItem(input NewItemInput, actingUser string) (*models.Item, error) {
	if input.InitialStock < 0 {
		return nil, ErrInvalidQuantity
	}

	item := input.Item
	item.InitialStock = input.InitialStock
	item.CreatedBy = actingUser

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		if input.InitialStock == 0 {
			return nil
		}

		location := input.WarehouseLocation
		if location == "" {
			location = "W-" + item.SKU
		}
		bin := models.Bin{
			ItemID:       item.ID,
			Kind:         models.LocationWarehouse,
			LocationCode: location,
			Quantity:     input.InitialStock,
		}
		if err := tx.Create(&bin).Error; err != nil {
			return err
		}

		txn := models.StockTransaction{
			ID:            types.SnowflakeID(idgen.GenerateID()),
			ClientKey:     uuid.NewString(),
			ItemID:        item.ID,
			SKU:           item.SKU,
			ToLocation:    location,
			Quantity:      input.InitialStock,
			QuantityAfter: input.InitialStock,
			Kind:          models.TransactionInitialStock,
			ActingUser:    actingUser,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes the item and every bin that references it in the same
// commit, so no orphaned bins survive a partial failure. The transaction
// history is append-only and stays.
func (r *LedgerRepository) DeleteItem(itemID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&models.Bin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func (r *LedgerRepository) resolveItem(itemID uint, sku string) (*models.Item, error) {
	var item models.Item
	q := r.db
	switch {
	case itemID != 0:
		q = q.Where("id = ?", itemID)
	case sku != "":
		q = q.Where("sku = ?", sku)
	default:
		return nil, ErrItemNotFound
	}
	if err := q.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func isLedgerError(err error) bool {
	for _, e := range []error{
		ErrInvalidQuantity, ErrSourceNotFound, ErrInsufficientStock,
		ErrSameLocation, ErrInvalidDestinationKind, ErrNoWarehouseBin,
		ErrAlreadyResolved, ErrItemNotFound,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
