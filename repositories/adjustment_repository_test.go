package repositories

import (
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"fieldops-backend/database"
	"fieldops-backend/models"
)

func newAdjustments(t *testing.T) (*AdjustmentRepository, *LedgerRepository, *gorm.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	ledger := NewLedgerRepository(db, nil)
	return NewAdjustmentRepository(db, ledger, nil), ledger, db
}

func TestRequestSnapshotsCurrentStock(t *testing.T) {
	adjustments, ledger, _ := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	request, err := adjustments.Request(item.ID, 50, "cycle count", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if request.Status != models.AdjustmentPending {
		t.Errorf("status = %q, want %q", request.Status, models.AdjustmentPending)
	}
	if request.CurrentQuantity != 100 {
		t.Errorf("current quantity snapshot = %d, want 100", request.CurrentQuantity)
	}

	// Requesting has no ledger effect.
	total, err := ledger.TotalStock(item.ID)
	if err != nil {
		t.Fatalf("TotalStock: %v", err)
	}
	if total != 100 {
		t.Errorf("total stock = %d, want 100", total)
	}
}

func TestRequestValidation(t *testing.T) {
	adjustments, ledger, _ := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	if _, err := adjustments.Request(item.ID, -1, "typo", "tech1"); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := adjustments.Request(9999, 10, "ghost", "tech1"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("unknown item: err = %v, want ErrItemNotFound", err)
	}
}

func TestApproveSetsWarehouseAbsolute(t *testing.T) {
	adjustments, ledger, db := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	// Move some stock out so the warehouse and the total differ.
	_, err := ledger.Transfer(TransferInput{
		ItemID:          item.ID,
		FromLocation:    "W-A-01",
		ToLocation:      "J-2025-001",
		DestinationKind: models.LocationJob,
		Quantity:        30,
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	request, err := adjustments.Request(item.ID, 50, "cycle count found 50", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	resolved, err := adjustments.Approve(request.ID, "manager1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if resolved.Status != models.AdjustmentApproved {
		t.Errorf("status = %q, want %q", resolved.Status, models.AdjustmentApproved)
	}
	if resolved.ResolvedBy != "manager1" || resolved.ResolvedAt == nil {
		t.Errorf("resolution audit missing: by=%q at=%v", resolved.ResolvedBy, resolved.ResolvedAt)
	}

	// The warehouse bin is set to the absolute requested quantity; other
	// bins are untouched.
	if got := binQuantity(t, db, item.ID, "W-A-01"); got != 50 {
		t.Errorf("warehouse quantity = %d, want 50", got)
	}
	if got := binQuantity(t, db, item.ID, "J-2025-001"); got != 30 {
		t.Errorf("job quantity = %d, want 30", got)
	}

	var txn models.StockTransaction
	if err := db.Where("item_id = ? AND kind = ?", item.ID, models.TransactionAdjustment).First(&txn).Error; err != nil {
		t.Fatalf("loading adjustment transaction: %v", err)
	}
	if txn.QuantityBefore != 70 || txn.QuantityAfter != 50 {
		t.Errorf("before/after = %d/%d, want 70/50", txn.QuantityBefore, txn.QuantityAfter)
	}
	if txn.ActingUser != "manager1" {
		t.Errorf("acting user = %q, want manager1", txn.ActingUser)
	}
}

func TestApproveWithoutWarehouseBin(t *testing.T) {
	adjustments, ledger, db := newAdjustments(t)
	item := seedItem(t, ledger, "INV-ENPHASE-IQ8", 0)

	request, err := adjustments.Request(item.ID, 40, "found a pallet", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if _, err := adjustments.Approve(request.ID, "manager1"); !errors.Is(err, ErrNoWarehouseBin) {
		t.Fatalf("err = %v, want ErrNoWarehouseBin", err)
	}

	// The whole resolution rolled back; the request is still pending.
	var reloaded models.AdjustmentRequest
	if err := db.First(&reloaded, request.ID).Error; err != nil {
		t.Fatalf("reloading request: %v", err)
	}
	if reloaded.Status != models.AdjustmentPending {
		t.Errorf("status = %q, want %q", reloaded.Status, models.AdjustmentPending)
	}
}

func TestResolveExactlyOnce(t *testing.T) {
	adjustments, ledger, _ := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	request, err := adjustments.Request(item.ID, 90, "cycle count", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if _, err := adjustments.Approve(request.ID, "manager1"); err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	if _, err := adjustments.Approve(request.ID, "manager2"); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("second Approve: err = %v, want ErrAlreadyResolved", err)
	}
	if _, err := adjustments.Reject(request.ID, "manager2"); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("Reject after Approve: err = %v, want ErrAlreadyResolved", err)
	}
}

func TestConcurrentResolution(t *testing.T) {
	adjustments, ledger, db := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	request, err := adjustments.Request(item.ID, 80, "cycle count", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	const racers = 4
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = adjustments.Approve(request.ID, "manager")
		}(i)
	}
	wg.Wait()

	wins := 0
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyResolved):
		default:
			t.Errorf("racer %d: unexpected error %v", i, err)
		}
	}
	if wins != 1 {
		t.Errorf("%d approvals won, want exactly 1", wins)
	}

	// Exactly one adjustment entry landed on the ledger.
	var txnCount int64
	db.Model(&models.StockTransaction{}).
		Where("item_id = ? AND kind = ?", item.ID, models.TransactionAdjustment).Count(&txnCount)
	if txnCount != 1 {
		t.Errorf("got %d adjustment transactions, want 1", txnCount)
	}
}

func TestRejectLeavesLedgerAlone(t *testing.T) {
	adjustments, ledger, db := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	request, err := adjustments.Request(item.ID, 10, "suspicious count", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	resolved, err := adjustments.Reject(request.ID, "manager1")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if resolved.Status != models.AdjustmentRejected {
		t.Errorf("status = %q, want %q", resolved.Status, models.AdjustmentRejected)
	}

	if got := binQuantity(t, db, item.ID, "W-A-01"); got != 100 {
		t.Errorf("warehouse quantity = %d, want 100", got)
	}
	var txnCount int64
	db.Model(&models.StockTransaction{}).
		Where("item_id = ? AND kind = ?", item.ID, models.TransactionAdjustment).Count(&txnCount)
	if txnCount != 0 {
		t.Errorf("got %d adjustment transactions, want 0", txnCount)
	}
}

func TestListPending(t *testing.T) {
	adjustments, ledger, _ := newAdjustments(t)
	item := seedItem(t, ledger, "PANEL-TESLA-400", 100)

	first, err := adjustments.Request(item.ID, 90, "first", "tech1")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	second, err := adjustments.Request(item.ID, 80, "second", "tech2")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if _, err := adjustments.Reject(first.ID, "manager1"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	pending, err := adjustments.ListPending()
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending requests, want 1", len(pending))
	}
	if pending[0].ID != second.ID {
		t.Errorf("pending[0].ID = %d, want %d", pending[0].ID, second.ID)
	}
}
