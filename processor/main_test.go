package main

import (
	"testing"

	"gorm.io/gorm"

	"fieldops-backend/database"
	"fieldops-backend/models"
	"fieldops-backend/repositories"
)

func seedLowStockItem(t *testing.T, db *gorm.DB, sku string, stock int) *models.Item {
	t.Helper()
	ledger := repositories.NewLedgerRepository(db, nil)
	item, err := ledger.CreateItem(repositories.NewItemInput{
		Item: models.Item{
			SKU:          sku,
			Name:         "Enphase IQ8 Microinverter",
			ReorderPoint: 50,
		},
		InitialStock: stock,
	}, "tester")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return item
}

func TestRunAlertsLatchesOncePerDip(t *testing.T) {
	db := database.NewTestDB(t)
	item := seedLowStockItem(t, db, "INV-ENPHASE-IQ8", 10)

	count, err := runAlerts(db)
	if err != nil {
		t.Fatalf("runAlerts: %v", err)
	}
	if count != 1 {
		t.Errorf("alert count = %d, want 1", count)
	}

	var reloaded models.Item
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reloading item: %v", err)
	}
	if !reloaded.LowStockAlertSent {
		t.Error("alert latch should be set after the first run")
	}

	var notifications int64
	db.Model(&models.Notification{}).Where("related_entity_id = ?", item.ID).Count(&notifications)
	if notifications != 1 {
		t.Errorf("got %d notifications, want 1", notifications)
	}

	// Second run with the latch set: same dip, no second alert.
	count, err = runAlerts(db)
	if err != nil {
		t.Fatalf("second runAlerts: %v", err)
	}
	if count != 0 {
		t.Errorf("second run alert count = %d, want 0", count)
	}
	db.Model(&models.Notification{}).Where("related_entity_id = ?", item.ID).Count(&notifications)
	if notifications != 1 {
		t.Errorf("got %d notifications after second run, want 1", notifications)
	}
}

func TestRunAlertsRearmsAfterRecovery(t *testing.T) {
	db := database.NewTestDB(t)
	item := seedLowStockItem(t, db, "INV-ENPHASE-IQ8", 10)

	if _, err := runAlerts(db); err != nil {
		t.Fatalf("runAlerts: %v", err)
	}

	// Restock past the threshold; the next run clears the latch.
	if err := db.Model(&models.Bin{}).
		Where("item_id = ?", item.ID).
		Update("quantity", 200).Error; err != nil {
		t.Fatalf("restocking: %v", err)
	}

	count, err := runAlerts(db)
	if err != nil {
		t.Fatalf("runAlerts after restock: %v", err)
	}
	if count != 0 {
		t.Errorf("alert count = %d, want 0", count)
	}

	var reloaded models.Item
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reloading item: %v", err)
	}
	if reloaded.LowStockAlertSent {
		t.Error("alert latch should reset once stock recovers")
	}

	// Dip again: a fresh alert goes out.
	if err := db.Model(&models.Bin{}).
		Where("item_id = ?", item.ID).
		Update("quantity", 5).Error; err != nil {
		t.Fatalf("draining stock: %v", err)
	}
	count, err = runAlerts(db)
	if err != nil {
		t.Fatalf("runAlerts after second dip: %v", err)
	}
	if count != 1 {
		t.Errorf("alert count = %d, want 1", count)
	}
}

func TestRunAlertsIgnoresHealthyItems(t *testing.T) {
	db := database.NewTestDB(t)
	seedLowStockItem(t, db, "PANEL-TESLA-400", 500)

	count, err := runAlerts(db)
	if err != nil {
		t.Fatalf("runAlerts: %v", err)
	}
	if count != 0 {
		t.Errorf("alert count = %d, want 0", count)
	}

	var notifications int64
	db.Model(&models.Notification{}).Count(&notifications)
	if notifications != 0 {
		t.Errorf("got %d notifications, want 0", notifications)
	}
}
