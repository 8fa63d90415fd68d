package seed

import (
	"testing"

	"fieldops-backend/database"
	"fieldops-backend/models"
)

func TestSeedLoadsStarterCatalog(t *testing.T) {
	db := database.NewTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var itemCount int64
	db.Model(&models.Item{}).Count(&itemCount)
	if itemCount != 3 {
		t.Errorf("got %d items, want 3", itemCount)
	}

	// Seed stock flows through the ledger, so every seeded item has an
	// initial-stock entry.
	var txnCount int64
	db.Model(&models.StockTransaction{}).
		Where("kind = ?", models.TransactionInitialStock).Count(&txnCount)
	if txnCount != 3 {
		t.Errorf("got %d initial-stock transactions, want 3", txnCount)
	}

	var admin models.User
	if err := db.Where("role = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("loading admin user: %v", err)
	}
}

func TestSeedSkipsPopulatedCatalog(t *testing.T) {
	db := database.NewTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var itemCount int64
	db.Model(&models.Item{}).Count(&itemCount)
	if itemCount != 3 {
		t.Errorf("got %d items after reseeding, want 3", itemCount)
	}
}

func TestSeedDummyBins(t *testing.T) {
	db := database.NewTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := SeedDummyBins(db, 6); err != nil {
		t.Fatalf("SeedDummyBins: %v", err)
	}

	// 3 seed warehouse bins plus 6 dummy bins per item.
	var binCount int64
	db.Model(&models.Bin{}).Count(&binCount)
	if binCount != 3+3*6 {
		t.Errorf("got %d bins, want %d", binCount, 3+3*6)
	}
}
