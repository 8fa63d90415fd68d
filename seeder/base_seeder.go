package seed

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gorm.io/gorm"

	"fieldops-backend/models"
	"fieldops-backend/repositories"
)

// Seed loads a starter catalog when the items table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Item{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{Name: "Admin", Email: "admin@fieldops.local", Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	ledger := repositories.NewLedgerRepository(db, nil)

	seedItems := []repositories.NewItemInput{
		{
			Item: models.Item{
				SKU: "PANEL-TESLA-400", Name: "Tesla Solar Panel 400W",
				Brand: "Tesla", ModelName: "TS-400W", Category: "Panels",
				UnitCost: 185, RetailPrice: 350, ReorderPoint: 50,
				Supplier: "Tesla Energy", LeadTime: "2 weeks", Warranty: "25 years",
			},
			InitialStock: 125, WarehouseLocation: "W-A-01",
		},
		{
			Item: models.Item{
				SKU: "INV-ENPHASE-IQ8", Name: "Enphase IQ8+ Microinverter",
				Brand: "Enphase", ModelName: "IQ8+", Category: "Inverters",
				UnitCost: 140, RetailPrice: 230, ReorderPoint: 60,
				Supplier: "Enphase", LeadTime: "1 week", Warranty: "25 years",
			},
			InitialStock: 240, WarehouseLocation: "W-B-05",
		},
		{
			Item: models.Item{
				SKU: "BAT-TESLA-PW3", Name: "Tesla Powerwall 3",
				Brand: "Tesla", ModelName: "PW3", Category: "Batteries",
				UnitCost: 7200, RetailPrice: 9800, ReorderPoint: 4,
				Supplier: "Tesla Energy", LeadTime: "4 weeks", Warranty: "10 years",
			},
			InitialStock: 12, WarehouseLocation: "W-C-02",
		},
	}

	for _, input := range seedItems {
		if _, err := ledger.CreateItem(input, "seeder"); err != nil {
			return err
		}
	}

	consumables := []models.Consumable{
		{Name: "Wire nuts", Quantity: 400, Unit: "pcs", MinLevel: 100},
		{Name: "Sealant tubes", Quantity: 35, Unit: "pcs", MinLevel: 20},
		{Name: "Lag bolts", Quantity: 900, Unit: "pcs", MinLevel: 250},
	}
	return db.Create(&consumables).Error
}

// SeedDummyBins spreads random job and vehicle bins over the catalog for
// load testing dashboards.
func SeedDummyBins(db *gorm.DB, perItem int) error {
	var items []models.Item
	if err := db.Find(&items).Error; err != nil {
		return err
	}

	for _, item := range items {
		bins := make([]models.Bin, 0, perItem)
		for i := 0; i < perItem; i++ {
			kind := models.LocationJob
			code := fmt.Sprintf("J-2025-%03d", i+1)
			if i%3 == 0 {
				kind = models.LocationVehicle
				code = fmt.Sprintf("V%03d", i+1)
			}
			bins = append(bins, models.Bin{
				ItemID:       item.ID,
				Kind:         kind,
				LocationCode: code,
				Quantity:     rand.Intn(25),
			})
		}
		if err := db.Create(&bins).Error; err != nil {
			return err
		}
	}
	return nil
}
