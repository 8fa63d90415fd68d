package database

import (
	"gorm.io/gorm"

	"fieldops-backend/models"
)

// Migrate runs the auto migrations for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Bin{},
		&models.StockTransaction{},
		&models.AdjustmentRequest{},
		&models.Consumable{},
		&models.RMARequest{},
		&models.FieldReport{},
		&models.Notification{},
	)
}
