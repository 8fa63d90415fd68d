package models

import (
	"gorm.io/gorm"
)

// StockStatus classifies an item's aggregate stock level. Kept as a closed
// type so handlers switch on constants instead of comparing raw strings.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

type Item struct {
	gorm.Model
	SKU          string  `json:"sku" gorm:"size:64;uniqueIndex;not null" validate:"required"`
	Name         string  `json:"name" gorm:"not null" validate:"required"`
	Brand        string  `json:"brand"`
	ModelName    string  `json:"model" gorm:"column:model_name"`
	Category     string  `json:"category"`
	UnitCost     float64 `json:"unit_cost" gorm:"default:0"`
	RetailPrice  float64 `json:"retail_price" gorm:"default:0"`
	ReorderPoint int     `json:"reorder_point" gorm:"default:0"`
	// InitialStock is the baseline used for the 20% low stock threshold.
	// Zero means no baseline was configured, in which case only the
	// reorder point is compared.
	InitialStock      int    `json:"initial_stock" gorm:"default:0"`
	Supplier          string `json:"supplier"`
	LeadTime          string `json:"lead_time"`
	Warranty          string `json:"warranty"`
	LastRestocked     string `json:"last_restocked"`
	LowStockAlertSent bool   `json:"low_stock_alert_sent" gorm:"default:false"`
	CreatedBy         string `json:"created_by"`
	UpdatedBy         string `json:"updated_by"`
}

// Status classifies total stock against the reorder point and, when a
// baseline is configured, 20% of that baseline. The baseline comparison is
// cross-multiplied so fractional thresholds are not truncated.
func (i *Item) Status(totalStock int) StockStatus {
	if totalStock <= 0 {
		return StatusOutOfStock
	}
	if totalStock < i.ReorderPoint {
		return StatusLowStock
	}
	if i.InitialStock > 0 && 5*totalStock < i.InitialStock {
		return StatusLowStock
	}
	return StatusInStock
}
