package events

import (
	"fmt"

	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/models"
)

// NotificationWriter persists dashboard notifications for events an admin
// should see. Run it in its own goroutine; it exits when the subscription
// is closed.
type NotificationWriter struct {
	DB *gorm.DB
}

func (w *NotificationWriter) Run(ch <-chan Event) {
	for ev := range ch {
		var n models.Notification

		switch ev.Type {
		case EventLowStock:
			n = models.Notification{
				UserRole:          "admin",
				Title:             "Low Stock Alert",
				Message:           fmt.Sprintf("%s (%s) is low on stock: %d remaining", ev.ItemName, ev.SKU, ev.Quantity),
				Type:              "warning",
				RelatedEntityType: "inventory",
				RelatedEntityID:   ev.ItemID,
			}
		case EventAdjustmentResolved:
			n = models.Notification{
				UserRole:          "admin",
				Title:             "Stock Adjustment Resolved",
				Message:           ev.Message,
				Type:              "info",
				RelatedEntityType: "adjustment",
				RelatedEntityID:   ev.EntityID,
			}
		default:
			continue
		}

		if err := w.DB.Create(&n).Error; err != nil {
			config.LogError("events", "NotificationWriter.Run", ev, err)
		}
	}
}
