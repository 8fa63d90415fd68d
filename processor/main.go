package main

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/database"
	"fieldops-backend/models"
	"fieldops-backend/repositories"
)

// Low stock alert job. Run from cron (the original schedule is daily at
// 9 AM): scans the catalog, emails every admin about items that dropped
// below their threshold, and latches the alert flag so one dip sends one
// email.

func main() {
	config.LoadConfig()

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	alertCount, err := runAlerts(db)
	if err != nil {
		log.Fatalf("Alert run failed: %v", err)
	}

	config.GetLogger().WithField("alerts", alertCount).Info("inventory alert run completed")
}

func runAlerts(db *gorm.DB) (int, error) {
	ledger := repositories.NewLedgerRepository(db, nil)

	var items []models.Item
	if err := db.Find(&items).Error; err != nil {
		return 0, err
	}

	var admins []models.User
	if err := db.Where("role = ?", "admin").Find(&admins).Error; err != nil {
		return 0, err
	}

	alertCount := 0
	for _, item := range items {
		total, err := ledger.TotalStock(item.ID)
		if err != nil {
			return alertCount, err
		}

		status := item.Status(total)
		if status == models.StatusInStock {
			if item.LowStockAlertSent {
				// Stock recovered; re-arm the latch for the next dip.
				if err := db.Model(&item).Update("low_stock_alert_sent", false).Error; err != nil {
					return alertCount, err
				}
			}
			continue
		}

		if item.LowStockAlertSent {
			continue
		}

		for _, admin := range admins {
			if admin.Email == "" {
				continue
			}
			if err := sendAlertEmail(admin.Email, item, total); err != nil {
				config.LogError("processor", "runAlerts", item.SKU, err)
			}
		}

		if err := db.Model(&item).Update("low_stock_alert_sent", true).Error; err != nil {
			return alertCount, err
		}

		notification := models.Notification{
			UserRole:          "admin",
			Title:             "Low Stock Alert",
			Message:           fmt.Sprintf("%s is below reorder point (%d < %d)", item.Name, total, item.ReorderPoint),
			Type:              "warning",
			RelatedEntityType: "inventory",
			RelatedEntityID:   item.ID,
		}
		if err := db.Create(&notification).Error; err != nil {
			return alertCount, err
		}

		alertCount++
	}

	return alertCount, nil
}

func sendAlertEmail(to string, item models.Item, currentStock int) error {
	if config.SMTPSender == "" {
		return fmt.Errorf("SMTP sender not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Low Stock Alert: %s", item.Name))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>The following inventory item is below its reorder threshold:</p>"+
			"<ul><li>Item: %s</li><li>SKU: %s</li><li>Current stock: %d</li><li>Reorder point: %d</li></ul>"+
			"<p>Please reorder soon to avoid stockouts.</p>",
		item.Name, item.SKU, currentStock, item.ReorderPoint))

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
