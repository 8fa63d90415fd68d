package models

import (
	"gorm.io/gorm"
)

// Notification is a dashboard inbox row written by change subscribers
// (low stock alerts, adjustment resolutions).
type Notification struct {
	gorm.Model
	UserRole          string `json:"user_role" gorm:"size:32;index"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	Type              string `json:"type" gorm:"size:16"`
	RelatedEntityType string `json:"related_entity_type" gorm:"size:32"`
	RelatedEntityID   uint   `json:"related_entity_id"`
	IsRead            bool   `json:"is_read" gorm:"default:false"`
}
