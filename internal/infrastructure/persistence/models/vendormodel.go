package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorModel is the GORM model for the vendors table
type VendorModel struct {
	ID              uint           `gorm:"primaryKey;autoIncrement"`
	SID             string         `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	DisplayName     string         `gorm:"column:display_name;type:varchar(100);not null"`
	Status          string         `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	RejectionReason *string        `gorm:"column:rejection_reason;type:varchar(500)"`
	Version         int            `gorm:"column:version;not null;default:1"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}
