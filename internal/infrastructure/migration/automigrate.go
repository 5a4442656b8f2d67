package migration

import (
	"streetside/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.VendorModel{},
		&models.LiveSessionModel{},
		&models.AuditLogModel{},
	}
}
