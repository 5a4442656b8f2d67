package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"streetside/internal/application/admin"
	"streetside/internal/infrastructure/persistence/models"
	"streetside/internal/shared/db"
	"streetside/internal/shared/logger"
)

// AuditLogRepositoryImpl implements the admin.AuditSink interface with an
// append-only table.
type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAuditLogRepository creates a new audit log repository instance
func NewAuditLogRepository(database *gorm.DB, logger logger.Interface) admin.AuditSink {
	return &AuditLogRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Record appends an audit entry
func (r *AuditLogRepositoryImpl) Record(ctx context.Context, entry admin.AuditEntry) error {
	var metadata datatypes.JSON
	if entry.Metadata != nil {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	model := &models.AuditLogModel{
		ActorSID:  entry.ActorSID,
		Action:    entry.Action,
		TargetSID: entry.TargetSID,
		Metadata:  metadata,
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to record audit entry",
			"action", entry.Action,
			"actor_id", entry.ActorSID,
			"error", err)
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}
