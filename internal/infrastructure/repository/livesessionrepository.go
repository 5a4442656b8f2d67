package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"streetside/internal/domain/livesession"
	"streetside/internal/infrastructure/persistence/mappers"
	"streetside/internal/infrastructure/persistence/models"
	"streetside/internal/shared/db"
	"streetside/internal/shared/errors"
	"streetside/internal/shared/logger"
)

// LiveSessionRepositoryImpl implements the livesession.Repository interface.
// The uk_live_sessions_vendor_active unique key is the authority on the
// one-active-session-per-vendor invariant; every write keeps is_active,
// active_token, and end_time consistent.
type LiveSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LiveSessionMapper
	logger logger.Interface
}

// NewLiveSessionRepository creates a new live session repository instance
func NewLiveSessionRepository(database *gorm.DB, logger logger.Interface) livesession.Repository {
	return &LiveSessionRepositoryImpl{
		db:     database,
		mapper: mappers.NewLiveSessionMapper(),
		logger: logger,
	}
}

// Create persists a new active session. A concurrent create for the same
// vendor loses on the unique key and surfaces as a duplicate error.
func (r *LiveSessionRepositoryImpl) Create(ctx context.Context, entity *livesession.LiveSession) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map session: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			// Leave duplicate-key errors recognizable for the service layer.
			return err
		}
		r.logger.Errorw("failed to create session", "session_id", entity.SID(), "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set session ID: %w", err)
	}

	r.logger.Infow("session created", "id", model.ID, "session_id", model.SID, "vendor_id", model.VendorID)
	return nil
}

// GetBySID retrieves a session by external SID, nil when not found
func (r *LiveSessionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*livesession.LiveSession, error) {
	var model models.LiveSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get session", "session_id", sid, "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetActiveByVendorID retrieves the vendor's active session, nil when none
func (r *LiveSessionRepositoryImpl) GetActiveByVendorID(ctx context.Context, vendorID uint) (*livesession.LiveSession, error) {
	var model models.LiveSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveSessions()).
		Where("vendor_id = ?", vendorID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get active session", "vendor_id", vendorID, "error", err)
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Update persists a close mutation. The active token is written explicitly
// so closing a session releases the unique key slot.
func (r *LiveSessionRepositoryImpl) Update(ctx context.Context, entity *livesession.LiveSession) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map session: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.LiveSessionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"end_time":     model.EndTime,
			"is_active":    model.IsActive,
			"active_token": model.ActiveToken,
			"ended_by":     model.EndedBy,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update session", "session_id", entity.SID(), "error", result.Error)
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found", entity.SID())
	}

	r.logger.Infow("session updated", "session_id", entity.SID(), "is_active", model.IsActive)
	return nil
}

// ListActive retrieves all currently active sessions
func (r *LiveSessionRepositoryImpl) ListActive(ctx context.Context) ([]*livesession.LiveSession, error) {
	var sessionModels []*models.LiveSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveSessions()).
		Order("start_time DESC").
		Find(&sessionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active sessions", "error", err)
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	return r.mapper.ToEntities(sessionModels)
}

// ListByVendorID retrieves a vendor's session history, newest first
func (r *LiveSessionRepositoryImpl) ListByVendorID(ctx context.Context, vendorID uint, filter livesession.ListFilter) ([]*livesession.LiveSession, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.LiveSessionModel{}).
		Where("vendor_id = ?", vendorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count sessions", "vendor_id", vendorID, "error", err)
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	var sessionModels []*models.LiveSessionModel
	err := query.
		Order("start_time DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&sessionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list sessions", "vendor_id", vendorID, "error", err)
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	entities, err := r.mapper.ToEntities(sessionModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// CountActiveByVendorID counts active rows for a vendor
func (r *LiveSessionRepositoryImpl) CountActiveByVendorID(ctx context.Context, vendorID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.LiveSessionModel{}).
		Scopes(db.ActiveSessions()).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return count, nil
}
