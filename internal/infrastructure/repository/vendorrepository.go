// Package repository provides GORM-backed implementations of the domain
// repository interfaces.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"streetside/internal/domain/vendor"
	"streetside/internal/infrastructure/persistence/mappers"
	"streetside/internal/infrastructure/persistence/models"
	"streetside/internal/shared/db"
	"streetside/internal/shared/errors"
	"streetside/internal/shared/logger"
)

// VendorRepositoryImpl implements the vendor.Repository interface
type VendorRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.VendorMapper
	logger logger.Interface
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(database *gorm.DB, logger logger.Interface) vendor.Repository {
	return &VendorRepositoryImpl{
		db:     database,
		mapper: mappers.NewVendorMapper(),
		logger: logger,
	}
}

// Create creates a new vendor
func (r *VendorRepositoryImpl) Create(ctx context.Context, entity *vendor.Vendor) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map vendor: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("vendor already exists", entity.SID())
		}
		r.logger.Errorw("failed to create vendor", "vendor_id", entity.SID(), "error", err)
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set vendor ID: %w", err)
	}

	r.logger.Infow("vendor created", "id", model.ID, "vendor_id", model.SID)
	return nil
}

// GetByID retrieves a vendor by internal ID, nil when not found
func (r *VendorRepositoryImpl) GetByID(ctx context.Context, id uint) (*vendor.Vendor, error) {
	var model models.VendorModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotDeleted()).
		First(&model, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get vendor", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a vendor by external SID, nil when not found
func (r *VendorRepositoryImpl) GetBySID(ctx context.Context, sid string) (*vendor.Vendor, error) {
	var model models.VendorModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotDeleted()).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get vendor", "vendor_id", sid, "error", err)
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByIDs retrieves vendors by internal IDs; missing IDs are skipped
func (r *VendorRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*vendor.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var vendorModels []*models.VendorModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotDeleted()).
		Where("id IN ?", ids).
		Find(&vendorModels).Error
	if err != nil {
		r.logger.Errorw("failed to get vendors", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get vendors: %w", err)
	}

	return r.mapper.ToEntities(vendorModels)
}

// Update updates an existing vendor using optimistic locking on version.
func (r *VendorRepositoryImpl) Update(ctx context.Context, entity *vendor.Vendor) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map vendor: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.VendorModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"display_name":     model.DisplayName,
			"status":           model.Status,
			"rejection_reason": model.RejectionReason,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update vendor", "vendor_id", entity.SID(), "error", result.Error)
		return fmt.Errorf("failed to update vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("vendor was modified concurrently", entity.SID())
	}

	r.logger.Infow("vendor updated", "vendor_id", entity.SID(), "status", model.Status)
	return nil
}

// List retrieves a paginated list of vendors
func (r *VendorRepositoryImpl) List(ctx context.Context, filter vendor.ListFilter) ([]*vendor.Vendor, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.VendorModel{}).
		Scopes(db.NotDeleted())

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Name != "" {
		query = query.Where("display_name LIKE ?", "%"+filter.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count vendors", "error", err)
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	var vendorModels []*models.VendorModel
	err := query.
		Order(fmt.Sprintf("%s %s", orderBy, order)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&vendorModels).Error
	if err != nil {
		r.logger.Errorw("failed to list vendors", "error", err)
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}

	entities, err := r.mapper.ToEntities(vendorModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// ExistsBySID checks if a vendor exists by external SID
func (r *VendorRepositoryImpl) ExistsBySID(ctx context.Context, sid string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.VendorModel{}).
		Scopes(db.NotDeleted()).
		Where("sid = ?", sid).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vendor existence: %w", err)
	}
	return count > 0, nil
}
