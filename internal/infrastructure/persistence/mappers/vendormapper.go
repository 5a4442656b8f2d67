package mappers

import (
	"fmt"

	"streetside/internal/domain/vendor"
	"streetside/internal/infrastructure/persistence/models"
)

// VendorMapper handles the conversion between domain entities and persistence models
type VendorMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.VendorModel) (*vendor.Vendor, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *vendor.Vendor) (*models.VendorModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.VendorModel) ([]*vendor.Vendor, error)
}

type vendorMapper struct{}

// NewVendorMapper creates a new vendor mapper
func NewVendorMapper() VendorMapper {
	return &vendorMapper{}
}

func (m *vendorMapper) ToEntity(model *models.VendorModel) (*vendor.Vendor, error) {
	if model == nil {
		return nil, nil
	}

	displayName, err := vendor.NewDisplayName(model.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("invalid display name in row %d: %w", model.ID, err)
	}

	status, err := vendor.ParseStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in row %d: %w", model.ID, err)
	}

	entity, err := vendor.ReconstructVendor(
		model.ID,
		model.SID,
		displayName,
		status,
		model.RejectionReason,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct vendor entity: %w", err)
	}

	return entity, nil
}

func (m *vendorMapper) ToModel(entity *vendor.Vendor) (*models.VendorModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.VendorModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		DisplayName:     entity.DisplayName().String(),
		Status:          entity.Status().String(),
		RejectionReason: entity.RejectionReason(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *vendorMapper) ToEntities(vendorModels []*models.VendorModel) ([]*vendor.Vendor, error) {
	entities := make([]*vendor.Vendor, 0, len(vendorModels))
	for i, model := range vendorModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
