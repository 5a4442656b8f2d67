package mappers

import (
	"fmt"

	"streetside/internal/domain/livesession"
	"streetside/internal/infrastructure/persistence/models"
)

// LiveSessionMapper handles the conversion between domain entities and persistence models
type LiveSessionMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.LiveSessionModel) (*livesession.LiveSession, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *livesession.LiveSession) (*models.LiveSessionModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.LiveSessionModel) ([]*livesession.LiveSession, error)
}

type liveSessionMapper struct{}

// NewLiveSessionMapper creates a new live session mapper
func NewLiveSessionMapper() LiveSessionMapper {
	return &liveSessionMapper{}
}

func (m *liveSessionMapper) ToEntity(model *models.LiveSessionModel) (*livesession.LiveSession, error) {
	if model == nil {
		return nil, nil
	}

	var endedBy *livesession.EndedBy
	if model.EndedBy != nil {
		parsed, err := livesession.ParseEndedBy(*model.EndedBy)
		if err != nil {
			return nil, fmt.Errorf("invalid ended_by in row %d: %w", model.ID, err)
		}
		endedBy = &parsed
	}

	entity, err := livesession.ReconstructLiveSession(
		model.ID,
		model.SID,
		model.VendorID,
		model.Latitude,
		model.Longitude,
		model.Address,
		model.StartTime,
		model.EndTime,
		model.AutoEndTime,
		model.IsActive,
		endedBy,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct live session entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model, deriving the
// active token from the liveness flag so the unique key stays in sync.
func (m *liveSessionMapper) ToModel(entity *livesession.LiveSession) (*models.LiveSessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	var activeToken *uint8
	if entity.IsActive() {
		token := uint8(1)
		activeToken = &token
	}

	var endedBy *string
	if eb := entity.EndedBy(); eb != nil {
		v := eb.String()
		endedBy = &v
	}

	return &models.LiveSessionModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		VendorID:    entity.VendorID(),
		Latitude:    entity.Latitude(),
		Longitude:   entity.Longitude(),
		Address:     entity.Address(),
		StartTime:   entity.StartTime(),
		EndTime:     entity.EndTime(),
		AutoEndTime: entity.AutoEndTime(),
		IsActive:    entity.IsActive(),
		ActiveToken: activeToken,
		EndedBy:     endedBy,
		CreatedAt:   entity.CreatedAt(),
	}, nil
}

func (m *liveSessionMapper) ToEntities(sessionModels []*models.LiveSessionModel) ([]*livesession.LiveSession, error) {
	entities := make([]*livesession.LiveSession, 0, len(sessionModels))
	for i, model := range sessionModels {
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
