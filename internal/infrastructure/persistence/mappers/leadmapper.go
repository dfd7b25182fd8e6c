package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/leadrouter/internal/domain/lead"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
)

type LeadMapper interface {
	ToEntity(model *models.LeadModel) (*lead.Lead, error)
	ToModel(entity *lead.Lead) (*models.LeadModel, error)
}

type LeadMapperImpl struct{}

func NewLeadMapper() LeadMapper {
	return &LeadMapperImpl{}
}

func (m *LeadMapperImpl) ToEntity(model *models.LeadModel) (*lead.Lead, error) {
	if model == nil {
		return nil, nil
	}

	metadata := make(map[string]interface{})
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode lead metadata: %w", err)
		}
	}

	entity, err := lead.ReconstructLead(
		model.ID,
		model.ExternalID,
		model.Name,
		model.Phone,
		model.SourceTimestamp,
		model.LeadSource,
		model.City,
		model.State,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct lead entity: %w", err)
	}

	return entity, nil
}

func (m *LeadMapperImpl) ToModel(entity *lead.Lead) (*models.LeadModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode lead metadata: %w", err)
		}
		metadataJSON = data
	}

	return &models.LeadModel{
		ID:              entity.ID(),
		ExternalID:      entity.ExternalID(),
		Name:            entity.Name(),
		Phone:           entity.Phone(),
		SourceTimestamp: entity.SourceTimestamp(),
		LeadSource:      entity.LeadSource(),
		City:            entity.City(),
		State:           entity.State(),
		Metadata:        metadataJSON,
		CreatedAt:       entity.CreatedAt(),
	}, nil
}
