package mappers

import (
	"fmt"

	"github.com/orris-inc/leadrouter/internal/domain/assignment"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
)

type AssignmentMapper interface {
	ToEntity(model *models.AssignmentModel) (*assignment.Assignment, error)
	ToModel(entity *assignment.Assignment) (*models.AssignmentModel, error)
}

type AssignmentMapperImpl struct{}

func NewAssignmentMapper() AssignmentMapper {
	return &AssignmentMapperImpl{}
}

func (m *AssignmentMapperImpl) ToEntity(model *models.AssignmentModel) (*assignment.Assignment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := assignment.ReconstructAssignment(
		model.ID,
		model.ExternalID,
		model.LeadID,
		model.CallerID,
		model.AssignedAt,
		assignment.ReasonCode(model.Reason),
		assignment.Status(model.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct assignment entity: %w", err)
	}

	return entity, nil
}

func (m *AssignmentMapperImpl) ToModel(entity *assignment.Assignment) (*models.AssignmentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.AssignmentModel{
		ID:          entity.ID(),
		ExternalID:  entity.ExternalID(),
		LeadID:      entity.LeadID(),
		CallerID:    entity.CallerID(),
		AssignedAt:  entity.AssignedAt(),
		Reason:      entity.Reason().String(),
		Status:      entity.Status().String(),
		CurrentFlag: currentFlagFor(entity.Status()),
	}, nil
}

// currentFlagFor returns the CurrentFlag value backing the
// uk_assignments_lead_current unique index: 1 for the row still
// considered "current" for its lead, nil for a superseded one.
func currentFlagFor(status assignment.Status) *int8 {
	if status == assignment.StatusReassignedSuperseded {
		return nil
	}
	one := int8(1)
	return &one
}
