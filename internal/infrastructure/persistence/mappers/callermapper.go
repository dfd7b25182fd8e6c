package mappers

import (
	"fmt"
	"strings"

	"github.com/orris-inc/leadrouter/internal/domain/caller"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
)

// CallerMapper converts between caller domain entities and their
// persisted model, including the states join-table rows.
type CallerMapper interface {
	ToEntity(model *models.CallerModel) (*caller.Caller, error)
	ToModel(entity *caller.Caller) (*models.CallerModel, error)
	ToEntities(modelList []*models.CallerModel) ([]*caller.Caller, error)
}

type CallerMapperImpl struct{}

func NewCallerMapper() CallerMapper {
	return &CallerMapperImpl{}
}

func (m *CallerMapperImpl) ToEntity(model *models.CallerModel) (*caller.Caller, error) {
	if model == nil {
		return nil, nil
	}

	states := make([]string, 0, len(model.States))
	for _, s := range model.States {
		states = append(states, s.State)
	}

	languages := splitNonEmpty(model.Languages)

	entity, err := caller.ReconstructCaller(
		model.ID,
		model.Name,
		model.Role,
		languages,
		model.DailyLimit,
		states,
		caller.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct caller entity: %w", err)
	}

	return entity, nil
}

func (m *CallerMapperImpl) ToModel(entity *caller.Caller) (*models.CallerModel, error) {
	if entity == nil {
		return nil, nil
	}

	states := make([]models.CallerStateModel, 0, len(entity.States()))
	for _, s := range entity.States() {
		states = append(states, models.CallerStateModel{CallerID: entity.ID(), State: s})
	}

	return &models.CallerModel{
		ID:         entity.ID(),
		Name:       entity.Name(),
		Role:       entity.Role(),
		Languages:  strings.Join(entity.Languages(), ","),
		DailyLimit: entity.DailyLimit(),
		Status:     entity.Status().String(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
		States:     states,
	}, nil
}

func (m *CallerMapperImpl) ToEntities(modelList []*models.CallerModel) ([]*caller.Caller, error) {
	entities := make([]*caller.Caller, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
