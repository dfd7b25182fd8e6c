package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	callerDomain "github.com/orris-inc/leadrouter/internal/domain/caller"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// CallerRepository is the GORM-backed read view over caller profiles. All
// reads are unlocked per §5's "read-mostly" shared-resource rule — the
// engine never re-validates a selected caller's configuration after
// eligibility filtering within the same transaction.
type CallerRepository struct {
	db     *gorm.DB
	mapper mappers.CallerMapper
	logger logger.Interface
}

func NewCallerRepository(database *gorm.DB, log logger.Interface) callerDomain.Repository {
	return &CallerRepository{
		db:     database,
		mapper: mappers.NewCallerMapper(),
		logger: log,
	}
}

func (r *CallerRepository) CandidatesForState(ctx context.Context, state string) ([]*callerDomain.Caller, error) {
	var rows []*models.CallerModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.
		Joins("JOIN caller_states ON caller_states.caller_id = callers.id").
		Where("callers.status = ? AND caller_states.state = ?", callerDomain.StatusActive.String(), state).
		Preload("States").
		Order("callers.created_at ASC, callers.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load state candidates: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *CallerRepository) CandidatesGlobal(ctx context.Context) ([]*callerDomain.Caller, error) {
	var rows []*models.CallerModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.
		Where("status = ?", callerDomain.StatusActive.String()).
		Preload("States").
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load global candidates: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *CallerRepository) GetByID(ctx context.Context, callerID uint) (*callerDomain.Caller, error) {
	var row models.CallerModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.Preload("States").First(&row, "id = ?", callerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load caller %d: %w", callerID, err)
	}

	return r.mapper.ToEntity(&row)
}

func (r *CallerRepository) NameOf(ctx context.Context, callerID uint) (string, error) {
	var row models.CallerModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.Select("name").First(&row, "id = ?", callerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to load caller name %d: %w", callerID, err)
	}

	return row.Name, nil
}
