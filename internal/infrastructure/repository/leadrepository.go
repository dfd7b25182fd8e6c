package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	leadDomain "github.com/orris-inc/leadrouter/internal/domain/lead"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// LeadRepository persists leads and resolves the (phone, source_timestamp)
// natural key the engine deduplicates webhook retries on.
type LeadRepository struct {
	db     *gorm.DB
	mapper mappers.LeadMapper
	logger logger.Interface
}

func NewLeadRepository(database *gorm.DB, log logger.Interface) leadDomain.Repository {
	return &LeadRepository{
		db:     database,
		mapper: mappers.NewLeadMapper(),
		logger: log,
	}
}

func (r *LeadRepository) Insert(ctx context.Context, l *leadDomain.Lead) error {
	model, err := r.mapper.ToModel(l)
	if err != nil {
		return err
	}

	txDB := db.GetTxFromContext(ctx, r.db)
	if err := txDB.Create(model).Error; err != nil {
		return err
	}

	return l.SetID(model.ID)
}

func (r *LeadRepository) FindByNaturalKey(ctx context.Context, phone string, sourceTimestamp time.Time) (*leadDomain.Lead, error) {
	var row models.LeadModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.Where("phone = ? AND source_timestamp = ?", phone, sourceTimestamp).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find lead by natural key: %w", err)
	}

	return r.mapper.ToEntity(&row)
}

func (r *LeadRepository) GetByID(ctx context.Context, leadID uint) (*leadDomain.Lead, error) {
	var row models.LeadModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.First(&row, "id = ?", leadID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load lead %d: %w", leadID, err)
	}

	return r.mapper.ToEntity(&row)
}
