package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/leadrouter/internal/domain/routing"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	"github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// FairnessStore persists the rr_pointers table: one row per routing key
// holding the last caller assigned under it. There is nothing to expire
// or release here — a pointer row, once created, is never deleted and is
// only ever locked, read and rewritten.
type FairnessStore struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewFairnessStore(database *gorm.DB, log logger.Interface) routing.FairnessStore {
	return &FairnessStore{
		db:     database,
		logger: log,
	}
}

// LockAndRead acquires SELECT ... FOR UPDATE on the pointer row, creating
// it with a nil last caller if this is the first time the key is used:
// it tries the locked read first, and only inserts on ErrRecordNotFound.
func (s *FairnessStore) LockAndRead(ctx context.Context, key routing.Key) (*uint, error) {
	txDB := db.GetTxFromContext(ctx, s.db)

	var row models.RRPointerModel
	err := txDB.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key.String()).
		First(&row).Error

	if err == nil {
		if row.LastCallerID == nil {
			return nil, nil
		}
		id := *row.LastCallerID
		return &id, nil
	}

	if err == gorm.ErrRecordNotFound {
		newRow := &models.RRPointerModel{
			Key:          key.String(),
			LastCallerID: nil,
			UpdatedAt:    biztime.NowUTC(),
		}
		if createErr := txDB.Create(newRow).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create fairness pointer %q: %w", key, createErr)
		}
		return nil, nil
	}

	return nil, fmt.Errorf("failed to lock fairness pointer %q: %w", key, err)
}

// Write sets the pointer's last caller id. Must be called within the same
// transaction that obtained the row's lock via LockAndRead.
func (s *FairnessStore) Write(ctx context.Context, key routing.Key, callerID uint) error {
	txDB := db.GetTxFromContext(ctx, s.db)

	result := txDB.Model(&models.RRPointerModel{}).
		Where("key = ?", key.String()).
		Updates(map[string]interface{}{
			"last_caller_id": callerID,
			"updated_at":     biztime.NowUTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to write fairness pointer %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("fairness pointer %q does not exist, LockAndRead must run first", key)
	}

	return nil
}
