package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	assignmentDomain "github.com/orris-inc/leadrouter/internal/domain/assignment"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// AssignmentRepository persists assignment rows. Exactly one row per
// lead_id is ever visible with Status != reassigned-superseded; manual
// reassignment enforces this by flipping the old row's status in the same
// transaction that inserts the new one.
type AssignmentRepository struct {
	db     *gorm.DB
	mapper mappers.AssignmentMapper
	logger logger.Interface
}

func NewAssignmentRepository(database *gorm.DB, log logger.Interface) assignmentDomain.Repository {
	return &AssignmentRepository{
		db:     database,
		mapper: mappers.NewAssignmentMapper(),
		logger: log,
	}
}

func (r *AssignmentRepository) Insert(ctx context.Context, a *assignmentDomain.Assignment) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return err
	}

	txDB := db.GetTxFromContext(ctx, r.db)
	if err := txDB.Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AssignmentRepository) Update(ctx context.Context, a *assignmentDomain.Assignment) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return err
	}

	txDB := db.GetTxFromContext(ctx, r.db)
	if err := txDB.Model(&models.AssignmentModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
		"caller_id":    model.CallerID,
		"assigned_at":  model.AssignedAt,
		"reason":       model.Reason,
		"status":       model.Status,
		"current_flag": model.CurrentFlag,
	}).Error; err != nil {
		return fmt.Errorf("failed to update assignment %d: %w", model.ID, err)
	}

	return nil
}

// CurrentForLead locks the lead's current row with SELECT ... FOR UPDATE,
// the same shape fairnessstore.go and dailycounterstore.go use to guard
// their own read-then-write sections. Without this lock, two concurrent
// Reassign calls on the same lead_id could both read the same "current"
// row, both supersede it, and both insert a new current row, producing
// two live assignments for one lead; the DB-level uk_assignments_lead_current
// unique index is the backstop if this lock is ever bypassed.
func (r *AssignmentRepository) CurrentForLead(ctx context.Context, leadID uint) (*assignmentDomain.Assignment, error) {
	var row models.AssignmentModel
	txDB := db.GetTxFromContext(ctx, r.db)

	err := txDB.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lead_id = ? AND current_flag IS NOT NULL", leadID).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load current assignment for lead %d: %w", leadID, err)
	}

	return r.mapper.ToEntity(&row)
}
