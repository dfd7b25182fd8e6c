package lead

import (
	"context"
	"time"
)

// Repository persists leads and resolves the idempotency natural key
// (phone, source_timestamp) required by the engine's duplicate-detection
// step.
type Repository interface {
	// Insert persists a new lead. Callers are expected to detect a
	// uniqueness violation on (phone, source_timestamp) via
	// errors.IsDuplicateError and fall back to FindByNaturalKey.
	Insert(ctx context.Context, l *Lead) error

	// FindByNaturalKey loads the lead previously inserted under the same
	// (phone, source_timestamp) pair, used to serve idempotent replays.
	FindByNaturalKey(ctx context.Context, phone string, sourceTimestamp time.Time) (*Lead, error)

	// GetByID loads a single lead by its identifier.
	GetByID(ctx context.Context, leadID uint) (*Lead, error)
}
