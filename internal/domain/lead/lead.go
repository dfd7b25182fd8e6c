package lead

import (
	"fmt"
	"time"

	"github.com/orris-inc/leadrouter/internal/shared/id"
)

// Lead is an inbound sales prospect record. A lead is created once at
// ingestion and is thereafter immutable; there is no update path on this
// entity beyond persistence of the original fields.
type Lead struct {
	id              uint
	externalID      string
	name            string
	phone           string
	sourceTimestamp time.Time
	leadSource      string
	city            string
	state           string
	metadata        map[string]interface{}
	createdAt       time.Time
}

// NewLead constructs a validated lead ready for insertion. phone and
// sourceTimestamp together form the natural key the engine deduplicates
// on; both are required.
func NewLead(
	name string,
	phone string,
	sourceTimestamp time.Time,
	leadSource string,
	city string,
	state string,
	metadata map[string]interface{},
) (*Lead, error) {
	if len(phone) == 0 {
		return nil, fmt.Errorf("phone is required")
	}
	if sourceTimestamp.IsZero() {
		return nil, fmt.Errorf("source timestamp is required")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	externalID, err := id.GenerateWithPrefix(id.PrefixLead, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate lead external id: %w", err)
	}

	return &Lead{
		externalID:      externalID,
		name:            name,
		phone:           phone,
		sourceTimestamp: sourceTimestamp,
		leadSource:      leadSource,
		city:            city,
		state:           state,
		metadata:        metadata,
		createdAt:       time.Now(),
	}, nil
}

// ReconstructLead rebuilds a Lead from persisted fields.
func ReconstructLead(
	dbID uint,
	externalID string,
	name string,
	phone string,
	sourceTimestamp time.Time,
	leadSource string,
	city string,
	state string,
	metadata map[string]interface{},
	createdAt time.Time,
) (*Lead, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("lead id cannot be zero")
	}
	if len(phone) == 0 {
		return nil, fmt.Errorf("phone is required")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Lead{
		id:              dbID,
		externalID:      externalID,
		name:            name,
		phone:           phone,
		sourceTimestamp: sourceTimestamp,
		leadSource:      leadSource,
		city:            city,
		state:           state,
		metadata:        metadata,
		createdAt:       createdAt,
	}, nil
}

func (l *Lead) ID() uint                     { return l.id }
func (l *Lead) ExternalID() string           { return l.externalID }
func (l *Lead) Name() string                 { return l.name }
func (l *Lead) Phone() string                { return l.phone }
func (l *Lead) SourceTimestamp() time.Time   { return l.sourceTimestamp }
func (l *Lead) LeadSource() string           { return l.leadSource }
func (l *Lead) City() string                 { return l.city }
func (l *Lead) CreatedAt() time.Time         { return l.createdAt }

// State returns the lead's raw state field. HasState reports whether a
// state was supplied at all; an empty string is a valid "no state"
// signal that routes the lead globally.
func (l *Lead) State() string {
	return l.state
}

// HasState reports whether the lead carries a non-empty state string
// (whitespace-only counts as present), which is the engine's signal to attempt state-scoped routing before falling
// back to global.
func (l *Lead) HasState() bool {
	return len(l.state) > 0
}

// SetID assigns the database-generated identifier after insertion. It may
// only be called once, on a lead that does not yet have an id.
func (l *Lead) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("lead id is already set")
	}
	if id == 0 {
		return fmt.Errorf("lead id cannot be zero")
	}
	l.id = id
	return nil
}

func (l *Lead) Metadata() map[string]interface{} {
	out := make(map[string]interface{}, len(l.metadata))
	for k, v := range l.metadata {
		out[k] = v
	}
	return out
}
