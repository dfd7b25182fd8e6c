package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment_StatusFollowsCallerPresence(t *testing.T) {
	now := time.Now()
	callerID := uint(7)

	assigned, err := NewAssignment(1, &callerID, ReasonStateRoundRobin, now)
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, assigned.Status())

	unassigned, err := NewAssignment(1, nil, ReasonUnassignedNoEligible, now)
	require.NoError(t, err)
	assert.Equal(t, StatusUnassigned, unassigned.Status())
}

func TestNewAssignment_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewAssignment(0, nil, ReasonUnassignedNoEligible, now)
	assert.Error(t, err, "lead id is required")

	_, err = NewAssignment(1, nil, ReasonCode("bogus"), now)
	assert.Error(t, err, "reason code must be one of the closed set")
}

func TestAssignment_CallerIDIsACopy(t *testing.T) {
	now := time.Now()
	callerID := uint(7)

	a, err := NewAssignment(1, &callerID, ReasonStateRoundRobin, now)
	require.NoError(t, err)

	got := a.CallerID()
	*got = 999
	assert.Equal(t, uint(7), *a.CallerID())
}

func TestAssignment_Supersede(t *testing.T) {
	now := time.Now()
	callerID := uint(7)

	a, err := NewAssignment(1, &callerID, ReasonStateRoundRobin, now)
	require.NoError(t, err)

	a.Supersede()
	assert.Equal(t, StatusReassignedSuperseded, a.Status())
}

func TestAssignment_SetID(t *testing.T) {
	now := time.Now()
	a, err := NewAssignment(1, nil, ReasonUnassignedNoEligible, now)
	require.NoError(t, err)

	require.NoError(t, a.SetID(5))
	assert.Equal(t, uint(5), a.ID())
	assert.Error(t, a.SetID(6))
}

func TestReconstructAssignment_Validation(t *testing.T) {
	now := time.Now()

	_, err := ReconstructAssignment(0, "asgn_abc123", 1, nil, now, ReasonUnassignedNoEligible, StatusUnassigned)
	assert.Error(t, err)

	_, err = ReconstructAssignment(1, "asgn_abc123", 1, nil, now, ReasonUnassignedNoEligible, Status("bogus"))
	assert.Error(t, err)
}
