package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonCode_IsValid(t *testing.T) {
	tests := []struct {
		reason ReasonCode
		valid  bool
	}{
		{ReasonStateRoundRobin, true},
		{ReasonGlobalRoundRobin, true},
		{ReasonManualReassign, true},
		{ReasonUnassignedCapReached, true},
		{ReasonUnassignedNoEligible, true},
		{ReasonCode("something_else"), false},
		{ReasonCode(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.reason.IsValid(), tt.reason)
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusAssigned, true},
		{StatusUnassigned, true},
		{StatusReassignedSuperseded, true},
		{Status("bogus"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.status.IsValid(), tt.status)
	}
}

func TestOutcome_IsAssigned(t *testing.T) {
	assigned := Outcome{Status: StatusAssigned}
	assert.True(t, assigned.IsAssigned())

	unassigned := Outcome{Status: StatusUnassigned}
	assert.False(t, unassigned.IsAssigned())
}
