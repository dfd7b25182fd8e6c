package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead_Validation(t *testing.T) {
	now := time.Now()

	t.Run("requires phone", func(t *testing.T) {
		_, err := NewLead("Asha", "", now, "webhook", "Pune", "maharashtra", nil)
		assert.Error(t, err)
	})

	t.Run("requires source timestamp", func(t *testing.T) {
		_, err := NewLead("Asha", "+911234", time.Time{}, "webhook", "Pune", "maharashtra", nil)
		assert.Error(t, err)
	})

	t.Run("nil metadata becomes empty map", func(t *testing.T) {
		l, err := NewLead("Asha", "+911234", now, "webhook", "Pune", "maharashtra", nil)
		require.NoError(t, err)
		assert.NotNil(t, l.Metadata())
		assert.Empty(t, l.Metadata())
	})
}

func TestLead_HasState(t *testing.T) {
	now := time.Now()

	withState, err := NewLead("Asha", "+911234", now, "", "", "maharashtra", nil)
	require.NoError(t, err)
	assert.True(t, withState.HasState())

	withoutState, err := NewLead("Asha", "+915678", now, "", "", "", nil)
	require.NoError(t, err)
	assert.False(t, withoutState.HasState())
}

func TestLead_MetadataIsACopy(t *testing.T) {
	now := time.Now()
	l, err := NewLead("Asha", "+911234", now, "", "", "", map[string]interface{}{"campaign": "diwali"})
	require.NoError(t, err)

	metadata := l.Metadata()
	metadata["campaign"] = "mutated"
	assert.Equal(t, "diwali", l.Metadata()["campaign"])
}

func TestLead_SetID(t *testing.T) {
	now := time.Now()
	l, err := NewLead("Asha", "+911234", now, "", "", "", nil)
	require.NoError(t, err)

	require.NoError(t, l.SetID(42))
	assert.Equal(t, uint(42), l.ID())

	err = l.SetID(43)
	assert.Error(t, err)

	err = l.SetID(0)
	assert.Error(t, err)
}

func TestReconstructLead_RejectsZeroID(t *testing.T) {
	_, err := ReconstructLead(0, "lead_abc123", "Asha", "+911234", time.Now(), "", "", "", nil, time.Now())
	assert.Error(t, err)
}
