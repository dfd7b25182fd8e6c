package caller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaller_Validation(t *testing.T) {
	tests := []struct {
		name       string
		callerName string
		dailyLimit int
		wantErr    bool
	}{
		{"valid caller", "Asha", 10, false},
		{"valid unlimited caller", "Asha", 0, false},
		{"blank name rejected", "", 10, true},
		{"negative limit rejected", "Asha", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCaller(tt.callerName, "sales_rep", []string{"en"}, tt.dailyLimit, []string{"karnataka"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusActive, c.Status())
			assert.True(t, c.IsActive())
		})
	}
}

func TestCaller_Uncapped(t *testing.T) {
	tests := []struct {
		name       string
		dailyLimit int
		count      int
		expected   bool
	}{
		{"unlimited caller always uncapped", 0, 500, true},
		{"below limit", 5, 4, true},
		{"at limit", 5, 5, false},
		{"over limit", 5, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCaller("Asha", "", nil, tt.dailyLimit, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.Uncapped(tt.count))
		})
	}
}

func TestCaller_HasState(t *testing.T) {
	c, err := NewCaller("Asha", "", nil, 10, []string{"karnataka", "maharashtra"})
	require.NoError(t, err)

	assert.True(t, c.HasState("karnataka"))
	assert.True(t, c.HasState("maharashtra"))
	assert.False(t, c.HasState("kerala"))
}

func TestCaller_PauseAndActivate(t *testing.T) {
	c, err := NewCaller("Asha", "", nil, 10, nil)
	require.NoError(t, err)
	require.True(t, c.IsActive())

	c.Pause()
	assert.Equal(t, StatusPaused, c.Status())
	assert.False(t, c.IsActive())

	c.Activate()
	assert.Equal(t, StatusActive, c.Status())
	assert.True(t, c.IsActive())
}

func TestCaller_StatesAndLanguagesAreCopies(t *testing.T) {
	c, err := NewCaller("Asha", "", []string{"en"}, 10, []string{"karnataka"})
	require.NoError(t, err)

	states := c.States()
	states[0] = "mutated"
	assert.True(t, c.HasState("karnataka"))

	languages := c.Languages()
	languages[0] = "mutated"
	assert.Equal(t, []string{"en"}, c.Languages())
}

func TestReconstructCaller_RejectsInvalidStatus(t *testing.T) {
	_, err := ReconstructCaller(1, "Asha", "", nil, 10, nil, Status("bogus"), time.Now(), time.Now())
	assert.Error(t, err)
}

func TestReconstructCaller_RejectsZeroID(t *testing.T) {
	_, err := ReconstructCaller(0, "Asha", "", nil, 10, nil, StatusActive, time.Now(), time.Now())
	assert.Error(t, err)
}
