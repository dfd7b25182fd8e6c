package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateKey_Normalizes(t *testing.T) {
	tests := []struct {
		state string
		want  Key
	}{
		{"Maharashtra", Key("state:maharashtra")},
		{"maharashtra ", Key("state:maharashtra")},
		{"  Karnataka  ", Key("state:karnataka")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StateKey(tt.state))
	}
}

func TestStateKey_DistinctStatesShareNoPointer(t *testing.T) {
	assert.NotEqual(t, StateKey("karnataka"), StateKey("maharashtra"))
}

func TestGlobalKey_IsStable(t *testing.T) {
	assert.Equal(t, Key("global"), GlobalKey())
	assert.Equal(t, GlobalKey(), GlobalKey())
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "karnataka", NormalizeState(" Karnataka "))
}
