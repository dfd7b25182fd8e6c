package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	callerDomain "github.com/orris-inc/leadrouter/internal/domain/caller"
)

func newTestCaller(t *testing.T, id uint) *callerDomain.Caller {
	t.Helper()

	now := time.Now()
	c, err := callerDomain.ReconstructCaller(id, "caller", "", nil, 0, nil, callerDomain.StatusActive, now, now)
	require.NoError(t, err)
	return c
}

func ids(callers []*callerDomain.Caller) []uint {
	out := make([]uint, len(callers))
	for i, c := range callers {
		out[i] = c.ID()
	}
	return out
}

func TestRotateAfter(t *testing.T) {
	c1 := newTestCaller(t, 1)
	c2 := newTestCaller(t, 2)
	c3 := newTestCaller(t, 3)
	candidates := []*callerDomain.Caller{c1, c2, c3}

	t.Run("nil last leaves order unrotated", func(t *testing.T) {
		assert.Equal(t, []uint{1, 2, 3}, ids(rotateAfter(candidates, nil)))
	})

	t.Run("rotates so element after last is first", func(t *testing.T) {
		last := uint(1)
		assert.Equal(t, []uint{2, 3, 1}, ids(rotateAfter(candidates, &last)))
	})

	t.Run("last at tail wraps to head", func(t *testing.T) {
		last := uint(3)
		assert.Equal(t, []uint{1, 2, 3}, ids(rotateAfter(candidates, &last)))
	})

	t.Run("foreign last degrades to unrotated order", func(t *testing.T) {
		last := uint(999)
		assert.Equal(t, []uint{1, 2, 3}, ids(rotateAfter(candidates, &last)))
	})
}
