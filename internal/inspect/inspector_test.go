package inspect

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyles_Diff(t *testing.T) {
	before := Styles{"color": "black", "outline": "none", "opacity": "1"}
	after := Styles{"color": "black", "outline": "2px solid blue", "opacity": "1", "box-shadow": "0 0 2px"}

	changed := before.Diff(after)

	assert.Equal(t, Styles{
		"outline":    "2px solid blue",
		"box-shadow": "0 0 2px",
	}, changed)
}

func TestStyles_DiffEmpty(t *testing.T) {
	s := Styles{"color": "black"}
	assert.Empty(t, s.Diff(Styles{"color": "black"}))
	assert.Empty(t, Styles(nil).Diff(nil))
}

func TestSimulation_Changed(t *testing.T) {
	sim := Simulation{
		Before: Styles{"opacity": "1"},
		After:  Styles{"opacity": "0.8"},
	}
	assert.Equal(t, Styles{"opacity": "0.8"}, sim.Changed())
}

func TestInspectError_Predicates(t *testing.T) {
	nf := NewNodeNotFound("btn-1")
	assert.True(t, IsNodeNotFound(nf))
	assert.False(t, IsSimulationFailed(nf))
	assert.Contains(t, nf.Error(), "NODE_NOT_FOUND")
	assert.Contains(t, nf.Error(), "btn-1")

	cause := errors.New("clone detached")
	sf := NewSimulationFailed("btn-2", cause)
	assert.True(t, IsSimulationFailed(sf))
	assert.ErrorIs(t, sf, cause)

	// Wrapped errors still match.
	wrapped := fmt.Errorf("checking focus: %w", sf)
	assert.True(t, IsSimulationFailed(wrapped))
	assert.False(t, IsNodeNotFound(wrapped))
}

func TestWallClock_Start(t *testing.T) {
	stop := WallClock{}.Start()
	elapsed := stop()
	require.GreaterOrEqual(t, elapsed, time.Duration(0))
}
