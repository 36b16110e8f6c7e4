package geom_test

import (
	"testing"

	"github.com/lattice-ui/sceneforge/geom"
	"github.com/stretchr/testify/assert"
)

func TestNewSizeClampsNegative(t *testing.T) {
	s := geom.NewSize(-5, 10)
	assert.Equal(t, 0.0, s.W)
	assert.Equal(t, 10.0, s.H)
}

func TestRectRound(t *testing.T) {
	r := geom.NewRect(1.4, 1.5, 10.49, 10.5)
	rr := r.Round()
	assert.Equal(t, 1.0, rr.Origin.X)
	assert.Equal(t, 2.0, rr.Origin.Y)
	assert.Equal(t, 10.0, rr.Size.W)
	assert.Equal(t, 11.0, rr.Size.H)
}

func TestRectDerivedEdges(t *testing.T) {
	r := geom.NewRect(10, 20, 30, 40)
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 25.0, r.CenterX())
	assert.Equal(t, 40.0, r.CenterY())
}
