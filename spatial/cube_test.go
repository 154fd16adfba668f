package spatial

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aweris/svo"
)

func TestCubeSubRegion(t *testing.T) {
	c := NewCube(r3.Vector{}, 8)

	tests := []struct {
		p      svo.OctantPlacement
		center r3.Vector
	}{
		{svo.LowerBottomLeft, r3.Vector{X: -4, Y: -4, Z: -4}},
		{svo.LowerTopLeft, r3.Vector{X: -4, Y: -4, Z: 4}},
		{svo.UpperBottomLeft, r3.Vector{X: -4, Y: 4, Z: -4}},
		{svo.LowerTopRight, r3.Vector{X: 4, Y: -4, Z: 4}},
		{svo.UpperTopRight, r3.Vector{X: 4, Y: 4, Z: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			sub := c.SubRegion(tt.p)
			require.Equal(t, tt.center, sub.Center)
			require.Equal(t, 4.0, sub.HalfExtent)
			require.Equal(t, tt.p, c.Octant(sub.Center))
			require.Equal(t, c.Corner(tt.p), sub.Corner(tt.p))
		})
	}
}

func TestSubRegions(t *testing.T) {
	c := NewCube(r3.Vector{X: 1, Y: 2, Z: 3}, 2)
	subs := SubRegions(c)
	for i, p := range svo.OctantsOrdered {
		require.Equal(t, c.SubRegion(p), subs[i])
		require.True(t, c.Contains(subs[i].Center))
	}
}

func TestCubeBounds(t *testing.T) {
	c := NewCube(r3.Vector{X: 1, Y: 1, Z: 1}, 1)
	assert.Equal(t, r3.Vector{}, c.Min())
	assert.Equal(t, r3.Vector{X: 2, Y: 2, Z: 2}, c.Max())

	assert.True(t, c.Contains(r3.Vector{}))
	assert.True(t, c.Contains(r3.Vector{X: 2, Y: 0.5, Z: 1}))
	assert.False(t, c.Contains(r3.Vector{X: 2.1, Y: 1, Z: 1}))
	assert.False(t, c.Contains(r3.Vector{X: 1, Y: -0.1, Z: 1}))

	assert.Equal(t, svo.UpperTopRight, c.Octant(c.Center))
	assert.Equal(t, svo.LowerBottomLeft, c.Octant(r3.Vector{}))
	assert.Equal(t, "Cube(center:(1, 1, 1) half:1)", c.String())
}
