package geom_test

import (
	"testing"

	"github.com/lattice-ui/sceneforge/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorHexForms(t *testing.T) {
	c3, err := geom.ParseColor("#0f0")
	require.NoError(t, err)
	assert.Equal(t, geom.Color{R: 0, G: 255, B: 0, A: 255}, c3)

	c6, err := geom.ParseColor("#336699")
	require.NoError(t, err)
	assert.Equal(t, geom.Color{R: 0x33, G: 0x66, B: 0x99, A: 255}, c6)

	c8, err := geom.ParseColor("#33669980")
	require.NoError(t, err)
	assert.Equal(t, geom.Color{R: 0x33, G: 0x66, B: 0x99, A: 0x80}, c8)
}

func TestParseColorNamed(t *testing.T) {
	c, err := geom.ParseColor("LightGray")
	require.NoError(t, err)
	assert.Equal(t, geom.Color{R: 211, G: 211, B: 211, A: 255}, c)
}

func TestParseColorRejectsGarbage(t *testing.T) {
	_, err := geom.ParseColor("notacolor")
	require.Error(t, err)
	_, err = geom.ParseColor("#12")
	require.Error(t, err)
	_, err = geom.ParseColor("")
	require.Error(t, err)
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#AABBCC", "#112233"} {
		c, err := geom.ParseColor(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, c.ToHex())
	}
}

func TestOverOpaqueBackgroundPreservesAlpha(t *testing.T) {
	bg := geom.Color{R: 10, G: 20, B: 30, A: 255}
	fg := geom.Color{R: 200, G: 100, B: 50, A: 128}
	out := fg.Over(bg)
	assert.Equal(t, uint8(255), out.A)
}

func TestOverFullyTransparentForeground(t *testing.T) {
	bg := geom.Color{R: 10, G: 20, B: 30, A: 255}
	fg := geom.Color{R: 200, G: 100, B: 50, A: 0}
	out := fg.Over(bg)
	assert.Equal(t, bg, out)
}
