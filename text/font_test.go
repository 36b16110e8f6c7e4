package text_test

import (
	"testing"

	"github.com/lattice-ui/sceneforge/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackMeasureEmptyContent(t *testing.T) {
	f := text.Fallback(16)
	w, h := f.Measure("", 1.2)
	assert.Equal(t, 0.0, w)
	assert.Greater(t, h, 0.0)
}

func TestFallbackMeasureMultiline(t *testing.T) {
	f := text.Fallback(16)
	w1, h1 := f.Measure("hi", 1.0)
	w2, h2 := f.Measure("hi\nhi", 1.0)
	require.Greater(t, w1, 0.0)
	assert.InDelta(t, w1, w2, 0.01)
	assert.InDelta(t, h1*2, h2, 0.01)
}

func TestFallbackAscentPositive(t *testing.T) {
	f := text.Fallback(16)
	assert.Greater(t, f.AscentPx(), 0.0)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := text.Parse([]byte("not a font"), 16)
	require.Error(t, err)
}
