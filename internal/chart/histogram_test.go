package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaddash/internal/metrics"
)

func TestHistogramPNG(t *testing.T) {
	bins := metrics.Histogram([]float64{12, 40, 41, 77, 82, 90, 99}, metrics.DefaultBins)

	out, err := HistogramPNG(bins, DefaultOptions())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestHistogramPNGNoData(t *testing.T) {
	_, err := HistogramPNG(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoData)
}
