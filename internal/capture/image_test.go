package capture

import (
	"encoding/base64"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{name: "downscale wide", srcW: 300, srcH: 150, maxW: 150, maxH: 150, wantW: 150, wantH: 75},
		{name: "downscale tall", srcW: 100, srcH: 400, maxW: 150, maxH: 150, wantW: 38, wantH: 150},
		{name: "already fits", srcW: 100, srcH: 100, maxW: 150, maxH: 150, wantW: 100, wantH: 100},
		{name: "probe size", srcW: 1920, srcH: 1080, maxW: 1, maxH: 1, wantW: 1, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.srcW, tt.srcH))
			got := ScaleToFit(src, tt.maxW, tt.maxH)

			b := got.Bounds()
			assert.Equal(t, tt.wantW, b.Dx())
			assert.Equal(t, tt.wantH, b.Dy())
		})
	}
}

func TestScaleToFitNil(t *testing.T) {
	assert.Nil(t, ScaleToFit(nil, 150, 150))
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(raw[:4]))
}

func TestDataURINil(t *testing.T) {
	uri, err := DataURI(nil)
	require.NoError(t, err)
	assert.Empty(t, uri)
}
