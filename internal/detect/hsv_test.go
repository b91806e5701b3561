package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, v float64
	}{
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 85, 255, 255},
		{"blue", 0, 0, 255, 170, 255, 255},
		{"white", 255, 255, 255, 0, 0, 255},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 128, 128, 128, 0, 0, 128},
		{"yellow", 255, 255, 0, 42.5, 255, 255},
		{"magenta", 255, 0, 255, 212.5, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := rgbToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, 0.5)
			assert.InDelta(t, tt.s, s, 0.5)
			assert.InDelta(t, tt.v, v, 0.5)
		})
	}
}

func TestExtractHSVPlaneLayout(t *testing.T) {
	// 2x1 frame: red pixel then blue pixel.
	f := solidFrame(0, 2, 1, 0, 0, 0)
	copy(f.Pix, []byte{255, 0, 0, 0, 0, 255})

	planes := extractHSV(f)
	assert.Len(t, planes.h, 2)
	assert.InDelta(t, 0, float64(planes.h[0]), 0.5)
	assert.InDelta(t, 170, float64(planes.h[1]), 0.5)
	assert.InDelta(t, 255, float64(planes.v[0]), 0.5)
	assert.InDelta(t, 255, float64(planes.v[1]), 0.5)
}

func TestMeanAbsDiff(t *testing.T) {
	a := []float32{0, 100, 200}
	b := []float32{50, 100, 100}
	assert.InDelta(t, 50.0, meanAbsDiff(a, b), 1e-9)
	assert.InDelta(t, 0.0, meanAbsDiff(a, a), 1e-9)
}

func TestComputeDownscaleFactor(t *testing.T) {
	tests := []struct {
		frameWidth     int
		effectiveWidth int
		want           int
	}{
		{100, 256, 1},
		{255, 256, 1},
		{256, 256, 1},
		{512, 256, 2},
		{640, 256, 2},
		{1920, 256, 7},
		{1920, 0, 7},
		{3840, 256, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeDownscaleFactor(tt.frameWidth, tt.effectiveWidth),
			"width %d effective %d", tt.frameWidth, tt.effectiveWidth)
	}
}
