package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	output := []byte(`width=1920
height=1080
r_frame_rate=30000/1001
avg_frame_rate=30000/1001
nb_frames=2876
`)
	info, err := parseProbeOutput(output)
	require.NoError(t, err)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.InDelta(t, 29.97, info.FrameRate, 0.01)
	assert.Equal(t, 2876, info.FrameCount)
}

func TestParseProbeOutputUnknownFrameCount(t *testing.T) {
	output := []byte(`width=320
height=240
r_frame_rate=25/1
avg_frame_rate=0/0
nb_frames=N/A
`)
	info, err := parseProbeOutput(output)
	require.NoError(t, err)
	assert.Equal(t, 0, info.FrameCount)
	assert.InDelta(t, 25.0, info.FrameRate, 1e-9)
}

func TestParseProbeOutputErrors(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"empty", ""},
		{"missing height", "width=320\n"},
		{"zero size", "width=0\nheight=0\nr_frame_rate=25/1\n"},
		{"no frame rate", "width=320\nheight=240\nr_frame_rate=0/0\navg_frame_rate=0/0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProbeOutput([]byte(tt.output))
			assert.Error(t, err)
		})
	}
}

func TestParseRate(t *testing.T) {
	assert.InDelta(t, 30.0, parseRate("30/1"), 1e-9)
	assert.InDelta(t, 29.97, parseRate("30000/1001"), 0.01)
	assert.InDelta(t, 24.0, parseRate("24"), 1e-9)
	assert.Zero(t, parseRate("0/0"))
	assert.Zero(t, parseRate("N/A"))
	assert.Zero(t, parseRate(""))
}
