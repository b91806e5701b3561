package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimecode(t *testing.T) {
	tc, err := NewTimecode(90, 30.0)
	require.NoError(t, err)
	assert.Equal(t, 90, tc.Frame())
	assert.InDelta(t, 3.0, tc.Seconds(), 1e-9)

	_, err = NewTimecode(-1, 30.0)
	assert.Error(t, err)

	_, err = NewTimecode(0, 0)
	assert.Error(t, err)
}

func TestTimecodeString(t *testing.T) {
	tests := []struct {
		frame int
		fps   float64
		want  string
	}{
		{0, 30.0, "00:00:00.000"},
		{30, 30.0, "00:00:01.000"},
		{45, 30.0, "00:00:01.500"},
		{1800, 30.0, "00:01:00.000"},
		{108000, 30.0, "01:00:00.000"},
		{1, 24.0, "00:00:00.042"},
	}
	for _, tt := range tests {
		tc, err := NewTimecode(tt.frame, tt.fps)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tc.String(), "frame %d @ %.1f fps", tt.frame, tt.fps)
	}
}

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		input string
		fps   float64
		frame int
	}{
		{"9000", 30.0, 9000},
		{"300", 30.0, 300},
		{"300s", 30.0, 9000},
		{"300.0", 30.0, 9000},
		{"00:05:00", 30.0, 9000},
		{"00:05:00.000", 30.0, 9000},
		{"00:00:01.500", 30.0, 45},
		{" 15 ", 30.0, 15},
	}
	for _, tt := range tests {
		tc, err := ParseTimecode(tt.input, tt.fps)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.frame, tc.Frame(), "input %q", tt.input)
	}
}

func TestParseTimecodeInvalid(t *testing.T) {
	inputs := []string{"", "abc", "-5", "-5s", "00:61:00", "00:00:75", "1:2", "a:b:c"}
	for _, input := range inputs {
		_, err := ParseTimecode(input, 30.0)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTimecodeAddFrames(t *testing.T) {
	tc, err := NewTimecode(10, 30.0)
	require.NoError(t, err)
	assert.Equal(t, 25, tc.AddFrames(15).Frame())
	assert.Equal(t, 0, tc.AddFrames(-20).Frame())
}
