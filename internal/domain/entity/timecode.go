package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxFPSDelta is the smallest frame rate considered valid. Sources reporting
// a rate below this are treated as having no usable frame rate.
const MaxFPSDelta = 1.0 / 100000

// Timecode is a position in a video, stored as an exact frame number plus the
// stream frame rate. Seconds and wall-clock representations are derived.
type Timecode struct {
	frame int
	fps   float64
}

// NewTimecode builds a Timecode at the given frame number.
func NewTimecode(frame int, fps float64) (Timecode, error) {
	if frame < 0 {
		return Timecode{}, fmt.Errorf("timecode frame number must be positive, got %d", frame)
	}
	if fps < MaxFPSDelta {
		return Timecode{}, fmt.Errorf("frame rate must be positive, got %f", fps)
	}
	return Timecode{frame: frame, fps: fps}, nil
}

func (t Timecode) Frame() int { return t.frame }

func (t Timecode) FPS() float64 { return t.fps }

// Seconds returns the position in seconds from the start of the stream.
func (t Timecode) Seconds() float64 {
	return float64(t.frame) / t.fps
}

// AddFrames returns a Timecode advanced by n frames, clamped at frame 0.
func (t Timecode) AddFrames(n int) Timecode {
	frame := t.frame + n
	if frame < 0 {
		frame = 0
	}
	return Timecode{frame: frame, fps: t.fps}
}

// String formats the position as HH:MM:SS.mmm.
func (t Timecode) String() string {
	secs := t.Seconds()
	hrs := int(secs / 3600)
	secs -= float64(hrs) * 3600
	mins := int(secs / 60)
	secs = math.Max(0, secs-float64(mins)*60)
	secs = math.Round(secs*1000) / 1000
	if int(secs) == 60 {
		secs = 0
		mins++
		if mins >= 60 {
			mins = 0
			hrs++
		}
	}
	return fmt.Sprintf("%02d:%02d:%06.3f", hrs, mins, secs)
}

// ParseTimecode parses a position expressed as an exact frame count ("9000"),
// a number of seconds ("300", "300.0", "300s"), or a wall-clock timestamp
// ("00:05:00", "00:05:00.000").
func ParseTimecode(input string, fps float64) (Timecode, error) {
	if fps < MaxFPSDelta {
		return Timecode{}, fmt.Errorf("frame rate must be positive, got %f", fps)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return Timecode{}, fmt.Errorf("empty timecode")
	}

	if frame, err := strconv.Atoi(input); err == nil {
		if frame < 0 {
			return Timecode{}, fmt.Errorf("timecode frame number must be positive, got %d", frame)
		}
		return Timecode{frame: frame, fps: fps}, nil
	}

	if strings.Contains(input, ":") {
		parts := strings.Split(input, ":")
		if len(parts) != 3 {
			return Timecode{}, fmt.Errorf("invalid timecode %q: expected HH:MM:SS[.nnn]", input)
		}
		hrs, err := strconv.Atoi(parts[0])
		if err != nil {
			return Timecode{}, fmt.Errorf("invalid timecode %q: %w", input, err)
		}
		mins, err := strconv.Atoi(parts[1])
		if err != nil {
			return Timecode{}, fmt.Errorf("invalid timecode %q: %w", input, err)
		}
		secs, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return Timecode{}, fmt.Errorf("invalid timecode %q: %w", input, err)
		}
		if hrs < 0 || mins < 0 || secs < 0 || mins >= 60 || secs >= 60 {
			return Timecode{}, fmt.Errorf("invalid timecode %q: values outside allowed range", input)
		}
		total := secs + float64(hrs)*3600 + float64(mins)*60
		return Timecode{frame: secondsToFrames(total, fps), fps: fps}, nil
	}

	input = strings.TrimSuffix(input, "s")
	secs, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return Timecode{}, fmt.Errorf("invalid timecode %q: %w", input, err)
	}
	if secs < 0 {
		return Timecode{}, fmt.Errorf("timecode seconds value must be positive, got %f", secs)
	}
	return Timecode{frame: secondsToFrames(secs, fps), fps: fps}, nil
}

func secondsToFrames(seconds, fps float64) int {
	return int(math.Round(seconds * fps))
}
