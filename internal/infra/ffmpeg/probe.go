package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// streamInfo is the subset of ffprobe output the source needs to start
// decoding.
type streamInfo struct {
	Width      int
	Height     int
	FrameRate  float64
	FrameCount int // 0 when the container does not declare it
}

func (o *Opener) probe(ctx context.Context, videoPath string) (*streamInfo, error) {
	cmd := exec.CommandContext(ctx, o.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames",
		"-of", "default=noprint_wrappers=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbeOutput(output)
}

// parseProbeOutput parses ffprobe key=value lines into streamInfo. avg frame
// rate wins over the raw rate when both are usable; a stream with neither has
// no usable frame rate and cannot be timed.
func parseProbeOutput(output []byte) (*streamInfo, error) {
	values := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[key] = value
	}

	info := &streamInfo{}
	var err error
	if info.Width, err = strconv.Atoi(values["width"]); err != nil {
		return nil, fmt.Errorf("probe: invalid width %q", values["width"])
	}
	if info.Height, err = strconv.Atoi(values["height"]); err != nil {
		return nil, fmt.Errorf("probe: invalid height %q", values["height"])
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("probe: invalid frame size %dx%d", info.Width, info.Height)
	}

	info.FrameRate = parseRate(values["avg_frame_rate"])
	if info.FrameRate < entity.MaxFPSDelta {
		info.FrameRate = parseRate(values["r_frame_rate"])
	}
	if info.FrameRate < entity.MaxFPSDelta {
		return nil, fmt.Errorf("probe: frame rate is unavailable")
	}

	// nb_frames is frequently "N/A"; total frames is then established by
	// exhaustion during decode.
	if n, err := strconv.Atoi(values["nb_frames"]); err == nil && n > 0 {
		info.FrameCount = n
	}
	return info, nil
}

// parseRate parses an ffprobe rational such as "30000/1001" or a plain
// number. Unparseable or zero-denominator input yields 0.
func parseRate(s string) float64 {
	if s == "" {
		return 0
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
