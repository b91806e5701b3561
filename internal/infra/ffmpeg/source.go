// Package ffmpeg implements the default frame source backend by piping
// packed RGB24 frames out of an ffmpeg child process.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/awkrail/tiny-scene-detector/internal/detect"
	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
	"github.com/awkrail/tiny-scene-detector/internal/domain/port"
)

type Opener struct {
	ffmpegPath  string
	ffprobePath string
	logger      *zap.Logger
}

func NewOpener(ffmpegPath, ffprobePath string, logger *zap.Logger) *Opener {
	return &Opener{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath, logger: logger}
}

// Open probes the video, then starts an ffmpeg child streaming rawvideo
// RGB24 frames over stdout. The downscale factor derived from the native
// width is applied with a scale filter so frames arrive pre-shrunk.
func (o *Opener) Open(ctx context.Context, path string, opts port.OpenOptions) (port.FrameSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}
	info, err := o.probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe video: %w", err)
	}

	factor := detect.ComputeDownscaleFactor(info.Width, opts.EffectiveWidth)
	width := info.Width / factor
	height := info.Height / factor

	args := []string{
		"-nostdin",
		"-v", "error",
		"-i", path,
	}
	if factor > 1 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", width, height))
	}
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)

	cmd := exec.CommandContext(ctx, o.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	o.logger.Debug("ffmpeg source opened",
		zap.String("video", path),
		zap.Int("native_width", info.Width),
		zap.Int("native_height", info.Height),
		zap.Int("downscale_factor", factor),
		zap.Float64("fps", info.FrameRate),
		zap.Int("declared_frames", info.FrameCount),
	)

	return &Source{
		cmd:    cmd,
		stdout: stdout,
		stderr: &stderr,
		width:  width,
		height: height,
		fps:    info.FrameRate,
	}, nil
}

// Source reads frames off a running ffmpeg child. Forward-only; reopening
// requires a new Open call.
type Source struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	width  int
	height int
	fps    float64
	next   int
	waited bool
}

func (s *Source) FrameRate() float64 { return s.fps }

func (s *Source) FrameSize() (int, int) { return s.width, s.height }

// Read returns the next frame, or io.EOF once the child has drained and
// exited cleanly. A child that exits non-zero surfaces its stderr.
func (s *Source) Read(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pix := make([]byte, s.width*s.height*3)
	if _, err := io.ReadFull(s.stdout, pix); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, s.finish()
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated frame %d: %w", s.next, err)
		}
		return nil, fmt.Errorf("read frame %d: %w", s.next, err)
	}

	pos, err := entity.NewTimecode(s.next, s.fps)
	if err != nil {
		return nil, err
	}
	f := &entity.Frame{
		Index:    s.next,
		Width:    s.width,
		Height:   s.height,
		Pix:      pix,
		Position: pos,
	}
	s.next++
	return f, nil
}

func (s *Source) finish() error {
	if !s.waited {
		s.waited = true
		if err := s.cmd.Wait(); err != nil {
			return fmt.Errorf("ffmpeg error: %w, output: %s", err, s.stderr.String())
		}
	}
	return io.EOF
}

func (s *Source) Close() error {
	s.stdout.Close()
	if !s.waited {
		s.waited = true
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		_ = s.cmd.Wait()
	}
	return nil
}
