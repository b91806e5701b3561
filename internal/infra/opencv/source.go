//go:build opencv

// Package opencv implements a frame source backend on OpenCV's VideoCapture
// via gocv. Build with -tags opencv; the default build ships a stub so the
// binary has no cgo dependency.
package opencv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/awkrail/tiny-scene-detector/internal/detect"
	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
	"github.com/awkrail/tiny-scene-detector/internal/domain/port"
)

type Opener struct {
	logger *zap.Logger
}

func NewOpener(logger *zap.Logger) *Opener {
	return &Opener{logger: logger}
}

func (o *Opener) Open(ctx context.Context, path string, opts port.OpenOptions) (port.FrameSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}
	cap, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, errors.New("open capture: ensure file is a valid video")
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	if fps < entity.MaxFPSDelta {
		cap.Close()
		return nil, errors.New("open capture: frame rate is unavailable")
	}
	nativeWidth := int(cap.Get(gocv.VideoCaptureFrameWidth))
	nativeHeight := int(cap.Get(gocv.VideoCaptureFrameHeight))
	if nativeWidth <= 0 || nativeHeight <= 0 {
		cap.Close()
		return nil, fmt.Errorf("open capture: invalid frame size %dx%d", nativeWidth, nativeHeight)
	}

	factor := detect.ComputeDownscaleFactor(nativeWidth, opts.EffectiveWidth)

	o.logger.Debug("opencv source opened",
		zap.String("video", path),
		zap.Int("native_width", nativeWidth),
		zap.Int("native_height", nativeHeight),
		zap.Int("downscale_factor", factor),
		zap.Float64("fps", fps),
	)

	return &Source{
		cap:    cap,
		bgr:    gocv.NewMat(),
		rgb:    gocv.NewMat(),
		width:  nativeWidth / factor,
		height: nativeHeight / factor,
		factor: factor,
		fps:    fps,
	}, nil
}

// Source pulls frames off a VideoCapture, converting BGR mats to packed
// RGB24 and downscaling before hand-off.
type Source struct {
	cap    *gocv.VideoCapture
	bgr    gocv.Mat
	rgb    gocv.Mat
	width  int
	height int
	factor int
	fps    float64
	next   int
}

func (s *Source) FrameRate() float64 { return s.fps }

func (s *Source) FrameSize() (int, int) { return s.width, s.height }

func (s *Source) Read(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := s.cap.Read(&s.bgr); !ok || s.bgr.Empty() {
		return nil, io.EOF
	}

	gocv.CvtColor(s.bgr, &s.rgb, gocv.ColorBGRToRGB)
	if s.factor > 1 {
		gocv.Resize(s.rgb, &s.rgb, image.Pt(s.width, s.height), 0, 0, gocv.InterpolationLinear)
	}

	pix := s.rgb.ToBytes()
	if len(pix) != s.width*s.height*3 {
		return nil, fmt.Errorf("frame %d: unexpected buffer size %d, want %d",
			s.next, len(pix), s.width*s.height*3)
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

func (s *Source) Close() error {
	s.bgr.Close()
	s.rgb.Close()
	return s.cap.Close()
}
