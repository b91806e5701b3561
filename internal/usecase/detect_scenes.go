package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/awkrail/tiny-scene-detector/internal/detect"
	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
	"github.com/awkrail/tiny-scene-detector/internal/domain/port"
	"github.com/awkrail/tiny-scene-detector/internal/infra/metrics"
)

// maxFrameQueueLength bounds the decode-ahead between the decoder goroutine
// and the detector loop.
const maxFrameQueueLength = 4

type DetectScenesUseCase struct {
	opener         port.SourceOpener
	logger         *zap.Logger
	threshold      float64
	minSceneLen    string
	weights        detect.Weights
	effectiveWidth int
}

type DetectScenesConfig struct {
	Threshold float64
	// MinSceneLen is the minimum scene length as a frame count ("15"),
	// seconds ("0.5s") or timestamp; it is resolved against each video's
	// frame rate.
	MinSceneLen    string
	Weights        detect.Weights
	EffectiveWidth int
}

func NewDetectScenesUseCase(opener port.SourceOpener, logger *zap.Logger, cfg DetectScenesConfig) *DetectScenesUseCase {
	return &DetectScenesUseCase{
		opener:         opener,
		logger:         logger,
		threshold:      cfg.Threshold,
		minSceneLen:    cfg.MinSceneLen,
		weights:        cfg.Weights,
		effectiveWidth: cfg.EffectiveWidth,
	}
}

// Execute runs one detection pass over a single video: decode goroutine
// feeding a bounded frame queue, detector and assembler consuming in frame
// order. One ContentDetector instance lives exactly as long as the run.
func (uc *DetectScenesUseCase) Execute(ctx context.Context, videoPath string) (*entity.DetectionReport, error) {
	report, err := uc.execute(ctx, videoPath)
	if err != nil {
		metrics.DetectionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.DetectionsTotal.WithLabelValues("completed").Inc()
	metrics.DetectionDuration.Observe(report.ElapsedSeconds)
	return report, nil
}

func (uc *DetectScenesUseCase) execute(ctx context.Context, videoPath string) (*entity.DetectionReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	report := entity.NewDetectionReport(videoPath)
	log := uc.logger.With(
		zap.String("run_id", report.RunID.String()),
		zap.String("video", videoPath),
	)

	source, err := uc.opener.Open(ctx, videoPath, port.OpenOptions{EffectiveWidth: uc.effectiveWidth})
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	defer source.Close()

	fps := source.FrameRate()
	width, height := source.FrameSize()

	minSceneLen, err := uc.resolveMinSceneLen(fps)
	if err != nil {
		return nil, err
	}

	detector, err := detect.NewContentDetector(detect.Options{
		Threshold:   uc.threshold,
		MinSceneLen: minSceneLen,
		Weights:     uc.weights,
	})
	if err != nil {
		return nil, fmt.Errorf("configure detector: %w", err)
	}
	assembler, err := detect.NewSceneAssembler(fps)
	if err != nil {
		return nil, fmt.Errorf("configure assembler: %w", err)
	}

	log.Info("detection started",
		zap.Float64("fps", fps),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("threshold", uc.threshold),
		zap.Int("min_scene_len", minSceneLen),
	)

	metrics.ActiveDetections.Inc()
	defer metrics.ActiveDetections.Dec()

	frames := make(chan *entity.Frame, maxFrameQueueLength)
	decodeErr := make(chan error, 1)
	go func() {
		defer close(frames)
		for {
			f, err := source.Read(ctx)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					decodeErr <- err
				}
				return
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	totalFrames := 0
	cutCount := 0
	for f := range frames {
		evt, err := detector.Process(f)
		if err != nil {
			return nil, fmt.Errorf("process frame %d: %w", f.Index, err)
		}
		totalFrames++
		metrics.FramesProcessedTotal.Inc()
		if evt != nil {
			cutCount++
			metrics.CutsDetectedTotal.Inc()
			assembler.AddCut(evt.FrameIndex)
			log.Debug("cut detected",
				zap.Int("frame", evt.FrameIndex),
				zap.Float64("score", evt.Score),
			)
		}
	}

	select {
	case err := <-decodeErr:
		return nil, fmt.Errorf("decode: %w", err)
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scenes := assembler.Finalize(totalFrames)
	report.Complete(fps, totalFrames, cutCount, scenes)

	log.Info("detection completed",
		zap.Int("frames", totalFrames),
		zap.Int("cuts", cutCount),
		zap.Int("scenes", len(scenes)),
		zap.Float64("elapsed_seconds", report.ElapsedSeconds),
	)
	return report, nil
}

func (uc *DetectScenesUseCase) resolveMinSceneLen(fps float64) (int, error) {
	if uc.minSceneLen == "" {
		return detect.DefaultMinSceneLen, nil
	}
	tc, err := entity.ParseTimecode(uc.minSceneLen, fps)
	if err != nil {
		return 0, fmt.Errorf("parse min scene length: %w", err)
	}
	return tc.Frame(), nil
}
