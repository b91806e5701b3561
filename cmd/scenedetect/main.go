package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/awkrail/tiny-scene-detector/internal/detect"
	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
	"github.com/awkrail/tiny-scene-detector/internal/domain/port"
	"github.com/awkrail/tiny-scene-detector/internal/infra/config"
	"github.com/awkrail/tiny-scene-detector/internal/infra/ffmpeg"
	"github.com/awkrail/tiny-scene-detector/internal/infra/metrics"
	"github.com/awkrail/tiny-scene-detector/internal/infra/opencv"
	"github.com/awkrail/tiny-scene-detector/internal/infra/report"
	"github.com/awkrail/tiny-scene-detector/internal/usecase"
	"github.com/awkrail/tiny-scene-detector/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	threshold := flag.Float64("threshold", cfg.Threshold, "content score above which a cut is declared (0-255 scale)")
	minSceneLen := flag.String("min-scene-len", cfg.MinSceneLen, `minimum scene length as frames ("15") or seconds ("0.5s")`)
	backend := flag.String("backend", cfg.SourceBackend, "frame source backend: ffmpeg or opencv")
	format := flag.String("format", cfg.OutputFormat, "report format: console, csv or json")
	output := flag.String("output", "", "output file (single input) or directory (multiple inputs); default stdout")
	workers := flag.Int("workers", cfg.WorkerCount, "worker count for batch runs")
	effectiveWidth := flag.Int("effective-width", cfg.EffectiveWidth, "width frames are downscaled towards before scoring")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: scenedetect [flags] <video> [video ...]")
		flag.PrintDefaults()
		return 2
	}

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	opener, err := newOpener(*backend, cfg, log)
	fatalOnErr(err, "select backend")

	writer, ext, err := newWriter(*format)
	fatalOnErr(err, "select format")

	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		metricsSrv = metrics.StartServer(cfg.MetricsPort, log)
	}

	uc := usecase.NewDetectScenesUseCase(opener, log, usecase.DetectScenesConfig{
		Threshold:   *threshold,
		MinSceneLen: *minSceneLen,
		Weights: detect.Weights{
			Hue:        cfg.WeightHue,
			Saturation: cfg.WeightSaturation,
			Value:      cfg.WeightValue,
		},
		EffectiveWidth: *effectiveWidth,
	})

	exitCode := 0
	if len(inputs) == 1 {
		rep, err := uc.Execute(ctx, inputs[0])
		if err != nil {
			log.Error("detection failed", zap.String("video", inputs[0]), zap.Error(err))
			exitCode = 1
		} else if err := writeReport(writer, *output, ext, rep, false); err != nil {
			log.Error("write report failed", zap.Error(err))
			exitCode = 1
		}
	} else {
		for _, res := range uc.ExecuteBatch(ctx, inputs, *workers) {
			if res.Err != nil {
				exitCode = 1
				continue
			}
			if err := writeReport(writer, *output, ext, res.Report, true); err != nil {
				log.Error("write report failed", zap.String("video", res.Path), zap.Error(err))
				exitCode = 1
			}
		}
	}

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = metricsSrv.Shutdown(shutdownCtx)
		shutdownCancel()
	}

	return exitCode
}

func newOpener(backend string, cfg *config.Config, log *zap.Logger) (port.SourceOpener, error) {
	switch backend {
	case "ffmpeg":
		return ffmpeg.NewOpener(cfg.FFmpegPath, cfg.FFprobePath, log), nil
	case "opencv":
		return opencv.NewOpener(log), nil
	default:
		return nil, fmt.Errorf("unknown source backend %q", backend)
	}
}

func newWriter(format string) (port.ReportWriter, string, error) {
	switch format {
	case "console":
		return report.NewConsoleWriter(), "txt", nil
	case "csv":
		return report.NewCSVWriter(), "csv", nil
	case "json":
		return report.NewJSONWriter(), "json", nil
	default:
		return nil, "", fmt.Errorf("unknown report format %q", format)
	}
}

// writeReport sends a report to stdout, a file, or (for batch runs) a
// per-video file inside the output directory.
func writeReport(w port.ReportWriter, output, ext string, rep *entity.DetectionReport, batch bool) error {
	if output == "" {
		return w.Write(os.Stdout, rep)
	}
	path := output
	if batch {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(rep.VideoPath), filepath.Ext(rep.VideoPath))
		path = filepath.Join(output, fmt.Sprintf("%s-scenes.%s", base, ext))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return w.Write(f, rep)
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
