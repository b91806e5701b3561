package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DetectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scenedetect_detections_total",
		Help: "Total number of detection runs, by outcome",
	}, []string{"status"})

	DetectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scenedetect_detection_duration_seconds",
		Help:    "Duration of a full detection run over one video",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})

	FramesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scenedetect_frames_processed_total",
		Help: "Total number of frames scored across all runs",
	})

	CutsDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scenedetect_cuts_detected_total",
		Help: "Total number of scene cuts detected across all runs",
	})

	ActiveDetections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scenedetect_active_detections",
		Help: "Number of detection runs currently in progress",
	})
)
