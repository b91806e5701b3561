package entity

import (
	"time"

	"github.com/google/uuid"
)

// DetectionReport summarizes one detection run over a single video.
type DetectionReport struct {
	RunID          uuid.UUID `json:"run_id"`
	VideoPath      string    `json:"video_path"`
	FrameRate      float64   `json:"frame_rate"`
	TotalFrames    int       `json:"total_frames"`
	CutCount       int       `json:"cut_count"`
	Scenes         []Scene   `json:"scenes"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
}

func NewDetectionReport(videoPath string) *DetectionReport {
	return &DetectionReport{
		RunID:     uuid.New(),
		VideoPath: videoPath,
		StartedAt: time.Now().UTC(),
	}
}

func (r *DetectionReport) Complete(frameRate float64, totalFrames, cutCount int, scenes []Scene) {
	now := time.Now().UTC()
	r.FrameRate = frameRate
	r.TotalFrames = totalFrames
	r.CutCount = cutCount
	r.Scenes = scenes
	r.CompletedAt = now
	r.ElapsedSeconds = now.Sub(r.StartedAt).Seconds()
}
