package entity

// Scene is a contiguous run of frames between two cuts, as the half-open
// frame interval [StartFrame, EndFrame).
type Scene struct {
	Index           int     `json:"index"`
	StartFrame      int     `json:"start_frame"`
	EndFrame        int     `json:"end_frame"`
	StartSeconds    float64 `json:"start_seconds"`
	EndSeconds      float64 `json:"end_seconds"`
	StartTimecode   string  `json:"start_timecode"`
	EndTimecode     string  `json:"end_timecode"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// LengthFrames returns the scene length in frames.
func (s Scene) LengthFrames() int {
	return s.EndFrame - s.StartFrame
}
