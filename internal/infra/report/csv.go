// Package report renders finished detection reports as CSV, JSON or
// human-readable console output.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

var csvHeader = []string{
	"scene_number",
	"start_frame", "start_timecode", "start_seconds",
	"end_frame", "end_timecode", "end_seconds",
	"length_frames", "length_seconds",
}

type CSVWriter struct{}

func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

func (*CSVWriter) Write(w io.Writer, report *entity.DetectionReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range report.Scenes {
		row := []string{
			strconv.Itoa(s.Index + 1),
			strconv.Itoa(s.StartFrame),
			s.StartTimecode,
			strconv.FormatFloat(s.StartSeconds, 'f', 3, 64),
			strconv.Itoa(s.EndFrame),
			s.EndTimecode,
			strconv.FormatFloat(s.EndSeconds, 'f', 3, 64),
			strconv.Itoa(s.LengthFrames()),
			strconv.FormatFloat(s.DurationSeconds, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
