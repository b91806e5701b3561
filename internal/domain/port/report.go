package port

import (
	"io"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// ReportWriter renders a finished detection report to a destination stream.
type ReportWriter interface {
	Write(w io.Writer, report *entity.DetectionReport) error
}
