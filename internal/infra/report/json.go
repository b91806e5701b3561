package report

import (
	"encoding/json"
	"io"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

type JSONWriter struct{}

func NewJSONWriter() *JSONWriter { return &JSONWriter{} }

func (*JSONWriter) Write(w io.Writer, report *entity.DetectionReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
