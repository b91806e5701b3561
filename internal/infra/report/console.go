package report

import (
	"fmt"
	"io"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

type ConsoleWriter struct{}

func NewConsoleWriter() *ConsoleWriter { return &ConsoleWriter{} }

func (*ConsoleWriter) Write(w io.Writer, report *entity.DetectionReport) error {
	_, err := fmt.Fprintf(w, "%s: %d frames @ %.3f fps, %d scene(s)\n",
		report.VideoPath, report.TotalFrames, report.FrameRate, len(report.Scenes))
	if err != nil {
		return err
	}
	for _, s := range report.Scenes {
		_, err := fmt.Fprintf(w, "  scene %3d | frames [%6d, %6d) | %s - %s\n",
			s.Index+1, s.StartFrame, s.EndFrame, s.StartTimecode, s.EndTimecode)
		if err != nil {
			return err
		}
	}
	return nil
}
