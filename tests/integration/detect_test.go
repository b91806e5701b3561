package integration

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awkrail/tiny-scene-detector/internal/detect"
	"github.com/awkrail/tiny-scene-detector/internal/infra/ffmpeg"
	"github.com/awkrail/tiny-scene-detector/internal/usecase"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}
}

// makeRedBlueVideo synthesizes a 3-second 30 fps clip: 1s of solid red
// followed by 2s of solid blue.
func makeRedBlueVideo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "redblue.mp4")
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi", "-i", "color=c=red:s=320x240:r=30:d=1",
		"-f", "lavfi", "-i", "color=c=blue:s=320x240:r=30:d=2",
		"-filter_complex", "[0:v][1:v]concat=n=2:v=1[out]",
		"-map", "[out]",
		"-c:v", "mpeg4", "-q:v", "2",
		"-y", path,
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "generate test video: %s", output)
	return path
}

func TestDetectScenesEndToEnd(t *testing.T) {
	requireFFmpeg(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	videoPath := makeRedBlueVideo(t, t.TempDir())

	opener := ffmpeg.NewOpener("ffmpeg", "ffprobe", zap.NewNop())
	uc := usecase.NewDetectScenesUseCase(opener, zap.NewNop(), usecase.DetectScenesConfig{
		Threshold:   27.0,
		MinSceneLen: "15",
		Weights:     detect.DefaultWeights(),
	})

	rep, err := uc.Execute(ctx, videoPath)
	require.NoError(t, err)

	assert.InDelta(t, 30.0, rep.FrameRate, 0.1)
	assert.InDelta(t, 90, rep.TotalFrames, 2)

	require.Len(t, rep.Scenes, 2)
	// Encoder conformance can shift the boundary by a frame or two.
	assert.InDelta(t, 30, rep.Scenes[0].EndFrame, 2)
	assert.Equal(t, rep.Scenes[0].EndFrame, rep.Scenes[1].StartFrame)
	assert.Equal(t, 0, rep.Scenes[0].StartFrame)
	assert.Equal(t, rep.TotalFrames, rep.Scenes[1].EndFrame)
}

func TestDetectScenesStaticVideo(t *testing.T) {
	requireFFmpeg(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "static.mp4")
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi", "-i", "color=c=gray:s=320x240:r=30:d=2",
		"-c:v", "mpeg4", "-q:v", "2",
		"-y", path,
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "generate test video: %s", output)

	opener := ffmpeg.NewOpener("ffmpeg", "ffprobe", zap.NewNop())
	uc := usecase.NewDetectScenesUseCase(opener, zap.NewNop(), usecase.DetectScenesConfig{
		Threshold:   27.0,
		MinSceneLen: "15",
		Weights:     detect.DefaultWeights(),
	})

	rep, err := uc.Execute(ctx, path)
	require.NoError(t, err)

	require.Len(t, rep.Scenes, 1)
	assert.Equal(t, 0, rep.Scenes[0].StartFrame)
	assert.Equal(t, rep.TotalFrames, rep.Scenes[0].EndFrame)
}

func TestOpenMissingVideo(t *testing.T) {
	requireFFmpeg(t)

	opener := ffmpeg.NewOpener("ffmpeg", "ffprobe", zap.NewNop())
	uc := usecase.NewDetectScenesUseCase(opener, zap.NewNop(), usecase.DetectScenesConfig{
		Threshold:   27.0,
		MinSceneLen: "15",
		Weights:     detect.DefaultWeights(),
	})

	_, err := uc.Execute(context.Background(), "/nonexistent/video.mp4")
	assert.Error(t, err)
}
