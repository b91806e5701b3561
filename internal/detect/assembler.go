package detect

import (
	"fmt"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// SceneAssembler turns an ordered sequence of cuts plus the total frame count
// into a gap-free, non-overlapping scene list spanning [0, totalFrames).
type SceneAssembler struct {
	fps    float64
	cursor int
	scenes []entity.Scene
}

func NewSceneAssembler(fps float64) (*SceneAssembler, error) {
	if fps < entity.MaxFPSDelta {
		return nil, fmt.Errorf("frame rate must be positive, got %f", fps)
	}
	return &SceneAssembler{fps: fps, scenes: []entity.Scene{}}, nil
}

// AddCut closes the current scene at the given frame and opens the next one.
// A cut at the cursor position never emits a zero-length scene. Cuts must
// arrive in increasing order; stale cuts are ignored.
func (a *SceneAssembler) AddCut(frame int) {
	if frame <= a.cursor {
		return
	}
	a.scenes = append(a.scenes, a.buildScene(a.cursor, frame))
	a.cursor = frame
}

// Finalize closes the trailing scene at totalFrames and returns the full
// list. A stream ending exactly on a cut has no trailing scene; an empty
// stream yields an empty list.
func (a *SceneAssembler) Finalize(totalFrames int) []entity.Scene {
	if totalFrames > a.cursor {
		a.scenes = append(a.scenes, a.buildScene(a.cursor, totalFrames))
		a.cursor = totalFrames
	}
	return a.scenes
}

func (a *SceneAssembler) buildScene(start, end int) entity.Scene {
	// fps was validated at construction, so these cannot fail.
	st, _ := entity.NewTimecode(start, a.fps)
	et, _ := entity.NewTimecode(end, a.fps)
	return entity.Scene{
		Index:           len(a.scenes),
		StartFrame:      start,
		EndFrame:        end,
		StartSeconds:    st.Seconds(),
		EndSeconds:      et.Seconds(),
		StartTimecode:   st.String(),
		EndTimecode:     et.String(),
		DurationSeconds: et.Seconds() - st.Seconds(),
	}
}
