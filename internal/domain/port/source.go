package port

import (
	"context"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// FrameSource produces a lazy, finite, forward-only sequence of decoded
// frames in presentation order. Read returns io.EOF once the stream is
// exhausted; a source is not restartable without reopening it.
type FrameSource interface {
	Read(ctx context.Context) (*entity.Frame, error)
	FrameRate() float64
	FrameSize() (width, height int)
	Close() error
}

// OpenOptions controls how a source decodes its frames.
type OpenOptions struct {
	// EffectiveWidth is the minimum width frames are downscaled towards
	// before scoring. Zero selects the default. Downscaling only ever
	// happens by integer factors; frames narrower than the effective
	// width are decoded at native size.
	EffectiveWidth int
}

type SourceOpener interface {
	Open(ctx context.Context, path string, opts OpenOptions) (FrameSource, error)
}
