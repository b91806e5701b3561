//go:build !opencv

package opencv

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/awkrail/tiny-scene-detector/internal/domain/port"
)

type Opener struct {
	logger *zap.Logger
}

func NewOpener(logger *zap.Logger) *Opener {
	return &Opener{logger: logger}
}

func (o *Opener) Open(ctx context.Context, path string, opts port.OpenOptions) (port.FrameSource, error) {
	return nil, errors.New("opencv backend unavailable: rebuild with -tags opencv")
}
