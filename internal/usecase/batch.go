package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/awkrail/tiny-scene-detector/internal/domain/entity"
)

// BatchResult is the outcome of one video in a batch run.
type BatchResult struct {
	Path   string
	Report *entity.DetectionReport
	Err    error
}

// ExecuteBatch runs detection over several videos on a bounded worker pool.
// Each video gets its own detector instance, so workers share nothing but the
// job channel. Results are returned in input order.
func (uc *DetectScenesUseCase) ExecuteBatch(ctx context.Context, paths []string, workerCount int) []BatchResult {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(paths) {
		workerCount = len(paths)
	}

	jobs := make(chan int)
	results := make([]BatchResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := uc.logger.With(zap.Int("worker_id", id))
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					report, err := uc.Execute(ctx, paths[i])
					results[i] = BatchResult{Path: paths[i], Report: report, Err: err}
					if err != nil {
						log.Error("detection failed", zap.String("video", paths[i]), zap.Error(err))
					}
				}
			}
		}(w)
	}

dispatch:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	// Videos never dispatched because the context ended still get a result.
	for i := range results {
		if results[i].Path == "" {
			results[i] = BatchResult{Path: paths[i], Err: ctx.Err()}
		}
	}
	return results
}
