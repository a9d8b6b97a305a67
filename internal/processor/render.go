package processor

import (
	"context"
	"errors"
	"sync"

	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/render"
	"github.com/nguyentantai21042004/gif-flow/internal/segment"
	"github.com/nguyentantai21042004/gif-flow/pkg/semaphore"
)

// renderAll fans captions out to the renderer under the render concurrency
// cap. A failed segment is logged and dropped. If ctx ends, every artifact
// produced so far is removed and ctx's error is returned.
func (p *implProcessor) renderAll(ctx context.Context, log logger.Logger, videoPath string, captions []segment.Caption) ([]render.Artifact, error) {
	slots := make([]*render.Artifact, len(captions))
	sem := semaphore.New(p.cfg.Pipeline.RenderConcurrency)
	var wg sync.WaitGroup

	for i, caption := range captions {
		if err := sem.Acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, caption segment.Caption) {
			defer wg.Done()
			defer sem.Release()

			art, err := p.renderer.Render(ctx, i, caption, videoPath)
			if err != nil {
				if ctx.Err() == nil {
					var stageErr *render.StageError
					if errors.As(err, &stageErr) {
						log.Error(ctx, "Segment %d failed at %s stage: %v", stageErr.Segment, stageErr.Stage, stageErr.Err)
					} else {
						log.Error(ctx, "Segment %d failed: %v", i, err)
					}
				}
				return
			}
			slots[i] = &art
		}(i, caption)
	}
	wg.Wait()

	artifacts := make([]render.Artifact, 0, len(captions))
	for _, art := range slots {
		if art != nil {
			artifacts = append(artifacts, *art)
		}
	}

	if err := ctx.Err(); err != nil {
		p.discardArtifacts(ctx, artifacts)
		return nil, err
	}
	return artifacts, nil
}
