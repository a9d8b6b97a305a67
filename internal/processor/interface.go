package processor

import (
	"context"

	"github.com/nguyentantai21042004/gif-flow/internal/render"
)

// Processor runs the whole video → captioned GIF pipeline.
type Processor interface {
	// Process returns the artifacts that rendered successfully, ordered by
	// segment. An empty result is not an error.
	Process(ctx context.Context, videoPath string) ([]render.Artifact, error)
	// ProcessAndArchive runs Process and then moves the source video into
	// the archive folder. It is the watch-folder event handler.
	ProcessAndArchive(ctx context.Context, videoPath string) error
}
