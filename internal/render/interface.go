package render

import (
	"context"

	"github.com/nguyentantai21042004/gif-flow/internal/segment"
)

// Renderer turns one caption window of a video into an animated GIF.
type Renderer interface {
	Render(ctx context.Context, index int, caption segment.Caption, videoPath string) (Artifact, error)
}
