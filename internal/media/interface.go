package media

import (
	"context"
	"time"
)

// Media wraps the external media tool for probing, audio extraction and
// window cutting.
type Media interface {
	Probe(ctx context.Context, path string) (ProbeResult, error)
	ExtractAudio(ctx context.Context, videoPath, destDir string) (string, error)
	AudioDuration(audioPath string) (time.Duration, error)
	ExtractWindow(ctx context.Context, audioPath string, start, end time.Duration, dest string) error
}
