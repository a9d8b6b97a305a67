package transcriber

import (
	"context"
	"time"
)

// Transcriber turns a PCM audio artifact into ordered per-chunk text.
type Transcriber interface {
	// Transcribe plans chunks over [0, duration) and returns the results of
	// the chunks that succeeded, ordered by chunk index. It only fails when
	// ctx is done.
	Transcribe(ctx context.Context, audioPath string, duration time.Duration, workDir string) ([]Result, error)
}

// Backend is a pluggable speech-to-text service.
//
// Implementations return ErrUnintelligible when the audio was received but
// no speech could be recognised, and a *ServiceError for anything else.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, req Request) (string, error)
}
