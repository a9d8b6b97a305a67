package report

import "context"

// Reporter writes a human-readable record of a finished job.
type Reporter interface {
	// Write renders job and returns the path of the written file.
	Write(ctx context.Context, job Job) (string, error)
}
