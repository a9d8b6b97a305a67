package transcriber

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnintelligible is returned by a backend that received the audio but
// could not recognise speech in it. It is retryable.
var ErrUnintelligible = errors.New("audio not understood")

// ServiceError is a backend or communication failure. It is not retried.
type ServiceError struct {
	Backend string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// classify maps a backend reply onto an Attempt.
func classify(chunk Chunk, text string, err error) Attempt {
	switch {
	case err == nil && strings.TrimSpace(text) != "":
		return Attempt{Chunk: chunk, Outcome: OutcomeSuccess, Text: strings.TrimSpace(text)}
	case err == nil, errors.Is(err, ErrUnintelligible):
		return Attempt{Chunk: chunk, Outcome: OutcomeUnintelligible, Err: ErrUnintelligible}
	default:
		return Attempt{Chunk: chunk, Outcome: OutcomeBackendError, Err: err}
	}
}
