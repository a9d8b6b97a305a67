package transcriber

import (
	"fmt"
	"time"
)

// Chunk is a fixed-size time window of audio submitted as one unit.
type Chunk struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// Duration returns the window length.
func (c Chunk) Duration() time.Duration {
	return c.End - c.Start
}

func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d [%s-%s)", c.Index, c.Start, c.End)
}

// Request is what a backend receives for one attempt. AudioPath points at a
// freshly cut WAV holding only this window.
type Request struct {
	AudioPath string
	Offset    time.Duration
	Duration  time.Duration
}

// Outcome classifies a single transcription attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUnintelligible
	OutcomeBackendError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnintelligible:
		return "unintelligible"
	case OutcomeBackendError:
		return "backend_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Attempt is one try at transcribing a chunk.
type Attempt struct {
	Chunk   Chunk
	Outcome Outcome
	Text    string
	Err     error
}

// Result is the text of a chunk that eventually succeeded.
type Result struct {
	Chunk Chunk
	Text  string
}
