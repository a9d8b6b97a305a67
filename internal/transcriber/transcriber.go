package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/gif-flow/pkg/semaphore"
)

// Transcribe plans chunks over the audio and transcribes them with bounded
// concurrency. Chunks that fail are skipped; the result has gaps, not errors.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string, duration time.Duration, workDir string) ([]Result, error) {
	chunks := PlanChunks(duration, t.window)
	t.logger.Info(ctx, "Transcribing %s: %d chunks of %s (backend=%s, concurrency=%d, max attempts=%d)",
		audioPath, len(chunks), t.window, t.backend.Name(), t.concurrency, t.maxRetries)

	slots := make([]*Result, len(chunks))
	sem := semaphore.New(t.concurrency)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		if err := sem.Acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, chunk Chunk) {
			defer wg.Done()
			defer sem.Release()

			if res, ok := t.transcribeChunk(ctx, audioPath, workDir, chunk); ok {
				slots[i] = &res
			}
		}(i, chunk)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(chunks))
	for _, res := range slots {
		if res != nil {
			results = append(results, *res)
		}
	}

	t.logger.Info(ctx, "Transcription finished: %d/%d chunks produced text", len(results), len(chunks))
	return results, nil
}

// transcribeChunk drives one chunk from Pending to Terminal.
func (t *implTranscriber) transcribeChunk(ctx context.Context, audioPath, workDir string, chunk Chunk) (Result, bool) {
	log := t.logger.With("chunk", chunk.Index, "start", chunk.Start.String())

	state := statePending
	budget := t.maxRetries
	attempts := 0

	for state != stateTerminal {
		if state == stateRetrying && !t.sleep(ctx) {
			return Result{}, false
		}
		if ctx.Err() != nil {
			return Result{}, false
		}

		attempts++
		attempt := t.attempt(ctx, audioPath, workDir, chunk, attempts)
		state, budget = advance(attempt.Outcome, budget)

		switch attempt.Outcome {
		case OutcomeSuccess:
			log.Debug(ctx, "Chunk transcribed on attempt %d: %d words", attempts, len(strings.Fields(attempt.Text)))
			return Result{Chunk: chunk, Text: attempt.Text}, true
		case OutcomeUnintelligible:
			if state == stateTerminal {
				log.Info(ctx, "Skipping %s: audio not understood after %d attempts", chunk, attempts)
			} else {
				log.Debug(ctx, "Audio not understood on attempt %d, retrying (%d left)", attempts, budget)
			}
		case OutcomeBackendError:
			if ctx.Err() != nil {
				return Result{}, false
			}
			log.Error(ctx, "Abandoning %s after attempt %d: %v", chunk, attempts, attempt.Err)
		}
	}
	return Result{}, false
}

// attempt re-acquires the chunk window from the audio artifact and submits
// it once. The window file is removed before returning.
func (t *implTranscriber) attempt(ctx context.Context, audioPath, workDir string, chunk Chunk, n int) Attempt {
	windowPath := filepath.Join(workDir, fmt.Sprintf("chunk_%04d_%d.wav", chunk.Index, n))
	defer os.Remove(windowPath)

	if err := t.media.ExtractWindow(ctx, audioPath, chunk.Start, chunk.End, windowPath); err != nil {
		return Attempt{Chunk: chunk, Outcome: OutcomeBackendError, Err: fmt.Errorf("acquire window: %w", err)}
	}

	callCtx := ctx
	if t.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t.callTimeout)
		defer cancel()
	}

	text, err := t.backend.Transcribe(callCtx, Request{
		AudioPath: windowPath,
		Offset:    chunk.Start,
		Duration:  chunk.Duration(),
	})
	return classify(chunk, text, err)
}

// sleep waits out the retry backoff; it reports false if ctx ended first.
func (t *implTranscriber) sleep(ctx context.Context) bool {
	if t.backoff <= 0 {
		return true
	}
	timer := time.NewTimer(t.backoff)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
