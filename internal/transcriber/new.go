package transcriber

import (
	"time"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/media"
)

type implTranscriber struct {
	media   media.Media
	backend Backend
	logger  logger.Logger

	window      time.Duration
	maxRetries  int
	concurrency int
	backoff     time.Duration
	callTimeout time.Duration
}

// New creates a chunked Transcriber that submits windows of the audio to
// backend, bounded by the pipeline concurrency cap.
func New(cfg *config.Config, m media.Media, backend Backend, log logger.Logger) Transcriber {
	return &implTranscriber{
		media:       m,
		backend:     backend,
		logger:      log,
		window:      cfg.Pipeline.Window(),
		maxRetries:  max(cfg.Pipeline.MaxRetries, 1),
		concurrency: max(cfg.Pipeline.ConcurrencyCap, 1),
		backoff:     cfg.Pipeline.RetryBackoff(),
		callTimeout: cfg.Transcriber.Timeout(),
	}
}
