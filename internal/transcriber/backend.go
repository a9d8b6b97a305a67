package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/pkg/executor"
)

// NewBackend builds the backend selected by transcriber.backend.
func NewBackend(cfg *config.Config, exec executor.Executor, log logger.Logger) (Backend, error) {
	switch cfg.Transcriber.Backend {
	case config.BackendGemini:
		return NewGeminiBackend(cfg.Transcriber, log), nil
	case config.BackendOpenAI:
		return NewOpenAIBackend(cfg.Transcriber), nil
	case config.BackendWhisper:
		return NewWhisperBackend(cfg.Whisper, cfg.Transcriber.Language, cfg.Transcriber.Prompt, exec), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcriber.Backend)
	}
}
