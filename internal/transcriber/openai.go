package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
)

type openAIBackend struct {
	client   openai.Client
	model    string
	language string
	prompt   string
}

// NewOpenAIBackend creates a Backend using the audio transcriptions
// endpoint. The client's own retries are disabled; the chunk retry budget
// is the only retry policy.
func NewOpenAIBackend(cfg config.TranscriberConfig) Backend {
	base := []option.RequestOption{option.WithMaxRetries(0)}
	if len(cfg.APIKeys) > 0 {
		base = append(base, option.WithAPIKey(cfg.APIKeys[0]))
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIBackend{
		client:   openai.NewClient(base...),
		model:    cfg.Model,
		language: cfg.Language,
		prompt:   cfg.Prompt,
	}
}

func (o *openAIBackend) Name() string { return config.BackendOpenAI }

func (o *openAIBackend) Transcribe(ctx context.Context, req Request) (string, error) {
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return "", &ServiceError{Backend: o.Name(), Err: fmt.Errorf("open window: %w", err)}
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(f, filepath.Base(req.AudioPath), "audio/wav"),
		Model: openai.AudioModel(o.model),
	}
	if o.language != "" {
		params.Language = openai.String(o.language)
	}
	if o.prompt != "" {
		params.Prompt = openai.String(o.prompt)
	}

	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", &ServiceError{Backend: o.Name(), Err: err}
	}
	return interpretReply(resp.Text)
}
