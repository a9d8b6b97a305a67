package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
)

// noSpeechMarker is what the model is told to answer when it hears nothing.
const noSpeechMarker = "[UNINTELLIGIBLE]"

const transcribePrompt = `Transcribe the speech in this audio clip verbatim. The language is %s.
Reply with the spoken words only: no timestamps, no speaker labels, no commentary.
If the clip contains no intelligible speech, reply with exactly %s.`

type geminiBackend struct {
	apiKeys    []string
	currentKey atomic.Int64
	model      string
	language   string
	prompt     string
	baseURL    string
	logger     logger.Logger
}

// NewGeminiBackend creates a Backend that sends each window to Gemini as an
// inline audio part, rotating through the supplied API keys on quota errors.
func NewGeminiBackend(cfg config.TranscriberConfig, log logger.Logger) Backend {
	return &geminiBackend{
		apiKeys:  cfg.APIKeys,
		model:    cfg.Model,
		language: cfg.Language,
		prompt:   cfg.Prompt,
		baseURL:  cfg.BaseURL,
		logger:   log,
	}
}

func (g *geminiBackend) Name() string { return config.BackendGemini }

func (g *geminiBackend) Transcribe(ctx context.Context, req Request) (string, error) {
	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return "", &ServiceError{Backend: g.Name(), Err: fmt.Errorf("read window: %w", err)}
	}
	if len(g.apiKeys) == 0 {
		return "", &ServiceError{Backend: g.Name(), Err: errors.New("no API keys configured")}
	}

	prompt := fmt.Sprintf(transcribePrompt, g.language, noSpeechMarker)
	if g.prompt != "" {
		prompt += "\nVocabulary hints: " + g.prompt
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(audio, "audio/wav"),
		}, genai.RoleUser),
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx := g.keyIndex()

		client, err := genai.NewClient(ctx, g.clientConfig(g.apiKeys[idx]))
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", &ServiceError{Backend: g.Name(), Err: fmt.Errorf("generate content: %w", err)}
		}

		return interpretReply(responseText(result))
	}

	return "", &ServiceError{Backend: g.Name(), Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (g *geminiBackend) clientConfig(key string) *genai.ClientConfig {
	cfg := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	return cfg
}

func (g *geminiBackend) keyIndex() int {
	return int(g.currentKey.Load() % int64(len(g.apiKeys)))
}

// rotateKey moves past idx unless another worker already did.
func (g *geminiBackend) rotateKey(idx int) {
	next := int64((idx + 1) % len(g.apiKeys))
	g.currentKey.CompareAndSwap(int64(idx), next)
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}

// interpretReply turns model output into a transcript or ErrUnintelligible.
func interpretReply(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(strings.Trim(text, ". "), noSpeechMarker) {
		return "", ErrUnintelligible
	}
	return text, nil
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
