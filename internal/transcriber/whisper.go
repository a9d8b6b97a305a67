package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/pkg/executor"
)

// whisper.cpp writes this token for windows without speech.
const whisperBlank = "[BLANK_AUDIO]"

type whisperBackend struct {
	cfg      config.WhisperConfig
	language string
	prompt   string
	executor executor.Executor
}

// NewWhisperBackend creates a Backend that runs the whisper.cpp CLI on each
// window and reads back its plain-text output.
func NewWhisperBackend(cfg config.WhisperConfig, language, prompt string, exec executor.Executor) Backend {
	return &whisperBackend{
		cfg:      cfg,
		language: language,
		prompt:   prompt,
		executor: exec,
	}
}

func (w *whisperBackend) Name() string { return config.BackendWhisper }

func (w *whisperBackend) Transcribe(ctx context.Context, req Request) (string, error) {
	// Whisper appends .txt to the output prefix
	outputPrefix := strings.TrimSuffix(req.AudioPath, filepath.Ext(req.AudioPath))
	txtPath := outputPrefix + ".txt"
	defer os.Remove(txtPath)

	// -otxt: plain text, -nt: no timestamps, -l: force language to
	// avoid hallucinated translations on short windows
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", req.AudioPath,
		"-otxt",
		"-nt",
		"-l", w.language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if w.prompt != "" {
		args = append(args, "--prompt", w.prompt)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", &ServiceError{Backend: w.Name(), Err: fmt.Errorf("whisper transcribe: %w", err)}
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", &ServiceError{Backend: w.Name(), Err: fmt.Errorf("read whisper output: %w", err)}
	}

	text := strings.Join(strings.Fields(strings.ReplaceAll(string(data), whisperBlank, " ")), " ")
	return interpretReply(text)
}
