package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/testsupport"
)

func writeWindow(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunk_0000_1.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInterpretReply(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{"speech", "  hello world ", "hello world", nil},
		{"empty", "", "", ErrUnintelligible},
		{"marker", "[UNINTELLIGIBLE]", "", ErrUnintelligible},
		{"marker with period", "[unintelligible].", "", ErrUnintelligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interpretReply(tt.text)
			if !errors.Is(err, tt.wantErr) || got != tt.want {
				t.Errorf("interpretReply() = (%q, %v), want (%q, %v)", got, err, tt.want, tt.wantErr)
			}
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	if !isQuotaError(errors.New("Error 429, RESOURCE_EXHAUSTED")) {
		t.Error("429 should be a quota error")
	}
	if isQuotaError(errors.New("Error 400, INVALID_ARGUMENT")) {
		t.Error("400 should not be a quota error")
	}
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{config.BackendGemini, "gemini", false},
		{config.BackendOpenAI, "openai", false},
		{config.BackendWhisper, "whisper", false},
		{"vosk", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &config.Config{Transcriber: config.TranscriberConfig{Backend: tt.backend, APIKeys: []string{"k"}}}
			b, err := NewBackend(cfg, &testsupport.FakeExecutor{}, logger.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBackend() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && b.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", b.Name(), tt.want)
			}
		})
	}
}

func TestWhisperBackend(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		toolErr error
		want    string
		check   func(error) bool
	}{
		{
			name:   "speech",
			output: "\n hello  there\nfriend\n",
			want:   "hello there friend",
			check:  func(err error) bool { return err == nil },
		},
		{
			name:   "blank audio",
			output: " [BLANK_AUDIO]\n",
			check:  func(err error) bool { return errors.Is(err, ErrUnintelligible) },
		},
		{
			name:    "tool failure",
			toolErr: errors.New("exit status 1"),
			check: func(err error) bool {
				var se *ServiceError
				return errors.As(err, &se)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := writeWindow(t)
			fake := &testsupport.FakeExecutor{
				Handler: func(ctx context.Context, call testsupport.Call) (string, error) {
					if tt.toolErr != nil {
						return "", tt.toolErr
					}
					return "", os.WriteFile(call.Output()+".txt", []byte(tt.output), 0644)
				},
			}
			cfg := config.WhisperConfig{BinaryPath: "whisper-cli", ModelPath: "ggml.bin", Threads: 4}
			backend := NewWhisperBackend(cfg, "en", "", fake)

			got, err := backend.Transcribe(context.Background(), Request{AudioPath: window})
			if !tt.check(err) {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Transcribe() = %q, want %q", got, tt.want)
			}

			calls := fake.Calls()
			if len(calls) != 1 || calls[0].Name != "whisper-cli" || !calls[0].Has("ggml.bin") {
				t.Errorf("calls = %+v", calls)
			}
			if _, err := os.Stat(strings.TrimSuffix(window, ".wav") + ".txt"); !os.IsNotExist(err) {
				t.Error("whisper output file should be removed")
			}
		})
	}
}

func TestOpenAIBackend(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   string
		check  func(error) bool
	}{
		{
			name:   "speech",
			status: http.StatusOK,
			body:   map[string]string{"text": "hello from the api"},
			want:   "hello from the api",
			check:  func(err error) bool { return err == nil },
		},
		{
			name:   "no speech",
			status: http.StatusOK,
			body:   map[string]string{"text": ""},
			check:  func(err error) bool { return errors.Is(err, ErrUnintelligible) },
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]any{"error": map[string]string{"message": "boom"}},
			check: func(err error) bool {
				var se *ServiceError
				return errors.As(err, &se)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
				if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("parse multipart: %v", err)
				} else if r.FormValue("model") != "whisper-1" {
					t.Errorf("model = %q, want whisper-1", r.FormValue("model"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			cfg := config.TranscriberConfig{APIKeys: []string{"sk-test"}, Model: "whisper-1", Language: "en", BaseURL: srv.URL + "/"}
			backend := NewOpenAIBackend(cfg)

			got, err := backend.Transcribe(context.Background(), Request{AudioPath: writeWindow(t)})
			if !tt.check(err) {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Transcribe() = %q, want %q", got, tt.want)
			}
			if hits != 1 {
				t.Errorf("server hit %d times, want 1 (client retries disabled)", hits)
			}
		})
	}
}

func TestGeminiBackend(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
		check func(error) bool
	}{
		{"speech", "hello gemini", "hello gemini", func(err error) bool { return err == nil }},
		{"marker", noSpeechMarker, "", func(err error) bool { return errors.Is(err, ErrUnintelligible) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]any{
					"candidates": []any{
						map[string]any{
							"content": map[string]any{
								"role":  "model",
								"parts": []any{map[string]string{"text": tt.reply}},
							},
						},
					},
				})
			}))
			defer srv.Close()

			cfg := config.TranscriberConfig{APIKeys: []string{"k1"}, Model: "gemini-2.5-flash", Language: "en", BaseURL: srv.URL + "/"}
			backend := NewGeminiBackend(cfg, logger.Nop())

			got, err := backend.Transcribe(context.Background(), Request{AudioPath: writeWindow(t)})
			if !tt.check(err) {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Transcribe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGeminiRotateKey(t *testing.T) {
	backend := NewGeminiBackend(config.TranscriberConfig{APIKeys: []string{"a", "b", "c"}}, logger.Nop()).(*geminiBackend)

	backend.rotateKey(0)
	if got := backend.keyIndex(); got != 1 {
		t.Fatalf("keyIndex() = %d, want 1", got)
	}
	// A stale rotation from another worker must not skip a key.
	backend.rotateKey(0)
	if got := backend.keyIndex(); got != 1 {
		t.Errorf("keyIndex() after stale rotate = %d, want 1", got)
	}
	backend.rotateKey(1)
	backend.rotateKey(2)
	if got := backend.keyIndex(); got != 0 {
		t.Errorf("keyIndex() should wrap to 0, got %d", got)
	}
}

func TestGeminiMissingWindow(t *testing.T) {
	backend := NewGeminiBackend(config.TranscriberConfig{APIKeys: []string{"k"}}, logger.Nop())
	_, err := backend.Transcribe(context.Background(), Request{AudioPath: filepath.Join(t.TempDir(), "missing.wav")})

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Errorf("Transcribe() error = %v, want *ServiceError", err)
	}
}
