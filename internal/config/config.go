package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

type Config struct {
	Pipeline    PipelineConfig    `yaml:"pipeline" toml:"pipeline"`
	Transcriber TranscriberConfig `yaml:"transcriber" toml:"transcriber"`
	Whisper     WhisperConfig     `yaml:"whisper" toml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg" toml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths" toml:"paths"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Performance PerformanceConfig `yaml:"performance" toml:"performance"`
	Report      ReportConfig      `yaml:"report" toml:"report"`
}

// PipelineConfig holds the chunking, segmentation and fan-out knobs.
type PipelineConfig struct {
	WindowSeconds     float64 `yaml:"window_seconds" toml:"window_seconds"`
	MaxRetries        int     `yaml:"max_retries" toml:"max_retries"`
	WordsPerSegment   int     `yaml:"words_per_segment" toml:"words_per_segment"`
	SegmentDuration   float64 `yaml:"segment_duration" toml:"segment_duration"`
	ConcurrencyCap    int     `yaml:"concurrency_cap" toml:"concurrency_cap"`
	RenderConcurrency int     `yaml:"render_concurrency" toml:"render_concurrency"`
	RetryBackoffMs    int     `yaml:"retry_backoff_ms" toml:"retry_backoff_ms"`
}

// TranscriberConfig selects the speech-to-text backend. BaseURL overrides
// the API endpoint of the gemini and openai backends.
type TranscriberConfig struct {
	Backend        string   `yaml:"backend" toml:"backend"`
	Model          string   `yaml:"model" toml:"model"`
	Language       string   `yaml:"language" toml:"language"`
	Prompt         string   `yaml:"prompt" toml:"prompt"`
	APIKeys        []string `yaml:"api_keys" toml:"api_keys"`
	TimeoutSeconds int      `yaml:"timeout_seconds" toml:"timeout_seconds"`
	BaseURL        string   `yaml:"base_url" toml:"base_url"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path" toml:"model_path"`
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
	Threads    int    `yaml:"threads" toml:"threads"`
}

type FFmpegConfig struct {
	Binary         string `yaml:"binary" toml:"binary"`
	ProbeBinary    string `yaml:"probe_binary" toml:"probe_binary"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`
	SampleRate     int    `yaml:"sample_rate" toml:"sample_rate"`
	FontSize       int    `yaml:"font_size" toml:"font_size"`
	FPS            int    `yaml:"fps" toml:"fps"`
	Width          int    `yaml:"width" toml:"width"`
}

type PathsConfig struct {
	Input    string `yaml:"input" toml:"input"`
	Output   string `yaml:"output" toml:"output"`
	Archived string `yaml:"archived" toml:"archived"`
	Temp     string `yaml:"temp" toml:"temp"`
	Reports  string `yaml:"reports" toml:"reports"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

type ReportConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

const (
	BackendGemini  = "gemini"
	BackendOpenAI  = "openai"
	BackendWhisper = "whisper"
)

// Validate checks required fields and fills defaults for everything else.
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Pipeline.WindowSeconds < 0 {
		return fmt.Errorf("pipeline.window_seconds must be positive")
	}
	if c.Pipeline.SegmentDuration < 0 {
		return fmt.Errorf("pipeline.segment_duration must be positive")
	}
	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("pipeline.max_retries must not be negative")
	}
	if c.Pipeline.WordsPerSegment < 0 {
		return fmt.Errorf("pipeline.words_per_segment must not be negative")
	}

	c.Transcriber.Backend = strings.ToLower(strings.TrimSpace(c.Transcriber.Backend))
	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = BackendGemini
	}
	switch c.Transcriber.Backend {
	case BackendGemini, BackendOpenAI:
		if len(c.Transcriber.APIKeys) == 0 {
			return fmt.Errorf("transcriber.api_keys is required for the %s backend", c.Transcriber.Backend)
		}
	case BackendWhisper:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	default:
		return fmt.Errorf("unknown transcriber.backend %q", c.Transcriber.Backend)
	}

	if c.Pipeline.WindowSeconds == 0 {
		c.Pipeline.WindowSeconds = 15
	}
	if c.Pipeline.MaxRetries == 0 {
		c.Pipeline.MaxRetries = 3
	}
	if c.Pipeline.WordsPerSegment == 0 {
		c.Pipeline.WordsPerSegment = 5
	}
	if c.Pipeline.SegmentDuration == 0 {
		c.Pipeline.SegmentDuration = 3
	}
	if c.Pipeline.ConcurrencyCap <= 0 {
		c.Pipeline.ConcurrencyCap = 2
	}
	if c.Pipeline.RenderConcurrency <= 0 {
		c.Pipeline.RenderConcurrency = runtime.NumCPU()
	}
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultModel(c.Transcriber.Backend)
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "en"
	}
	if c.Transcriber.TimeoutSeconds == 0 {
		c.Transcriber.TimeoutSeconds = 120
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.TimeoutSeconds == 0 {
		c.FFmpeg.TimeoutSeconds = 300
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.FontSize == 0 {
		c.FFmpeg.FontSize = 24
	}
	if c.FFmpeg.FPS == 0 {
		c.FFmpeg.FPS = 10
	}
	if c.FFmpeg.Width == 0 {
		c.FFmpeg.Width = 320
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

func defaultModel(backend string) string {
	switch backend {
	case BackendOpenAI:
		return "whisper-1"
	case BackendGemini:
		return "gemini-2.5-flash"
	default:
		return ""
	}
}

// Window is the chunk window size.
func (p PipelineConfig) Window() time.Duration {
	return seconds(p.WindowSeconds)
}

// SegmentLength is the fixed display window of one caption.
func (p PipelineConfig) SegmentLength() time.Duration {
	return seconds(p.SegmentDuration)
}

func (p PipelineConfig) RetryBackoff() time.Duration {
	return time.Duration(p.RetryBackoffMs) * time.Millisecond
}

func (t TranscriberConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

func (f FFmpegConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
