package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ProbeResult is the subset of ffprobe output the pipeline needs.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Probe runs ffprobe against path. Any failure is reported as ErrInputMalformed.
func (m *implMedia) Probe(ctx context.Context, path string) (ProbeResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ProbeResult{}, fmt.Errorf("probe: empty path: %w", ErrInputMalformed)
	}

	out, err := m.executor.Execute(ctx, m.cfg.ProbeBinary,
		"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		if ctx.Err() != nil {
			return ProbeResult{}, ctx.Err()
		}
		return ProbeResult{}, fmt.Errorf("probe %s: %w: %w", path, ErrInputMalformed, err)
	}

	var result ProbeResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return ProbeResult{}, fmt.Errorf("probe parse: %w: %w", ErrInputMalformed, err)
	}
	if result.AudioStreamCount() == 0 {
		return ProbeResult{}, fmt.Errorf("probe %s: no audio stream: %w", path, ErrInputMalformed)
	}

	m.logger.Debug(ctx, "Probed %s: format=%s duration=%s video=%d audio=%d",
		path, result.Format.FormatName, result.Duration(), result.VideoStreamCount(), result.AudioStreamCount())
	return result, nil
}

// VideoStreamCount returns the number of video streams discovered.
func (r ProbeResult) VideoStreamCount() int {
	return r.countStreams("video")
}

// AudioStreamCount returns the number of audio streams discovered.
func (r ProbeResult) AudioStreamCount() int {
	return r.countStreams("audio")
}

func (r ProbeResult) countStreams(codecType string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			count++
		}
	}
	return count
}

// Duration returns the container duration, or 0 when unavailable.
func (r ProbeResult) Duration() time.Duration {
	secs, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil || math.IsNaN(secs) || secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
