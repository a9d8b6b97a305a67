package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

// ExtractAudio extracts audio from video file and converts to mono 16-bit
// PCM WAV inside destDir.
func (m *implMedia) ExtractAudio(ctx context.Context, videoPath, destDir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(destDir, base+"_audio.wav")

	m.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: no video, -ac 1: mono, -c:a pcm_s16le: canonical PCM the
	// transcription backends accept without further conversion.
	args := []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(m.cfg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		audioPath,
	}

	if _, err := m.executor.Execute(ctx, m.cfg.Binary, args...); err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	m.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}

// AudioDuration reads the duration of a PCM WAV file from its data chunk size.
func (m *implMedia) AudioDuration(audioPath string) (time.Duration, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return 0, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("read %s: not a valid wav file: %w", audioPath, ErrInputMalformed)
	}
	// The RIFF size also counts headers and LIST chunks, so measure the
	// data chunk itself.
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("read %s data chunk: %w: %w", audioPath, ErrInputMalformed, err)
	}
	byteRate := int64(dec.SampleRate) * int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if byteRate <= 0 {
		return 0, fmt.Errorf("read %s: zero byte rate: %w", audioPath, ErrInputMalformed)
	}
	return time.Duration(int64(dec.PCMSize) * int64(time.Second) / byteRate), nil
}

// ExtractWindow cuts [start, end) out of audioPath into a fresh WAV at dest.
func (m *implMedia) ExtractWindow(ctx context.Context, audioPath string, start, end time.Duration, dest string) error {
	if end <= start {
		return fmt.Errorf("extract window: empty range %s-%s", start, end)
	}

	args := []string{
		"-y",
		"-ss", FormatSeconds(start),
		"-t", FormatSeconds(end - start),
		"-i", audioPath,
		"-c:a", "pcm_s16le",
		dest,
	}

	if _, err := m.executor.Execute(ctx, m.cfg.Binary, args...); err != nil {
		os.Remove(dest)
		return fmt.Errorf("ffmpeg extract window %s-%s: %w", start, end, err)
	}
	return nil
}

// FormatSeconds renders d as fractional seconds for ffmpeg time options.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
