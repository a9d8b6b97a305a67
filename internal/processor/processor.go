package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/gif-flow/internal/render"
	"github.com/nguyentantai21042004/gif-flow/internal/report"
	"github.com/nguyentantai21042004/gif-flow/internal/segment"
)

// Process orchestrates the entire video processing pipeline
func (p *implProcessor) Process(ctx context.Context, videoPath string) ([]render.Artifact, error) {
	startTime := time.Now()
	jobID := uuid.NewString()[:8]
	log := p.logger.With("job", jobID)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Starting video processing: %s", videoPath)
	log.Info(ctx, "========================================")

	// Step 1: Probe the source
	probe, err := p.media.Probe(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe video: %w", err)
	}
	log.Info(ctx, "Source duration %s, %d video / %d audio streams",
		probe.Duration().Round(time.Millisecond), probe.VideoStreamCount(), probe.AudioStreamCount())

	// Step 2: Working directories
	workDir, err := p.prepareDirs(jobID)
	if err != nil {
		return nil, err
	}
	defer p.cleanupTempDir(ctx, workDir)

	// Step 3: Extract audio
	audioPath, err := p.media.ExtractAudio(ctx, videoPath, workDir)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	duration, err := p.media.AudioDuration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	// Step 4: Transcribe in windows
	results, err := p.transcriber.Transcribe(ctx, audioPath, duration, workDir)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	// Step 5: Plan caption windows
	captions := segment.Plan(results, p.cfg.Pipeline.WordsPerSegment, p.cfg.Pipeline.SegmentLength())
	log.Info(ctx, "Planned %d caption segments from %d transcribed chunks", len(captions), len(results))

	// Step 6: Render each caption
	artifacts, err := p.renderAll(ctx, log, videoPath, captions)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	// Step 7: Optional transcript report
	if p.reporter != nil {
		job := report.Job{
			ID:        jobID,
			VideoPath: videoPath,
			Duration:  duration,
			Results:   results,
			Captions:  captions,
			Artifacts: artifacts,
		}
		if path, err := p.reporter.Write(ctx, job); err != nil {
			log.Warn(ctx, "Failed to write report: %v", err)
		} else {
			log.Info(ctx, "Report written: %s", path)
		}
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Processing completed: %d/%d segments rendered", len(artifacts), len(captions))
	log.Info(ctx, "Processing time: %s", time.Since(startTime))
	log.Info(ctx, "========================================")

	return artifacts, nil
}

// ProcessAndArchive is the watch-folder handler: process, then archive the
// source whether or not any segment rendered.
func (p *implProcessor) ProcessAndArchive(ctx context.Context, videoPath string) error {
	artifacts, err := p.Process(ctx, videoPath)
	if err != nil {
		return err
	}
	for _, art := range artifacts {
		p.logger.Info(ctx, "Artifact: %s", filepath.Base(art.ImagePath))
	}

	if err := p.moveToArchived(ctx, videoPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}
	return nil
}

// prepareDirs makes sure the temp and output roots exist and creates the
// per-job work dir for audio and window files.
func (p *implProcessor) prepareDirs(jobID string) (string, error) {
	for _, dir := range []string{p.cfg.Paths.Temp, p.cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	workDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "job-"+jobID+"-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return workDir, nil
}
