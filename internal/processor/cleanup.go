package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/gif-flow/internal/render"
)

// moveToArchived moves the source video into the archive folder
func (p *implProcessor) moveToArchived(ctx context.Context, videoPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(videoPath))

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", videoPath, destPath)

	if err := os.Rename(videoPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// discardArtifacts removes outputs of a job that did not complete.
func (p *implProcessor) discardArtifacts(ctx context.Context, artifacts []render.Artifact) {
	for _, art := range artifacts {
		if err := os.Remove(art.ImagePath); err != nil && !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to discard artifact %s: %v", art.ImagePath, err)
		}
	}
}

// cleanupTempDir removes the job work dir, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
