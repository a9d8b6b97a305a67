package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/gif-flow/internal/render"
	"github.com/nguyentantai21042004/gif-flow/internal/segment"
	"github.com/nguyentantai21042004/gif-flow/internal/transcriber"
)

// Job is everything one pipeline run produced.
type Job struct {
	ID        string
	VideoPath string
	Duration  time.Duration
	Results   []transcriber.Result
	Captions  []segment.Caption
	Artifacts []render.Artifact
}

// Write builds the report as <video>_<job>.docx in the report dir.
func (r *implReporter) Write(ctx context.Context, job Job) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	videoName := strings.TrimSuffix(filepath.Base(job.VideoPath), filepath.Ext(job.VideoPath))
	outputPath := filepath.Join(r.dir, fmt.Sprintf("%s_%s.docx", videoName, job.ID))

	sections := []section{
		{
			heading: "Overview",
			lines: []string{
				"Source: " + filepath.Base(job.VideoPath),
				"Generated: " + r.now().Format("2006-01-02 15:04"),
				"Audio duration: " + formatOffset(job.Duration),
				fmt.Sprintf("Segments rendered: %d of %d", len(job.Artifacts), len(job.Captions)),
			},
		},
		{heading: "Transcript", lines: transcriptLines(job.Results)},
		{heading: "Segments", lines: segmentLines(job.Captions, job.Artifacts)},
	}

	if err := writeDocx(videoName, sections, outputPath); err != nil {
		return "", fmt.Errorf("write docx: %w", err)
	}

	r.logger.Debug(ctx, "Report for job %s saved to %s", job.ID, outputPath)
	return outputPath, nil
}

func transcriptLines(results []transcriber.Result) []string {
	if len(results) == 0 {
		return []string{"No intelligible speech was transcribed."}
	}
	lines := make([]string, 0, len(results))
	for _, res := range results {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s",
			formatOffset(res.Chunk.Start), formatOffset(res.Chunk.End), strings.TrimSpace(res.Text)))
	}
	return lines
}

// segmentLines lists every caption window and the image it became, or
// "not rendered" for segments that failed.
func segmentLines(captions []segment.Caption, artifacts []render.Artifact) []string {
	if len(captions) == 0 {
		return []string{"No caption segments."}
	}
	byIndex := make(map[int]string, len(artifacts))
	for _, art := range artifacts {
		byIndex[art.SegmentIndex] = filepath.Base(art.ImagePath)
	}

	lines := make([]string, 0, len(captions))
	for i, c := range captions {
		image, ok := byIndex[i]
		if !ok {
			image = "not rendered"
		}
		lines = append(lines, fmt.Sprintf("%d. [%s - %s] %s -> %s",
			i+1, formatOffset(c.Start), formatOffset(c.End), c.Text, image))
	}
	return lines
}

// formatOffset renders d as HH:MM:SS.mmm.
func formatOffset(d time.Duration) string {
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := (ms / 60_000) % 60
	s := (ms / 1000) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}
