package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/gif-flow/internal/media"
	"github.com/nguyentantai21042004/gif-flow/internal/segment"
)

// Scratch file names. FFmpeg runs inside the scratch dir so filter graphs
// only ever see these relative names.
const (
	captionFile   = "caption.txt"
	clipFile      = "clip.mp4"
	paletteFile   = "palette.png"
	animationFile = "animation.gif"
)

// Render cuts the caption window out of the video with the text burned in,
// then builds a GIF with a generated palette. The intermediate clip and
// palette never leave the scratch dir, which is removed before returning.
func (r *implRenderer) Render(ctx context.Context, index int, caption segment.Caption, videoPath string) (Artifact, error) {
	absVideo, err := filepath.Abs(videoPath)
	if err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StageScratch, Err: err}
	}

	scr, err := acquireScratch(r.tempDir, index)
	if err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StageScratch, Err: err}
	}
	defer func() {
		if err := scr.release(); err != nil {
			r.logger.Warn(ctx, "Failed to cleanup scratch dir %s: %v", scr.dir, err)
		}
	}()

	r.logger.Debug(ctx, "Rendering segment %d %s", index, caption)

	if err := r.cutClip(ctx, scr, absVideo, caption); err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StageClip, Err: err}
	}
	if err := r.generatePalette(ctx, scr); err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StagePalette, Err: err}
	}
	if err := r.assembleAnimation(ctx, scr); err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StageAnimation, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StagePublish, Err: err}
	}
	imagePath, err := r.publish(scr)
	if err != nil {
		return Artifact{}, &StageError{Segment: index, Stage: StagePublish, Err: err}
	}

	r.logger.Info(ctx, "Segment %d rendered: %s", index, imagePath)
	return Artifact{SegmentIndex: index, ImagePath: imagePath}, nil
}

// cutClip extracts [start, end) and burns the caption in, centered at the
// bottom on a semi-transparent box. Audio is copied untouched.
func (r *implRenderer) cutClip(ctx context.Context, scr *scratch, videoPath string, caption segment.Caption) error {
	if err := os.WriteFile(scr.path(captionFile), []byte(caption.Text), 0644); err != nil {
		return fmt.Errorf("write caption: %w", err)
	}

	args := []string{
		"-y",
		"-i", videoPath,
		"-ss", media.FormatSeconds(caption.Start),
		"-to", media.FormatSeconds(caption.End),
		"-vf", r.drawTextFilter(),
		"-c:a", "copy",
		clipFile,
	}
	if _, err := r.executor.ExecuteInDir(ctx, scr.dir, r.ffmpeg.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg cut clip: %w", err)
	}
	return nil
}

func (r *implRenderer) drawTextFilter() string {
	return fmt.Sprintf(
		"drawtext=textfile=%s:expansion=none:fontcolor=white:fontsize=%d:box=1:boxcolor=black@0.5:boxborderw=5:x=(w-text_w)/2:y=h-50",
		captionFile, r.ffmpeg.FontSize,
	)
}

// scaleFilter is shared by both palette passes so the palette matches the
// frames it is applied to.
func (r *implRenderer) scaleFilter() string {
	return "fps=" + strconv.Itoa(r.ffmpeg.FPS) + ",scale=" + strconv.Itoa(r.ffmpeg.Width) + ":-1:flags=lanczos"
}

func (r *implRenderer) generatePalette(ctx context.Context, scr *scratch) error {
	args := []string{
		"-y",
		"-i", clipFile,
		"-vf", r.scaleFilter() + ",palettegen",
		paletteFile,
	}
	if _, err := r.executor.ExecuteInDir(ctx, scr.dir, r.ffmpeg.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg palettegen: %w", err)
	}
	return nil
}

func (r *implRenderer) assembleAnimation(ctx context.Context, scr *scratch) error {
	args := []string{
		"-y",
		"-i", clipFile,
		"-i", paletteFile,
		"-filter_complex", r.scaleFilter() + "[x];[x][1:v]paletteuse",
		animationFile,
	}
	if _, err := r.executor.ExecuteInDir(ctx, scr.dir, r.ffmpeg.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg paletteuse: %w", err)
	}
	return nil
}

// publish moves the finished GIF into the output dir under a random name.
func (r *implRenderer) publish(scr *scratch) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := "segment_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ".gif"
	dest := filepath.Join(r.outputDir, name)

	if err := moveFile(scr.path(animationFile), dest); err != nil {
		return "", err
	}
	return dest, nil
}

// moveFile renames src to dst, falling back to copy when they live on
// different filesystems. A failed copy leaves no dst behind.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open rendered gif: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy artifact: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("close artifact: %w", err)
	}
	return nil
}
