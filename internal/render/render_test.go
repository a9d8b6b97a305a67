package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/segment"
	"github.com/nguyentantai21042004/gif-flow/internal/testsupport"
)

type renderEnv struct {
	temp   string
	output string
	fake   *testsupport.FakeExecutor
	r      Renderer
}

func newRenderEnv(t *testing.T, failOn string) *renderEnv {
	t.Helper()
	root := t.TempDir()
	env := &renderEnv{
		temp:   filepath.Join(root, "temp"),
		output: filepath.Join(root, "output"),
	}
	env.fake = &testsupport.FakeExecutor{
		Handler: func(ctx context.Context, call testsupport.Call) (string, error) {
			if failOn != "" && call.Has(failOn) {
				return "", errors.New("exit status 1")
			}
			return "", testsupport.TouchOutput(call)
		},
	}
	cfg := &config.Config{
		FFmpeg: config.FFmpegConfig{Binary: "ffmpeg", FontSize: 24, FPS: 10, Width: 320},
		Paths:  config.PathsConfig{Temp: env.temp, Output: env.output},
	}
	env.r = New(cfg, env.fake, logger.Nop())
	return env
}

func (e *renderEnv) entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range list {
		names = append(names, entry.Name())
	}
	return names
}

var testCaption = segment.Caption{Start: 3 * time.Second, End: 6 * time.Second, Text: "it's 100% fine: really"}

func TestRenderSuccess(t *testing.T) {
	env := newRenderEnv(t, "")

	art, err := env.r.Render(context.Background(), 4, testCaption, "video.mp4")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if art.SegmentIndex != 4 {
		t.Errorf("SegmentIndex = %d, want 4", art.SegmentIndex)
	}
	if filepath.Dir(art.ImagePath) != env.output || !strings.HasPrefix(filepath.Base(art.ImagePath), "segment_") || filepath.Ext(art.ImagePath) != ".gif" {
		t.Errorf("ImagePath = %q, want segment_*.gif in %s", art.ImagePath, env.output)
	}
	if _, err := os.Stat(art.ImagePath); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
	if left := env.entries(t, env.temp); len(left) != 0 {
		t.Errorf("scratch left behind: %v", left)
	}

	calls := env.fake.Calls()
	if len(calls) != 3 {
		t.Fatalf("got %d ffmpeg calls, want 3", len(calls))
	}
	clip := calls[0]
	if !clip.Has("drawtext=textfile=caption.txt") || !clip.Has("boxcolor=black@0.5") || !clip.Has("x=(w-text_w)/2") {
		t.Errorf("clip args missing caption overlay: %v", clip.Args)
	}
	if !filepath.IsAbs(clip.Args[2]) {
		t.Errorf("video path %q should be absolute", clip.Args[2])
	}
	if clip.Args[4] != "3.000" || clip.Args[6] != "6.000" {
		t.Errorf("clip range = %s-%s, want 3.000-6.000", clip.Args[4], clip.Args[6])
	}
	if !clip.Has("copy") {
		t.Errorf("clip should copy audio: %v", clip.Args)
	}
	if !calls[1].Has("fps=10,scale=320:-1:flags=lanczos,palettegen") {
		t.Errorf("palette args = %v", calls[1].Args)
	}
	if !calls[2].Has("fps=10,scale=320:-1:flags=lanczos[x];[x][1:v]paletteuse") || !calls[2].Has(paletteFile) {
		t.Errorf("animation args = %v", calls[2].Args)
	}
	for _, c := range calls {
		if c.Dir == "" {
			t.Errorf("ffmpeg should run inside the scratch dir: %+v", c)
		}
	}
}

func TestRenderCaptionWrittenVerbatim(t *testing.T) {
	root := t.TempDir()
	var caption string
	fake := &testsupport.FakeExecutor{
		Handler: func(ctx context.Context, call testsupport.Call) (string, error) {
			if call.Has("drawtext") {
				data, err := os.ReadFile(filepath.Join(call.Dir, captionFile))
				if err != nil {
					return "", err
				}
				caption = string(data)
			}
			return "", testsupport.TouchOutput(call)
		},
	}
	cfg := &config.Config{
		FFmpeg: config.FFmpegConfig{Binary: "ffmpeg", FontSize: 24, FPS: 10, Width: 320},
		Paths:  config.PathsConfig{Temp: filepath.Join(root, "t"), Output: filepath.Join(root, "o")},
	}

	if _, err := New(cfg, fake, logger.Nop()).Render(context.Background(), 0, testCaption, "v.mp4"); err != nil {
		t.Fatal(err)
	}
	if caption != testCaption.Text {
		t.Errorf("caption file = %q, want %q", caption, testCaption.Text)
	}
}

func TestRenderStageFailures(t *testing.T) {
	tests := []struct {
		name      string
		failOn    string
		wantStage Stage
		wantCalls int
	}{
		{"clip cut fails", "drawtext", StageClip, 1},
		{"palette fails", "palettegen", StagePalette, 2},
		{"animation fails", "paletteuse", StageAnimation, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newRenderEnv(t, tt.failOn)

			_, err := env.r.Render(context.Background(), 7, testCaption, "video.mp4")
			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("Render() error = %v, want *StageError", err)
			}
			if stageErr.Stage != tt.wantStage || stageErr.Segment != 7 {
				t.Errorf("StageError = %+v, want stage %s segment 7", stageErr, tt.wantStage)
			}
			if got := len(env.fake.Calls()); got != tt.wantCalls {
				t.Errorf("ffmpeg calls = %d, want %d", got, tt.wantCalls)
			}
			if left := env.entries(t, env.temp); len(left) != 0 {
				t.Errorf("scratch files left behind: %v", left)
			}
			if out := env.entries(t, env.output); len(out) != 0 {
				t.Errorf("output should be empty, got %v", out)
			}
		})
	}
}

func TestRenderClipCutFailureCreatesNoLaterFiles(t *testing.T) {
	env := newRenderEnv(t, "drawtext")

	if _, err := env.r.Render(context.Background(), 0, testCaption, "video.mp4"); err == nil {
		t.Fatal("Render() should fail")
	}
	if calls := env.fake.CallsWith("palette"); len(calls) != 0 {
		t.Errorf("palette/animation steps ran after clip failure: %+v", calls)
	}
}

func TestRenderAnimationFailureRemovesClip(t *testing.T) {
	root := t.TempDir()
	var clipPath string
	fake := &testsupport.FakeExecutor{
		Handler: func(ctx context.Context, call testsupport.Call) (string, error) {
			if call.Has("paletteuse") {
				clipPath = filepath.Join(call.Dir, clipFile)
				if _, err := os.Stat(clipPath); err != nil {
					t.Errorf("clip should exist during assembly: %v", err)
				}
				return "", errors.New("exit status 1")
			}
			return "", testsupport.TouchOutput(call)
		},
	}
	cfg := &config.Config{
		FFmpeg: config.FFmpegConfig{Binary: "ffmpeg", FontSize: 24, FPS: 10, Width: 320},
		Paths:  config.PathsConfig{Temp: filepath.Join(root, "t"), Output: filepath.Join(root, "o")},
	}

	if _, err := New(cfg, fake, logger.Nop()).Render(context.Background(), 0, testCaption, "v.mp4"); err == nil {
		t.Fatal("Render() should fail")
	}
	if clipPath == "" {
		t.Fatal("assembly stage never ran")
	}
	if _, err := os.Stat(clipPath); !os.IsNotExist(err) {
		t.Errorf("clip %s should be removed, stat err = %v", clipPath, err)
	}
}

func TestRenderCancelled(t *testing.T) {
	env := newRenderEnv(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.r.Render(ctx, 0, testCaption, "video.mp4")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if left := env.entries(t, env.temp); len(left) != 0 {
		t.Errorf("scratch files left behind: %v", left)
	}
	if out := env.entries(t, env.output); len(out) != 0 {
		t.Errorf("no artifact should be published, got %v", out)
	}
}

func TestRenderUniqueNames(t *testing.T) {
	env := newRenderEnv(t, "")
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		art, err := env.r.Render(context.Background(), i, testCaption, "video.mp4")
		if err != nil {
			t.Fatal(err)
		}
		if seen[art.ImagePath] {
			t.Errorf("duplicate artifact path %s", art.ImagePath)
		}
		seen[art.ImagePath] = true
	}
}
