package report

import (
	"archive/zip"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/render"
	"github.com/nguyentantai21042004/gif-flow/internal/segment"
	"github.com/nguyentantai21042004/gif-flow/internal/transcriber"
)

func readDocumentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(data)
	}
	t.Fatalf("word/document.xml not found in %s", path)
	return ""
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, logger.Nop())

	job := Job{
		ID:        "abc12345",
		VideoPath: "/videos/talk.mp4",
		Duration:  20 * time.Second,
		Results: []transcriber.Result{
			{Chunk: transcriber.Chunk{Index: 0, Start: 0, End: 15 * time.Second}, Text: "alpha beta gamma"},
			{Chunk: transcriber.Chunk{Index: 1, Start: 15 * time.Second, End: 20 * time.Second}, Text: "delta epsilon"},
		},
		Captions: []segment.Caption{
			{Start: 0, End: 3 * time.Second, Text: "alpha beta"},
			{Start: 3 * time.Second, End: 6 * time.Second, Text: "gamma"},
		},
		Artifacts: []render.Artifact{
			{SegmentIndex: 0, ImagePath: "/out/segment_one.gif"},
		},
	}

	path, err := r.Write(context.Background(), job)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(dir, "talk_abc12345.docx"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}

	body := readDocumentXML(t, path)
	for _, want := range []string{"alpha beta gamma", "delta epsilon", "segment_one.gif", "not rendered", "00:00:15.000"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteReportCancelled(t *testing.T) {
	r := New(t.TempDir(), logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Write(ctx, Job{ID: "x", VideoPath: "a.mp4"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{1500 * time.Millisecond, "00:00:01.500"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03.000"},
	}
	for _, tt := range tests {
		if got := formatOffset(tt.in); got != tt.want {
			t.Errorf("formatOffset(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
