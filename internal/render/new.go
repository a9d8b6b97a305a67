package render

import (
	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/pkg/executor"
)

type implRenderer struct {
	ffmpeg    config.FFmpegConfig
	tempDir   string
	outputDir string
	executor  executor.Executor
	logger    logger.Logger
}

// New creates a Renderer that keeps scratch files under paths.temp and
// publishes finished GIFs into paths.output.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Renderer {
	return &implRenderer{
		ffmpeg:    cfg.FFmpeg,
		tempDir:   cfg.Paths.Temp,
		outputDir: cfg.Paths.Output,
		executor:  exec,
		logger:    log,
	}
}
