package processor

import (
	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/media"
	"github.com/nguyentantai21042004/gif-flow/internal/render"
	"github.com/nguyentantai21042004/gif-flow/internal/report"
	"github.com/nguyentantai21042004/gif-flow/internal/transcriber"
	"github.com/nguyentantai21042004/gif-flow/pkg/executor"
)

type implProcessor struct {
	cfg         *config.Config
	media       media.Media
	transcriber transcriber.Transcriber
	renderer    render.Renderer
	reporter    report.Reporter
	logger      logger.Logger
}

// New creates a new Processor instance. The executor runs every media tool
// invocation; the backend serves every transcription call.
func New(cfg *config.Config, exec executor.Executor, backend transcriber.Backend, log logger.Logger) Processor {
	m := media.New(cfg.FFmpeg, exec, log)

	var rep report.Reporter
	if cfg.Report.Enabled {
		rep = report.New(cfg.Paths.Reports, log)
	}

	return &implProcessor{
		cfg:         cfg,
		media:       m,
		transcriber: transcriber.New(cfg, m, backend, log),
		renderer:    render.New(cfg, exec, log),
		reporter:    rep,
		logger:      log,
	}
}
