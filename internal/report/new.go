package report

import (
	"time"

	"github.com/nguyentantai21042004/gif-flow/internal/logger"
)

type implReporter struct {
	dir    string
	logger logger.Logger
	now    func() time.Time
}

// New creates a Reporter that writes DOCX files into dir.
func New(dir string, log logger.Logger) Reporter {
	return &implReporter{
		dir:    dir,
		logger: log,
		now:    time.Now,
	}
}
