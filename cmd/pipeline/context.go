package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/logger"
	"github.com/nguyentantai21042004/gif-flow/internal/processor"
	"github.com/nguyentantai21042004/gif-flow/internal/transcriber"
	"github.com/nguyentantai21042004/gif-flow/pkg/executor"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config %s: %w", path, err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// pipeline wires config, logger and processor for a command, after checking
// that every external tool is installed.
func (c *commandContext) pipeline() (*config.Config, logger.Logger, processor.Processor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := preflight(cfg); err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	exec := executor.New(cfg.FFmpeg.Timeout())

	backend, err := transcriber.NewBackend(cfg, exec, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, processor.New(cfg, exec, backend, log), nil
}
