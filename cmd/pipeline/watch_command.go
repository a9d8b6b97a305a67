package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
	"github.com/nguyentantai21042004/gif-flow/internal/watcher"
)

const lockFileName = ".gif-flow.lock"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process every video that lands in the input folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, proc, err := ctx.pipeline()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.Temp, lockFileName))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another gif-flow watcher is already running")
			}
			defer lock.Unlock()

			w, err := watcher.New(cfg.Paths.Input, proc.ProcessAndArchive, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			watchCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info(watchCtx, "========================================")
			log.Info(watchCtx, "GIF pipeline is ready (%s/%s, %d CPUs)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			log.Info(watchCtx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(watchCtx, "Output: %s", cfg.Paths.Output)
			log.Info(watchCtx, "Backend: %s, window %gs, %d words per segment",
				cfg.Transcriber.Backend, cfg.Pipeline.WindowSeconds, cfg.Pipeline.WordsPerSegment)
			log.Info(watchCtx, "Concurrent: %d videos, %d chunk requests, %d renders",
				cfg.Performance.MaxConcurrent, cfg.Pipeline.ConcurrencyCap, cfg.Pipeline.RenderConcurrency)
			log.Info(watchCtx, "Press Ctrl+C to stop")
			log.Info(watchCtx, "========================================")

			err = w.Start(watchCtx)
			log.Info(context.Background(), "GIF pipeline stopped")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
