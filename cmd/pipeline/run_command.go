package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <video>",
		Short: "Process a single video and print the rendered segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, proc, err := ctx.pipeline()
			if err != nil {
				return err
			}
			defer log.Sync()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			artifacts, err := proc.Process(runCtx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(artifacts) == 0 {
				fmt.Fprintln(out, "No caption segments were rendered.")
				return nil
			}
			fmt.Fprintln(out, artifactTable(artifacts))
			return nil
		},
	}
}

