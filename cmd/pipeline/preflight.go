package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/nguyentantai21042004/gif-flow/internal/config"
)

var lookPath = exec.LookPath

// requiredTools lists the binaries the configured pipeline will invoke.
func requiredTools(cfg *config.Config) []string {
	tools := []string{cfg.FFmpeg.Binary, cfg.FFmpeg.ProbeBinary}
	if cfg.Transcriber.Backend == config.BackendWhisper {
		tools = append(tools, cfg.Whisper.BinaryPath)
	}
	return tools
}

// preflight fails fast when a required tool is not installed.
func preflight(cfg *config.Config) error {
	var missing []string
	for _, tool := range requiredTools(cfg) {
		if _, err := lookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required tools not found on PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
