package cli

// This file contains shard execution: running one shard action locally
// with the frozen settings' argv and environment.

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/testrig/testrig/model"
	"github.com/testrig/testrig/testexec"
)

func (a *App) runShard(settings *testexec.ExecutionSettings, index int, runDir string) model.ShardResult {
	argv := shardCommand(settings)

	a.logger.Debug().
		Int("shard", index).
		Strs("argv", argv).
		Msg("Starting shard execution")

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), shardEnv(settings, index)...)

	// Capture stdout and stderr for the run record
	var stdoutBuf, stderrBuf bytes.Buffer

	// Create multi-writers to both capture and display output
	cmd.Stdout = io.MultiWriter(os.Stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	start := time.Now()
	err := cmd.Run()

	result := model.ShardResult{
		Index:    index,
		Duration: time.Since(start),
	}

	if err != nil {
		// Test failures are expected to return non-zero exit codes
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			a.logger.Info().
				Int("shard", index).
				Int("exit_code", result.ExitCode).
				Msg("Shard completed with failures")
		} else {
			result.ExitCode = 1
			a.logger.Error().Err(err).Int("shard", index).Msg("Failed to execute shard")
		}
	}

	result.StdoutFile = a.writeShardOutput(runDir, fmt.Sprintf("stdout-%d.txt", index), stdoutBuf.Bytes())
	result.StderrFile = a.writeShardOutput(runDir, fmt.Sprintf("stderr-%d.txt", index), stderrBuf.Bytes())

	return result
}

// writeShardOutput writes captured shard output to the run directory and
// returns the relative file name, or the empty string when there was no
// output or the write failed.
func (a *App) writeShardOutput(runDir, name string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	path := filepath.Join(runDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		a.logger.Warn().Err(err).Str("file", path).Msg("Failed to write shard output")
		return ""
	}
	return name
}
