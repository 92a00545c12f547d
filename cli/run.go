package cli

// This file contains the run command: execute every shard action derived
// from the frozen execution settings and record the results.

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/testrig/testrig/model"
	"github.com/urfave/cli/v2"
)

func (a *App) run(ctx *cli.Context) error {
	planned, err := a.loadPlannedTargets(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, target := range planned {
		if err := a.runTarget(target); err != nil {
			a.logger.Error().Err(err).
				Stringer("target", target.entry.RuleContext.Target().Label()).
				Msg("Target failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, len(planned))
	}
	return nil
}

func (a *App) runTarget(target plannedTarget) error {
	startTime := time.Now()
	settings := target.settings
	label := target.entry.RuleContext.Target().Label()

	// Generate random 16-byte ID
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}

	record := &model.Record{
		ID:        hex.EncodeToString(idBytes),
		Timestamp: startTime,
		Args:      os.Args,
		Target:    label.String(),
		Settings:  settingsSummary(settings),
	}

	if cwd, err := os.Getwd(); err == nil {
		record.WorkDir = cwd
	}

	// Capture git info (non-fatal if it fails)
	if commit, branch, err := a.getGitInfo(); err == nil {
		record.Git = &model.Git{
			Commit: commit,
			Branch: branch,
		}
	}

	runDir, err := a.prepareRunDir(record)
	if err != nil {
		return fmt.Errorf("failed to prepare run directory: %w", err)
	}

	a.logger.Info().
		Stringer("target", label).
		Int("shards", settings.TotalShards()).
		Str("command", quoteCommand(shardCommand(settings))).
		Msg("Executing test target")

	for _, index := range shardIndexes(settings.TotalShards()) {
		result := a.runShard(settings, index, runDir)
		record.Shards = append(record.Shards, result)
		if result.ExitCode > record.ExitCode {
			record.ExitCode = result.ExitCode
		}
	}

	record.Duration = time.Since(startTime)

	// Record the run (non-fatal if it fails)
	if err := a.recordRun(record, runDir); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record run")
	}

	if record.ExitCode != 0 {
		return fmt.Errorf("tests failed with exit code %d", record.ExitCode)
	}

	a.logger.Info().Stringer("target", label).Msg("Tests completed successfully")
	return nil
}
