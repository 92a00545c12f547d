package cli

// This file contains run recording functionality for saving run metadata
// and shard outputs to the history directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/testrig/testrig/model"
	"github.com/testrig/testrig/testexec"
)

// settingsSummary snapshots frozen execution settings for the run record.
func settingsSummary(settings *testexec.ExecutionSettings) *model.SettingsSummary {
	summary := &model.SettingsSummary{
		Arguments:   settings.Args(),
		Environment: settings.TestEnv(),
		TestFilter:  settings.TestFilter(),
		TotalShards: settings.TotalShards(),
		Executable:  settings.Executable().ExecPath(),
	}
	if runUnder := settings.RunUnder(); runUnder != nil {
		summary.RunUnder = runUnder.Value()
	}
	if executable := settings.RunUnderExecutable(); executable != nil {
		summary.RunUnderExecutable = executable.ExecPath()
	}
	if manifest := settings.Manifest(); manifest != nil {
		summary.RunfilesManifest = manifest.ExecPath()
	}
	if inputManifest := settings.InputManifest(); inputManifest != nil {
		summary.RunfilesInputManifest = inputManifest.ExecPath()
	}
	if instrumented := settings.InstrumentedFileManifest(); instrumented != nil {
		summary.InstrumentedFileManifest = instrumented.ExecPath()
	}
	return summary
}

// prepareRunDir creates the history directory for a run so that shard
// outputs can be written directly to it.
func (a *App) prepareRunDir(record *model.Record) (string, error) {
	// Get repository root
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	repoRoot := strings.TrimSpace(string(output))

	if record.Git != nil {
		record.Git.Repo = filepath.Base(repoRoot)
	}

	// Get relative path from repo root
	relPath := "."
	if record.WorkDir != "" {
		if rel, err := filepath.Rel(repoRoot, record.WorkDir); err == nil {
			relPath = rel
		}
	}
	record.WorkDir = relPath

	// Create directory in .testrig/history/<timestamp>-<commit>-<id>
	timestamp := record.Timestamp.Format("20060102-150405")
	shortCommit := "nocommit"
	if record.Git != nil && record.Git.Commit != "" {
		shortCommit = record.Git.Commit
		if len(shortCommit) > 8 {
			shortCommit = shortCommit[:8]
		}
	}
	shortID := record.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	runName := fmt.Sprintf("%s-%s-%s", timestamp, shortCommit, shortID)
	runDir := filepath.Join(repoRoot, ".testrig", "history", runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	return runDir, nil
}

// recordRun registers shard output artifacts and writes the run metadata.
func (a *App) recordRun(record *model.Record, runDir string) error {
	for _, shard := range record.Shards {
		for _, output := range []struct {
			file         string
			artifactType model.ArtifactType
		}{
			{shard.StdoutFile, model.ArtifactTypeStdout},
			{shard.StderrFile, model.ArtifactTypeStderr},
		} {
			if output.file == "" {
				continue
			}
			if info, err := os.Stat(filepath.Join(runDir, output.file)); err == nil {
				record.Artifacts = append(record.Artifacts, model.Artifact{
					Type: output.artifactType,
					Size: uint64(info.Size()),
					File: output.file,
				})
			}
		}
	}

	metadataPath := filepath.Join(runDir, "record.json")
	metadataJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if err := os.WriteFile(metadataPath, metadataJSON, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	a.logger.Debug().Str("dir", runDir).Str("id", record.ID).Msg("Recorded run")
	return nil
}
