package cli

// This file contains the list command for displaying previous runs.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/testrig/testrig/history"
	"github.com/testrig/testrig/model"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	targetFilter := ctx.String("target")
	limit := ctx.Int("limit")

	historyRoot, err := history.GetHistoryRoot()
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, historyRoot)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// Apply target filter if specified
	var filtered []history.Entry
	for _, entry := range entries {
		if targetFilter == "" || strings.Contains(entry.Record.Target, targetFilter) {
			filtered = append(filtered, entry)
		}
	}

	if len(filtered) == 0 {
		if targetFilter != "" {
			fmt.Printf("No runs found matching target: %s\n", targetFilter)
		} else {
			fmt.Println("No runs found")
		}
		return nil
	}

	// Sort by timestamp (newest first)
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Record.Timestamp.After(filtered[j].Record.Timestamp)
	})

	// Apply limit
	displayRuns := filtered
	if limit > 0 && limit < len(displayRuns) {
		displayRuns = displayRuns[:limit]
	}

	fmt.Printf("\n=== Runs (%d total) ===\n\n", len(filtered))

	for _, entry := range displayRuns {
		record := entry.Record
		timestamp := record.Timestamp.Format("2006-01-02 15:04:05")

		// Format duration
		duration := record.Duration.Round(time.Millisecond)

		// Determine status indicator
		status := "✓"
		if record.ExitCode != 0 {
			status = "✗"
		}

		// Show short ID (first 8 chars)
		shortID := record.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Printf("%s  %s  [%s]  exit=%d  id=%s\n", status, timestamp, duration, record.ExitCode, shortID)
		if record.Target != "" {
			fmt.Printf("   Target: %s\n", record.Target)
		}
		if len(record.Shards) > 0 {
			var failedShards int
			for _, shard := range record.Shards {
				if shard.ExitCode != 0 {
					failedShards++
				}
			}
			fmt.Printf("   Shards: %d (%d failed)\n", len(record.Shards), failedShards)
		}
		if record.Git != nil && record.Git.Commit != "" {
			shortCommit := record.Git.Commit
			if len(shortCommit) > 8 {
				shortCommit = shortCommit[:8]
			}
			fmt.Printf("   Commit: %s", shortCommit)
			if record.Git.Branch != "" {
				fmt.Printf(" (%s)", record.Git.Branch)
			}
			fmt.Println()
		}
		if len(record.Artifacts) > 0 {
			for _, artifact := range record.Artifacts {
				var typeName string
				switch artifact.Type {
				case model.ArtifactTypeStdout:
					typeName = "stdout"
				case model.ArtifactTypeStderr:
					typeName = "stderr"
				case model.ArtifactTypeSettings:
					typeName = "settings"
				}
				if typeName != "" {
					fmt.Printf("   %s: %s (%.1f KB)\n", typeName, artifact.File, float64(artifact.Size)/1024)
				}
			}
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	fmt.Println("\nView run details: testrig view <ID>")

	return nil
}
