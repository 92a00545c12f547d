package cli

// This file contains the view command for displaying one recorded run.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/testrig/testrig/history"
	"github.com/urfave/cli/v2"
)

func (a *App) view(ctx *cli.Context) error {
	id := "0"
	if ctx.Args().Len() > 0 {
		id = ctx.Args().First()
	}

	historyRoot, err := history.GetHistoryRoot()
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, historyRoot)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no runs found")
	}

	// Sort by timestamp (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Record.Timestamp.After(entries[j].Record.Timestamp)
	})

	entry, err := resolveEntry(entries, id)
	if err != nil {
		return err
	}

	record := entry.Record
	fmt.Printf("Run %s\n", record.ID)
	fmt.Printf("   Target: %s\n", record.Target)
	fmt.Printf("   Started: %s\n", record.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("   Duration: %s\n", record.Duration.Round(time.Millisecond))
	fmt.Printf("   Exit code: %d\n", record.ExitCode)
	if record.Git != nil && record.Git.Commit != "" {
		fmt.Printf("   Commit: %s (%s)\n", record.Git.Commit, record.Git.Branch)
	}

	if settings := record.Settings; settings != nil {
		fmt.Printf("   Executable: %s\n", settings.Executable)
		if len(settings.Arguments) > 0 {
			fmt.Printf("   Arguments: %s\n", strings.Join(settings.Arguments, " "))
		}
		if settings.RunUnder != "" {
			fmt.Printf("   Run under: %s\n", settings.RunUnder)
		}
		if settings.TestFilter != "" {
			fmt.Printf("   Test filter: %s\n", settings.TestFilter)
		}
		if settings.TotalShards > 0 {
			fmt.Printf("   Total shards: %d\n", settings.TotalShards)
		}
	}

	for _, shard := range record.Shards {
		status := "✓"
		if shard.ExitCode != 0 {
			status = "✗"
		}
		fmt.Printf("   %s shard %d  [%s]  exit=%d\n", status, shard.Index, shard.Duration.Round(time.Millisecond), shard.ExitCode)
		if shard.StdoutFile != "" {
			fmt.Printf("      stdout: %s\n", filepath.Join(entry.FullPath, shard.StdoutFile))
		}
		if shard.StderrFile != "" {
			fmt.Printf("      stderr: %s\n", filepath.Join(entry.FullPath, shard.StderrFile))
		}
	}

	// Print the first failing shard's output, if captured
	for _, shard := range record.Shards {
		if shard.ExitCode == 0 || shard.StdoutFile == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(entry.FullPath, shard.StdoutFile))
		if err != nil {
			a.logger.Warn().Err(err).Msg("Failed to read shard output")
			break
		}
		fmt.Printf("\n--- shard %d stdout ---\n%s", shard.Index, data)
		break
	}

	return nil
}

// resolveEntry selects a history entry by index ("0", "-1", ...) or hex ID
// prefix. Entries must be sorted newest first.
func resolveEntry(entries []history.Entry, id string) (history.Entry, error) {
	if index, err := strconv.Atoi(id); err == nil {
		offset := -index
		if index > 0 {
			return history.Entry{}, fmt.Errorf("invalid index %q: use 0, -1, -2, ... or a hex ID prefix", id)
		}
		if offset >= len(entries) {
			return history.Entry{}, fmt.Errorf("index %q out of range: only %d runs recorded", id, len(entries))
		}
		return entries[offset], nil
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Record.ID, id) {
			return entry, nil
		}
	}
	return history.Entry{}, fmt.Errorf("no run matching ID prefix %q", id)
}
