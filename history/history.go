package history

// This file contains shared history utilities for loading and parsing
// recorded runs.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/testrig/testrig/model"
)

type Entry struct {
	Record   model.Record
	FullPath string
}

// GetHistoryRoot returns the .testrig directory path from the git
// repository root.
func GetHistoryRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	repoRoot := strings.TrimSpace(string(output))
	historyRoot := filepath.Join(repoRoot, ".testrig")

	if _, err := os.Stat(historyRoot); os.IsNotExist(err) {
		return "", fmt.Errorf("no recorded runs found in %s", historyRoot)
	}

	return historyRoot, nil
}

// LoadEntries loads all recorded runs from the .testrig directory.
func LoadEntries(logger zerolog.Logger, historyRoot string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(historyRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			recordPath := filepath.Join(path, "record.json")
			if _, err := os.Stat(recordPath); err == nil {
				record, err := parseRecordJSON(recordPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", recordPath).Msg("Failed to parse record.json")
					return nil
				}

				entries = append(entries, Entry{
					Record:   record,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk .testrig directory: %w", err)
	}

	return entries, nil
}

// parseRecordJSON parses a record.json file.
func parseRecordJSON(recordPath string) (model.Record, error) {
	data, err := os.ReadFile(recordPath)
	if err != nil {
		return model.Record{}, err
	}

	var record model.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return model.Record{}, err
	}

	return record, nil
}
