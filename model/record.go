package model

import "time"

// Record represents a single testrig run of one test target, possibly
// split into shards.
type Record struct {
	// Unique ID for this run (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Timestamp when the run started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Working directory where the run started (relative to repo root)
	WorkDir string `json:"workdir"`
	// Label of the test target
	Target string `json:"target"`
	// Highest shard exit code (0 when every shard passed)
	ExitCode int `json:"exit_code"`
	// Total duration across all shards
	Duration time.Duration `json:"duration"`
	// Git information
	Git *Git `json:"git,omitempty"`
	// Frozen settings summary the shards were derived from
	Settings *SettingsSummary `json:"settings,omitempty"`
	// Per-shard results, one per shard action
	Shards []ShardResult `json:"shards,omitempty"`
	// Artifacts generated during this run
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// Git contains git repository information
type Git struct {
	// Git commit hash at time of execution
	Commit string `json:"commit,omitempty"`
	// Git branch at time of execution
	Branch string `json:"branch,omitempty"`
	// Repository name
	Repo string `json:"repo,omitempty"`
}

// SettingsSummary is the JSON snapshot of the frozen execution settings a
// run was derived from.
type SettingsSummary struct {
	// Final test-invocation argument list
	Arguments []string `json:"arguments,omitempty"`
	// Environment variables for the test process
	Environment map[string]string `json:"environment,omitempty"`
	// Build-wide test filter expression
	TestFilter string `json:"test_filter,omitempty"`
	// Number of shards; 0 means no sharding
	TotalShards int `json:"total_shards"`
	// Verbatim run-under option value
	RunUnder string `json:"run_under,omitempty"`
	// Exec path of the resolved run-under executable
	RunUnderExecutable string `json:"run_under_executable,omitempty"`
	// Exec path of the test executable
	Executable string `json:"executable"`
	// Exec path of the runfiles manifest
	RunfilesManifest string `json:"runfiles_manifest,omitempty"`
	// Exec path of the runfiles input manifest
	RunfilesInputManifest string `json:"runfiles_input_manifest,omitempty"`
	// Exec path of the instrumented file manifest
	InstrumentedFileManifest string `json:"instrumented_file_manifest,omitempty"`
}

// ShardResult is the outcome of one shard action.
type ShardResult struct {
	// Shard index, 0-based
	Index int `json:"index"`
	// Exit code of the shard process
	ExitCode int `json:"exit_code"`
	// Duration of the shard process
	Duration time.Duration `json:"duration"`
	// Standard output file name (relative to run dir)
	StdoutFile string `json:"stdout_file,omitempty"`
	// Standard error file name (relative to run dir)
	StderrFile string `json:"stderr_file,omitempty"`
}

// ArtifactType identifies the type of artifact
type ArtifactType uint8

const (
	ArtifactTypeStdout ArtifactType = iota
	ArtifactTypeStderr
	ArtifactTypeSettings
)

// Artifact represents a file generated during a run
type Artifact struct {
	Type ArtifactType `json:"type"`
	Size uint64       `json:"size"`
	File string       `json:"file"` // relative to run dir
}
