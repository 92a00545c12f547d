// Package testexec freezes the execution settings shared by every shard
// of a single test target under one build configuration.
package testexec

import (
	"dario.cat/mergo"
	"github.com/testrig/testrig/buildcfg"
	"github.com/testrig/testrig/graph"
	"github.com/testrig/testrig/runfiles"
)

// RunUnderPrerequisite is the logical attribute name under which the
// resolved run-under wrapper target appears among a test target's data
// prerequisites.
const RunUnderPrerequisite = ":run_under"

// ExecutionSettings is the frozen per-target test configuration. It is
// constructed once per target and build configuration, then shared
// read-only across all shard actions derived from it.
type ExecutionSettings struct {
	arguments                []string
	environment              map[string]string
	testFilter               string
	totalShards              int
	runUnder                 *buildcfg.RunUnder
	runUnderExecutable       *graph.Artifact
	executable               *graph.Artifact
	runfilesManifest         *graph.Artifact
	runfilesInputManifest    *graph.Artifact
	instrumentedFileManifest *graph.Artifact
}

// New merges the target-declared settings, the build-wide configuration
// and the runfiles descriptor into one immutable record.
//
// The target named by ruleContext must be a test rule and shards must be
// non-negative; violating either returns an *InvariantError, since neither
// condition is reachable from user input in a correctly wired pipeline.
func New(ruleContext *graph.RuleContext, rf *runfiles.Support, config *buildcfg.Configuration, executable, instrumentedFileManifest *graph.Artifact, shards int) (*ExecutionSettings, error) {
	target := ruleContext.Target()
	if !graph.IsTestRule(target) {
		return nil, invariantErrorf("target %s is not a test rule (rule class %q)", target.Label(), target.RuleClass())
	}
	if shards < 0 {
		return nil, invariantErrorf("target %s: negative shard count %d", target.Label(), shards)
	}
	if executable == nil {
		return nil, invariantErrorf("target %s: missing test executable", target.Label())
	}

	// Target-declared arguments come first so that build-wide flags can
	// override or supplement them positionally. When the target declares
	// none, the build-wide list is passed through unchanged.
	targetArgs := rf.Args()
	arguments := config.TestArguments()
	if len(targetArgs) > 0 {
		merged := make([]string, 0, len(targetArgs)+len(arguments))
		merged = append(merged, targetArgs...)
		merged = append(merged, arguments...)
		arguments = merged
	}

	environment, err := mergeTestEnv(config.TestEnv(), nil)
	if err != nil {
		return nil, err
	}

	runUnderExecutable, err := resolveRunUnderExecutable(ruleContext)
	if err != nil {
		return nil, err
	}

	return &ExecutionSettings{
		arguments:                arguments,
		environment:              environment,
		testFilter:               config.TestFilter(),
		totalShards:              shards,
		runUnder:                 config.RunUnder(),
		runUnderExecutable:       runUnderExecutable,
		executable:               executable,
		runfilesManifest:         rf.Manifest(),
		runfilesInputManifest:    rf.InputManifest(),
		instrumentedFileManifest: instrumentedFileManifest,
	}, nil
}

// mergeTestEnv layers the build-wide test environment over extra, with
// build-wide keys winning on conflict. extra is the seam for a future
// layer of target-level overrides; nothing populates it today.
func mergeTestEnv(configEnv, extra map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(extra)+len(configEnv))
	for key, value := range extra {
		merged[key] = value
	}
	if len(configEnv) == 0 {
		return merged, nil
	}
	if err := mergo.Merge(&merged, configEnv, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}

// resolveRunUnderExecutable looks up the run-under wrapper among the
// target's data prerequisites. An absent prerequisite means the wrapper is
// not built by this build (or there is no wrapper); a present prerequisite
// without a files-to-run provider is malformed wiring.
func resolveRunUnderExecutable(ruleContext *graph.RuleContext) (*graph.Artifact, error) {
	prereq := ruleContext.Prerequisite(RunUnderPrerequisite, graph.ModeData)
	if prereq == nil {
		return nil, nil
	}
	filesToRun := prereq.FilesToRun()
	if filesToRun == nil {
		return nil, &ConfigurationError{
			Target:  ruleContext.Target().Label(),
			Missing: "run-under prerequisite " + prereq.Label().String() + " does not provide files to run",
		}
	}
	return filesToRun.Executable(), nil
}

// Args returns the final test-invocation argument list. Callers must not
// modify the returned slice.
func (s *ExecutionSettings) Args() []string {
	return s.arguments
}

// TestEnv returns the environment variables for the test process. Callers
// must not modify the returned map.
func (s *ExecutionSettings) TestEnv() map[string]string {
	return s.environment
}

// TestFilter returns the build-wide test filter expression, passed through
// verbatim, or the empty string when no filter is set.
func (s *ExecutionSettings) TestFilter() string {
	return s.testFilter
}

// TotalShards returns the number of shards this target's test is split
// into; 0 means no sharding.
func (s *ExecutionSettings) TotalShards() int {
	return s.totalShards
}

// RunUnder returns the wrapper descriptor from the build configuration,
// copied verbatim, or nil when tests run directly.
func (s *ExecutionSettings) RunUnder() *buildcfg.RunUnder {
	return s.runUnder
}

// RunUnderExecutable returns the resolved executable backing the run-under
// wrapper, or nil when the wrapper is not built by this build.
func (s *ExecutionSettings) RunUnderExecutable() *graph.Artifact {
	return s.runUnderExecutable
}

// Executable returns the test's main executable artifact.
func (s *ExecutionSettings) Executable() *graph.Artifact {
	return s.executable
}

// Manifest returns the manifest of the runfiles tree used at run time.
//
// This is the manifest inside the runfiles tree when symlink trees are
// materialized, and the input manifest outside of it otherwise.
func (s *ExecutionSettings) Manifest() *graph.Artifact {
	return s.runfilesManifest
}

// InputManifest returns the runfiles manifest outside of the runfiles
// tree, regardless of whether a symlink tree is materialized.
func (s *ExecutionSettings) InputManifest() *graph.Artifact {
	return s.runfilesInputManifest
}

// InstrumentedFileManifest returns the instrumented file manifest, or nil
// when code coverage is not collected.
func (s *ExecutionSettings) InstrumentedFileManifest() *graph.Artifact {
	return s.instrumentedFileManifest
}
