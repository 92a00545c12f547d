// Package manifest loads the target manifest: the per-target test
// declarations the planner consumes in place of a full build-graph
// analysis phase.
package manifest

import (
	"fmt"
	"os"

	"github.com/testrig/testrig/buildcfg"
	"github.com/testrig/testrig/graph"
	"github.com/testrig/testrig/runfiles"
	"github.com/testrig/testrig/testexec"
	"gopkg.in/yaml.v3"
)

// fileTarget is the on-disk YAML form of one test target declaration.
type fileTarget struct {
	Label                 string   `yaml:"label"`
	RuleClass             string   `yaml:"rule_class"`
	Executable            string   `yaml:"executable"`
	Args                  []string `yaml:"args"`
	Shards                int      `yaml:"shards"`
	RunfilesManifest      string   `yaml:"runfiles_manifest"`
	RunfilesInputManifest string   `yaml:"runfiles_input_manifest"`
	RunUnderExecutable    string   `yaml:"run_under_executable"`
	InstrumentedManifest  string   `yaml:"instrumented_file_manifest"`
}

type fileManifest struct {
	Targets []fileTarget `yaml:"targets"`
}

// Entry is one test target with its collaborators resolved, ready to be
// handed to the settings aggregator.
type Entry struct {
	RuleContext              *graph.RuleContext
	Runfiles                 *runfiles.Support
	Executable               *graph.Artifact
	InstrumentedFileManifest *graph.Artifact
	Shards                   int
}

// Load reads a target manifest and resolves each declaration against the
// build configuration. Declarations are validated here so that manifest
// mistakes surface as plain errors rather than aggregator invariant
// failures.
func Load(path string, config *buildcfg.Configuration) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target manifest: %w", err)
	}

	var fm fileManifest
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("failed to parse target manifest %s: %w", path, err)
	}
	if len(fm.Targets) == 0 {
		return nil, fmt.Errorf("target manifest %s declares no targets", path)
	}

	entries := make([]Entry, 0, len(fm.Targets))
	for i, ft := range fm.Targets {
		entry, err := resolveTarget(ft, config)
		if err != nil {
			return nil, fmt.Errorf("target manifest %s, target %d: %w", path, i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func resolveTarget(ft fileTarget, config *buildcfg.Configuration) (Entry, error) {
	label, err := graph.ParseLabel(ft.Label)
	if err != nil {
		return Entry{}, err
	}

	ruleClass := ft.RuleClass
	if ruleClass == "" {
		return Entry{}, fmt.Errorf("%s: missing rule_class", label)
	}
	target := graph.NewTarget(label, ruleClass)
	if !graph.IsTestRule(target) {
		return Entry{}, fmt.Errorf("%s: rule class %q is not a test rule", label, ruleClass)
	}
	if ft.Executable == "" {
		return Entry{}, fmt.Errorf("%s: missing executable", label)
	}
	if ft.Shards < 0 {
		return Entry{}, fmt.Errorf("%s: negative shard count %d", label, ft.Shards)
	}

	prereqs := map[graph.PrerequisiteKey]*graph.Prerequisite{}
	if runUnder := config.RunUnder(); runUnder != nil && runUnder.Label() != nil {
		// The wrapper is itself a build target: the manifest carries the
		// resolved executable the dependency machinery would have supplied.
		// A declaration without it models a wrapper target with no runnable
		// output, which the aggregator reports as a configuration error.
		var filesToRun *graph.FilesToRun
		if ft.RunUnderExecutable != "" {
			filesToRun = graph.NewFilesToRun(graph.NewArtifact(ft.RunUnderExecutable))
		}
		key := graph.PrerequisiteKey{Name: testexec.RunUnderPrerequisite, Mode: graph.ModeData}
		prereqs[key] = graph.NewPrerequisite(*runUnder.Label(), filesToRun)
	}

	var manifest, inputManifest, instrumented *graph.Artifact
	if ft.RunfilesManifest != "" {
		manifest = graph.NewArtifact(ft.RunfilesManifest)
	}
	if ft.RunfilesInputManifest != "" {
		inputManifest = graph.NewArtifact(ft.RunfilesInputManifest)
	}
	if config.CollectCoverage() && ft.InstrumentedManifest != "" {
		instrumented = graph.NewArtifact(ft.InstrumentedManifest)
	}

	return Entry{
		RuleContext:              graph.NewRuleContext(target, prereqs),
		Runfiles:                 runfiles.New(ft.Args, manifest, inputManifest),
		Executable:               graph.NewArtifact(ft.Executable),
		InstrumentedFileManifest: instrumented,
		Shards:                   ft.Shards,
	}, nil
}
