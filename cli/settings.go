package cli

// This file contains the shared loading step for the plan and run
// commands: read the build configuration and target manifest, then freeze
// the execution settings of every selected target.

import (
	"fmt"
	"strings"

	"github.com/testrig/testrig/buildcfg"
	"github.com/testrig/testrig/manifest"
	"github.com/testrig/testrig/testexec"
	"github.com/urfave/cli/v2"
)

type plannedTarget struct {
	entry    manifest.Entry
	settings *testexec.ExecutionSettings
}

func (a *App) loadPlannedTargets(ctx *cli.Context) ([]plannedTarget, error) {
	configPath := ctx.String("config")
	manifestPath := ctx.String("manifest")
	targetFilter := ctx.String("target")

	config, err := buildcfg.Load(configPath)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("config", configPath).
		Strs("test_arg", config.TestArguments()).
		Str("test_filter", config.TestFilter()).
		Bool("collect_coverage", config.CollectCoverage()).
		Msg("Loaded build configuration")
	if runUnder := config.RunUnder(); runUnder != nil {
		a.logger.Debug().Str("run_under", runUnder.Value()).Msg("Tests will run under a wrapper")
	}

	entries, err := manifest.Load(manifestPath, config)
	if err != nil {
		return nil, err
	}

	var planned []plannedTarget
	for _, entry := range entries {
		label := entry.RuleContext.Target().Label()
		if targetFilter != "" && !strings.Contains(label.String(), targetFilter) {
			continue
		}

		settings, err := testexec.New(entry.RuleContext, entry.Runfiles, config, entry.Executable, entry.InstrumentedFileManifest, entry.Shards)
		if err != nil {
			return nil, fmt.Errorf("failed to freeze settings for %s: %w", label, err)
		}

		a.logger.Debug().
			Stringer("target", label).
			Strs("args", settings.Args()).
			Int("shards", settings.TotalShards()).
			Msg("Froze execution settings")

		planned = append(planned, plannedTarget{entry: entry, settings: settings})
	}

	if len(planned) == 0 {
		return nil, fmt.Errorf("no test targets matched")
	}
	return planned, nil
}
