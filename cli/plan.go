package cli

// This file contains the plan command: freeze execution settings and print
// what the shard actions would execute, without running anything.

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) plan(ctx *cli.Context) error {
	planned, err := a.loadPlannedTargets(ctx)
	if err != nil {
		return err
	}

	for _, target := range planned {
		settings := target.settings
		label := target.entry.RuleContext.Target().Label()

		fmt.Printf("%s\n", label)
		fmt.Printf("   Executable: %s\n", settings.Executable())
		if runUnder := settings.RunUnder(); runUnder != nil {
			fmt.Printf("   Run under: %s\n", runUnder.Value())
			if executable := settings.RunUnderExecutable(); executable != nil {
				fmt.Printf("   Run-under executable: %s\n", executable)
			}
		}
		if filter := settings.TestFilter(); filter != "" {
			fmt.Printf("   Test filter: %s\n", filter)
		}
		if manifest := settings.Manifest(); manifest != nil {
			fmt.Printf("   Runfiles manifest: %s\n", manifest)
		}
		if inputManifest := settings.InputManifest(); inputManifest != nil {
			fmt.Printf("   Runfiles input manifest: %s\n", inputManifest)
		}
		if instrumented := settings.InstrumentedFileManifest(); instrumented != nil {
			fmt.Printf("   Instrumented file manifest: %s\n", instrumented)
		}

		command := quoteCommand(shardCommand(settings))
		for _, index := range shardIndexes(settings.TotalShards()) {
			prefix := ""
			if settings.TotalShards() > 0 {
				prefix = fmt.Sprintf("shard %d/%d: ", index+1, settings.TotalShards())
			}
			env := shardEnv(settings, index)
			if len(env) > 0 {
				fmt.Printf("   %s%s %s\n", prefix, quoteCommand(env), command)
			} else {
				fmt.Printf("   %s%s\n", prefix, command)
			}
		}
		fmt.Println()
	}

	return nil
}

// shardIndexes returns the shard indexes to construct actions for: a
// single unsharded action when totalShards is 0, one per shard otherwise.
func shardIndexes(totalShards int) []int {
	count := totalShards
	if count == 0 {
		count = 1
	}
	indexes := make([]int, count)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}
