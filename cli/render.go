package cli

// This file contains shard command-line and environment construction from
// frozen execution settings.

import (
	"fmt"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/testrig/testrig/testexec"
)

// shardCommand builds the argv of one shard action: the run-under wrapper
// prefix (when configured), the test executable, then the merged argument
// list. All shards of a target share the same argv.
func shardCommand(settings *testexec.ExecutionSettings) []string {
	var argv []string
	if runUnder := settings.RunUnder(); runUnder != nil {
		if executable := settings.RunUnderExecutable(); executable != nil {
			argv = append(argv, executable.ExecPath())
		} else {
			argv = append(argv, runUnder.Command())
		}
		argv = append(argv, runUnder.Options()...)
	}
	argv = append(argv, settings.Executable().ExecPath())
	argv = append(argv, settings.Args()...)
	return argv
}

// shardEnv builds the extra environment of one shard action: the frozen
// test environment plus the shard and filter discovery variables, in
// sorted key order.
func shardEnv(settings *testexec.ExecutionSettings, index int) []string {
	testEnv := settings.TestEnv()
	keys := make([]string, 0, len(testEnv))
	for key := range testEnv {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys)+3)
	for _, key := range keys {
		env = append(env, key+"="+testEnv[key])
	}
	if filter := settings.TestFilter(); filter != "" {
		env = append(env, "TESTBRIDGE_TEST_ONLY="+filter)
	}
	if total := settings.TotalShards(); total > 0 {
		env = append(env, fmt.Sprintf("TEST_SHARD_INDEX=%d", index))
		env = append(env, fmt.Sprintf("TEST_TOTAL_SHARDS=%d", total))
	}
	return env
}

// quoteCommand renders an argv as a copy-pasteable shell command.
func quoteCommand(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, shellescape.Quote(arg))
	}
	return strings.Join(quoted, " ")
}
