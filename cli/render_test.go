package cli

import (
	"reflect"
	"testing"

	"github.com/testrig/testrig/buildcfg"
	"github.com/testrig/testrig/graph"
	"github.com/testrig/testrig/runfiles"
	"github.com/testrig/testrig/testexec"
)

func frozenSettings(t *testing.T, config *buildcfg.Configuration, prereqs map[graph.PrerequisiteKey]*graph.Prerequisite, targetArgs []string, shards int) *testexec.ExecutionSettings {
	t.Helper()
	ruleContext := graph.NewRuleContext(
		graph.NewTarget(graph.MustParseLabel("//pkg:some_test"), "go_test"),
		prereqs,
	)
	settings, err := testexec.New(ruleContext, runfiles.New(targetArgs, nil, nil), config, graph.NewArtifact("pkg/some_test"), nil, shards)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return settings
}

func TestShardCommand(t *testing.T) {
	strace, err := buildcfg.ParseRunUnder("strace -f")
	if err != nil {
		t.Fatalf("ParseRunUnder failed: %v", err)
	}
	wrapper, err := buildcfg.ParseRunUnder("//tools/wrapper:wrapper --trace")
	if err != nil {
		t.Fatalf("ParseRunUnder failed: %v", err)
	}
	wrapperPrereqs := map[graph.PrerequisiteKey]*graph.Prerequisite{
		{Name: testexec.RunUnderPrerequisite, Mode: graph.ModeData}: graph.NewPrerequisite(
			graph.MustParseLabel("//tools/wrapper:wrapper"),
			graph.NewFilesToRun(graph.NewArtifact("tools/wrapper/wrapper")),
		),
	}

	tests := []struct {
		name       string
		config     *buildcfg.Configuration
		prereqs    map[graph.PrerequisiteKey]*graph.Prerequisite
		targetArgs []string
		want       []string
	}{
		{
			name:   "plain executable",
			config: buildcfg.NewConfiguration(nil, nil, "", nil, false),
			want:   []string{"pkg/some_test"},
		},
		{
			name:       "merged arguments",
			config:     buildcfg.NewConfiguration([]string{"--bar"}, nil, "", nil, false),
			targetArgs: []string{"--foo"},
			want:       []string{"pkg/some_test", "--foo", "--bar"},
		},
		{
			name:   "command wrapper prefix",
			config: buildcfg.NewConfiguration(nil, nil, "", strace, false),
			want:   []string{"strace", "-f", "pkg/some_test"},
		},
		{
			name:    "resolved wrapper target prefix",
			config:  buildcfg.NewConfiguration(nil, nil, "", wrapper, false),
			prereqs: wrapperPrereqs,
			want:    []string{"tools/wrapper/wrapper", "--trace", "pkg/some_test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := frozenSettings(t, tt.config, tt.prereqs, tt.targetArgs, 0)
			got := shardCommand(settings)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("shardCommand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShardEnv(t *testing.T) {
	tests := []struct {
		name   string
		config *buildcfg.Configuration
		shards int
		index  int
		want   []string
	}{
		{
			name:   "empty",
			config: buildcfg.NewConfiguration(nil, nil, "", nil, false),
			want:   []string{},
		},
		{
			name:   "sorted test env",
			config: buildcfg.NewConfiguration(nil, map[string]string{"TZ": "UTC", "LANG": "C"}, "", nil, false),
			want:   []string{"LANG=C", "TZ=UTC"},
		},
		{
			name:   "filter variable",
			config: buildcfg.NewConfiguration(nil, nil, "TestFoo", nil, false),
			want:   []string{"TESTBRIDGE_TEST_ONLY=TestFoo"},
		},
		{
			name:   "shard variables",
			config: buildcfg.NewConfiguration(nil, nil, "", nil, false),
			shards: 3,
			index:  1,
			want:   []string{"TEST_SHARD_INDEX=1", "TEST_TOTAL_SHARDS=3"},
		},
		{
			name:   "no shard variables when unsharded",
			config: buildcfg.NewConfiguration(nil, map[string]string{"HOME": "/tmp"}, "", nil, false),
			want:   []string{"HOME=/tmp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := frozenSettings(t, tt.config, nil, nil, tt.shards)
			got := shardEnv(settings, tt.index)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("shardEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShardIndexes(t *testing.T) {
	tests := []struct {
		shards int
		want   []int
	}{
		{shards: 0, want: []int{0}},
		{shards: 1, want: []int{0}},
		{shards: 3, want: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		got := shardIndexes(tt.shards)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("shardIndexes(%d) = %v, want %v", tt.shards, got, tt.want)
		}
	}
}

func TestQuoteCommand(t *testing.T) {
	got := quoteCommand([]string{"pkg/some_test", "--filter", "a b"})
	want := "pkg/some_test --filter 'a b'"
	if got != want {
		t.Errorf("quoteCommand() = %q, want %q", got, want)
	}
}
