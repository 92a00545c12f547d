package buildcfg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseRunUnder_Command(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		wantCommand string
		wantOptions []string
	}{
		{
			name:        "bare command",
			value:       "strace",
			wantCommand: "strace",
		},
		{
			name:        "command with options",
			value:       "valgrind --quiet --error-exitcode=1",
			wantCommand: "valgrind",
			wantOptions: []string{"--quiet", "--error-exitcode=1"},
		},
		{
			name:        "single-quoted option",
			value:       "wrapper --message='hello world'",
			wantCommand: "wrapper",
			wantOptions: []string{"--message=hello world"},
		},
		{
			name:        "double quotes with escape",
			value:       `wrapper "a \"b\" c"`,
			wantCommand: "wrapper",
			wantOptions: []string{`a "b" c`},
		},
		{
			name:        "backslash escaped space",
			value:       `run\ me -v`,
			wantCommand: "run me",
			wantOptions: []string{"-v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runUnder, err := ParseRunUnder(tt.value)
			require.NoError(t, err)
			require.Nil(t, runUnder.Label())
			require.Equal(t, tt.value, runUnder.Value())
			require.Equal(t, tt.wantCommand, runUnder.Command())
			if diff := cmp.Diff(tt.wantOptions, runUnder.Options()); diff != "" {
				t.Errorf("Options() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRunUnder_Label(t *testing.T) {
	runUnder, err := ParseRunUnder("//tools/strace:strace -f --tag")
	require.NoError(t, err)
	require.NotNil(t, runUnder.Label())
	require.Equal(t, "//tools/strace:strace", runUnder.Label().String())
	require.Empty(t, runUnder.Command())
	require.Equal(t, []string{"-f", "--tag"}, runUnder.Options())
	require.Equal(t, "//tools/strace:strace -f --tag", runUnder.Value())
}

func TestParseRunUnder_RootPackageLabel(t *testing.T) {
	// ":wrapper" is shorthand for a target in the root package, not a
	// command named ":wrapper".
	runUnder, err := ParseRunUnder(":wrapper --trace")
	require.NoError(t, err)
	require.NotNil(t, runUnder.Label())
	require.Equal(t, "//:wrapper", runUnder.Label().String())
	require.Empty(t, runUnder.Command())
	require.Equal(t, []string{"--trace"}, runUnder.Options())
	require.Equal(t, ":wrapper --trace", runUnder.Value())
}

func TestParseRunUnder_Errors(t *testing.T) {
	for _, value := range []string{
		"",
		"   ",
		"'unterminated",
		`trailing\`,
		"//:",
		":",
	} {
		_, err := ParseRunUnder(value)
		require.Error(t, err, "value %q", value)
	}
}

func TestRunUnder_CommandLine(t *testing.T) {
	runUnder, err := ParseRunUnder("valgrind '--log-file=out file.log'")
	require.NoError(t, err)
	require.Equal(t, "valgrind '--log-file=out file.log'", runUnder.CommandLine())
}
