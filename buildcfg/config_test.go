package buildcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testrig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
test_arg:
  - --gtest_shuffle
  - --fast
test_env:
  LANG: C
  TZ: UTC
test_filter: TestFoo
run_under: strace -f
collect_coverage: true
`)

	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"--gtest_shuffle", "--fast"}, config.TestArguments())
	require.Equal(t, map[string]string{"LANG": "C", "TZ": "UTC"}, config.TestEnv())
	require.Equal(t, "TestFoo", config.TestFilter())
	require.True(t, config.CollectCoverage())
	require.NotNil(t, config.RunUnder())
	require.Equal(t, "strace", config.RunUnder().Command())
	require.Equal(t, []string{"-f"}, config.RunUnder().Options())
}

func TestLoad_Empty(t *testing.T) {
	path := writeConfig(t, "")

	config, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, config.TestArguments())
	require.Empty(t, config.TestEnv())
	require.Empty(t, config.TestFilter())
	require.Nil(t, config.RunUnder())
	require.False(t, config.CollectCoverage())
}

func TestLoad_InvalidRunUnder(t *testing.T) {
	path := writeConfig(t, "run_under: \"'unterminated\"\n")

	_, err := Load(path)
	require.ErrorContains(t, err, "invalid run_under")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "test_arg: {broken\n")

	_, err := Load(path)
	require.ErrorContains(t, err, "failed to parse configuration")
}
