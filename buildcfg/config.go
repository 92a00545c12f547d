package buildcfg

// This file contains the build-wide test configuration and its YAML
// loading.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration holds the build-wide test options of one build
// configuration. It is read-only once constructed; a different build
// configuration is a different Configuration value.
type Configuration struct {
	testArguments   []string
	testEnv         map[string]string
	testFilter      string
	runUnder        *RunUnder
	collectCoverage bool
}

// NewConfiguration returns a configuration with the given build-wide test
// options. The argument slice and environment map are retained as passed.
func NewConfiguration(testArguments []string, testEnv map[string]string, testFilter string, runUnder *RunUnder, collectCoverage bool) *Configuration {
	return &Configuration{
		testArguments:   testArguments,
		testEnv:         testEnv,
		testFilter:      testFilter,
		runUnder:        runUnder,
		collectCoverage: collectCoverage,
	}
}

// fileConfig is the on-disk YAML form of a Configuration.
type fileConfig struct {
	TestArg         []string          `yaml:"test_arg"`
	TestEnv         map[string]string `yaml:"test_env"`
	TestFilter      string            `yaml:"test_filter"`
	RunUnder        string            `yaml:"run_under"`
	CollectCoverage bool              `yaml:"collect_coverage"`
}

// Load reads a configuration file.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration %s: %w", path, err)
	}

	var runUnder *RunUnder
	if fc.RunUnder != "" {
		runUnder, err = ParseRunUnder(fc.RunUnder)
		if err != nil {
			return nil, fmt.Errorf("invalid run_under in %s: %w", path, err)
		}
	}

	return NewConfiguration(fc.TestArg, fc.TestEnv, fc.TestFilter, runUnder, fc.CollectCoverage), nil
}

// TestArguments returns the build-wide test argument list. Callers must
// not modify the returned slice.
func (c *Configuration) TestArguments() []string {
	return c.testArguments
}

// TestEnv returns the build-wide test environment. Callers must not modify
// the returned map.
func (c *Configuration) TestEnv() map[string]string {
	return c.testEnv
}

// TestFilter returns the build-wide test filter expression, or the empty
// string when no filter is set.
func (c *Configuration) TestFilter() string {
	return c.testFilter
}

// RunUnder returns the wrapper descriptor tests are invoked under, or nil
// when tests run directly.
func (c *Configuration) RunUnder() *RunUnder {
	return c.runUnder
}

// CollectCoverage reports whether coverage instrumentation is enabled for
// this build.
func (c *Configuration) CollectCoverage() bool {
	return c.collectCoverage
}
