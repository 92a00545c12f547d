package testexec

// This file contains the error types raised while freezing execution
// settings.

import (
	"fmt"

	"github.com/testrig/testrig/graph"
)

// InvariantError reports a violated caller contract: the settings
// aggregator was invoked with inputs the calling pipeline must never
// produce. It is a defect in the caller, not a user-facing condition.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string {
	return e.msg
}

func invariantErrorf(format string, args ...any) error {
	return &InvariantError{msg: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports malformed build-graph wiring: a condition the
// graph normally guarantees away, surfaced with enough context to identify
// the target and the missing capability.
type ConfigurationError struct {
	Target  graph.Label
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("target %s: %s", e.Target, e.Missing)
}
