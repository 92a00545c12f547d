package buildcfg

// This file contains the run-under descriptor: an optional wrapper (e.g.
// strace or valgrind) the test binary is invoked under instead of directly.

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/testrig/testrig/graph"
)

// RunUnder describes the wrapper a test is invoked under. The wrapper is
// either a target built by this build (Label set) or a plain command on the
// execution machine (Command set); exactly one of the two forms applies.
type RunUnder struct {
	value   string
	label   *graph.Label
	command string
	options []string
}

// ParseRunUnder parses a run-under option value. A value starting with
// "//" or ":" names a wrapper target followed by whitespace-separated
// options; anything else is a command prefix tokenized shell-style, with
// the first token as the command and the rest as options.
func ParseRunUnder(value string) (*RunUnder, error) {
	if strings.HasPrefix(value, "//") || strings.HasPrefix(value, ":") {
		fields := strings.Fields(value)
		// ":name" resolves to the root package, "//:name"
		label, err := graph.ParseLabel("//" + strings.TrimPrefix(fields[0], "//"))
		if err != nil {
			return nil, err
		}
		return &RunUnder{
			value:   value,
			label:   &label,
			options: fields[1:],
		}, nil
	}

	tokens, err := tokenize(value)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty run-under value")
	}
	return &RunUnder{
		value:   value,
		command: tokens[0],
		options: tokens[1:],
	}, nil
}

// Value returns the verbatim option value the descriptor was parsed from.
func (r *RunUnder) Value() string {
	return r.value
}

// Label returns the wrapper target label, or nil when the wrapper is a
// plain command.
func (r *RunUnder) Label() *graph.Label {
	return r.label
}

// Command returns the wrapper command, or the empty string when the
// wrapper is a target label.
func (r *RunUnder) Command() string {
	return r.command
}

// Options returns the extra wrapper options. Callers must not modify the
// returned slice.
func (r *RunUnder) Options() []string {
	return r.options
}

// CommandLine renders the wrapper prefix as a shell-quoted string. For a
// label form the resolved executable path must be supplied by the caller;
// this only renders the plain-command form.
func (r *RunUnder) CommandLine() string {
	parts := make([]string, 0, len(r.options)+1)
	if r.command != "" {
		parts = append(parts, shellescape.Quote(r.command))
	}
	for _, opt := range r.options {
		parts = append(parts, shellescape.Quote(opt))
	}
	return strings.Join(parts, " ")
}

func (r *RunUnder) String() string {
	return r.value
}

// tokenize splits a command prefix into tokens, honoring single quotes,
// double quotes and backslash escapes.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false
	var quote rune

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' && i+1 < len(runes) {
				i++
				current.WriteRune(runes[i])
			} else {
				current.WriteRune(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash in %q", s)
			}
			i++
			current.WriteRune(runes[i])
			inToken = true
		case c == ' ' || c == '\t':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(c)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
