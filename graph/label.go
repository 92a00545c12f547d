package graph

// This file contains label parsing for naming targets in the
// build graph.

import (
	"fmt"
	"strings"
)

// Label names a target in the build graph, e.g. "//tools/strace:strace".
type Label struct {
	pkg  string
	name string
}

// ParseLabel parses a label of the form "//pkg:name" or "//pkg", where the
// latter defaults the target name to the last package component.
func ParseLabel(s string) (Label, error) {
	if !strings.HasPrefix(s, "//") {
		return Label{}, fmt.Errorf("invalid label %q: must start with //", s)
	}
	rest := s[2:]
	pkg, name, found := strings.Cut(rest, ":")
	if !found {
		if pkg == "" {
			return Label{}, fmt.Errorf("invalid label %q: empty package", s)
		}
		// //pkg/foo is shorthand for //pkg/foo:foo
		name = pkg[strings.LastIndex(pkg, "/")+1:]
	}
	if name == "" {
		return Label{}, fmt.Errorf("invalid label %q: empty target name", s)
	}
	return Label{pkg: pkg, name: name}, nil
}

// MustParseLabel is ParseLabel for labels known to be well formed.
// It panics on a malformed label.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Package returns the package part of the label.
func (l Label) Package() string {
	return l.pkg
}

// Name returns the target name part of the label.
func (l Label) Name() string {
	return l.name
}

func (l Label) String() string {
	return fmt.Sprintf("//%s:%s", l.pkg, l.name)
}
