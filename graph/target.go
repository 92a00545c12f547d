package graph

// This file contains the target type and rule classification.

import "strings"

// Target is a build-graph node: a label paired with the rule class that
// declared it.
type Target struct {
	label     Label
	ruleClass string
}

// NewTarget returns a target for the given label and rule class.
func NewTarget(label Label, ruleClass string) *Target {
	return &Target{label: label, ruleClass: ruleClass}
}

// Label returns the label naming this target.
func (t *Target) Label() Label {
	return t.label
}

// RuleClass returns the name of the rule class that declared this target,
// e.g. "go_test" or "cc_binary".
func (t *Target) RuleClass() string {
	return t.ruleClass
}

// IsTestRule reports whether the target was declared by a test rule.
// Test rule classes are named with a "_test" suffix by convention.
func IsTestRule(t *Target) bool {
	class := t.RuleClass()
	return len(class) > len("_test") && strings.HasSuffix(class, "_test")
}
