package runfiles

// This file contains the runfiles descriptor consumed when planning test
// actions. Manifest generation itself happens elsewhere; this package only
// carries references to the finished manifests.

import "github.com/testrig/testrig/graph"

// Support describes the runfiles of one target: the target-declared
// argument list (already variable-expanded) and references to the runfiles
// manifests.
type Support struct {
	args          []string
	manifest      *graph.Artifact
	inputManifest *graph.Artifact
}

// New returns a runfiles descriptor. manifest is the manifest inside the
// materialized runfiles tree and inputManifest the one outside of it;
// either may be nil when the corresponding tree form is not built.
func New(args []string, manifest, inputManifest *graph.Artifact) *Support {
	return &Support{
		args:          args,
		manifest:      manifest,
		inputManifest: inputManifest,
	}
}

// Args returns the target-declared argument list. Callers must not modify
// the returned slice.
func (s *Support) Args() []string {
	return s.args
}

// Manifest returns the manifest describing the runfiles tree used at run
// time, or nil when no tree is materialized.
func (s *Support) Manifest() *graph.Artifact {
	return s.manifest
}

// InputManifest returns the manifest describing the runfiles tree before
// any symlink-tree materialization, or nil.
func (s *Support) InputManifest() *graph.Artifact {
	return s.inputManifest
}
