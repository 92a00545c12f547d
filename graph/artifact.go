package graph

// This file contains the artifact reference type shared by all
// build-graph collaborators.

import "path/filepath"

// Artifact is an opaque reference to a file produced or consumed by the
// build. Its identity is the root-relative exec path; the file itself is
// never read or written through this type.
type Artifact struct {
	execPath string
}

// NewArtifact returns an artifact reference for the given exec path.
func NewArtifact(execPath string) *Artifact {
	return &Artifact{execPath: execPath}
}

// ExecPath returns the root-relative path of the artifact.
func (a *Artifact) ExecPath() string {
	return a.execPath
}

// Basename returns the final path component of the artifact.
func (a *Artifact) Basename() string {
	return filepath.Base(a.execPath)
}

func (a *Artifact) String() string {
	return a.execPath
}
