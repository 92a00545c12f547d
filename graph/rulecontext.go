package graph

// This file contains the rule context: the view of a single configured
// target that downstream consumers use to look up resolved prerequisites.

// Mode selects the configuration a prerequisite was resolved in.
type Mode int

const (
	// ModeTarget resolves prerequisites in the target configuration.
	ModeTarget Mode = iota
	// ModeHost resolves prerequisites in the host configuration.
	ModeHost
	// ModeData resolves prerequisites in the data configuration, used for
	// files and tools needed at run time.
	ModeData
)

// FilesToRun exposes the runnable output of a prerequisite.
type FilesToRun struct {
	executable *Artifact
}

// NewFilesToRun returns a provider for the given executable artifact.
func NewFilesToRun(executable *Artifact) *FilesToRun {
	return &FilesToRun{executable: executable}
}

// Executable returns the executable artifact backing the prerequisite.
func (f *FilesToRun) Executable() *Artifact {
	return f.executable
}

// Prerequisite is a resolved dependency of a configured target.
type Prerequisite struct {
	label      Label
	filesToRun *FilesToRun
}

// NewPrerequisite returns a prerequisite for the given label. filesToRun
// may be nil when the prerequisite has no runnable output.
func NewPrerequisite(label Label, filesToRun *FilesToRun) *Prerequisite {
	return &Prerequisite{label: label, filesToRun: filesToRun}
}

// Label returns the label of the prerequisite target.
func (p *Prerequisite) Label() Label {
	return p.label
}

// FilesToRun returns the files-to-run provider of the prerequisite, or nil
// when the prerequisite does not expose one.
func (p *Prerequisite) FilesToRun() *FilesToRun {
	return p.filesToRun
}

// PrerequisiteKey identifies a resolved prerequisite by its logical
// attribute name and resolution mode.
type PrerequisiteKey struct {
	Name string
	Mode Mode
}

// RuleContext pairs a target with its resolved prerequisites for one build
// configuration. It is read-only once constructed.
type RuleContext struct {
	target        *Target
	prerequisites map[PrerequisiteKey]*Prerequisite
}

// NewRuleContext returns a rule context for the given target and resolved
// prerequisites. The prerequisite map is copied.
func NewRuleContext(target *Target, prerequisites map[PrerequisiteKey]*Prerequisite) *RuleContext {
	prereqs := make(map[PrerequisiteKey]*Prerequisite, len(prerequisites))
	for key, p := range prerequisites {
		prereqs[key] = p
	}
	return &RuleContext{target: target, prerequisites: prereqs}
}

// Target returns the target this context describes.
func (rc *RuleContext) Target() *Target {
	return rc.target
}

// Prerequisite returns the resolved prerequisite for the given attribute
// name and mode, or nil when the attribute resolved to nothing.
func (rc *RuleContext) Prerequisite(name string, mode Mode) *Prerequisite {
	return rc.prerequisites[PrerequisiteKey{Name: name, Mode: mode}]
}
