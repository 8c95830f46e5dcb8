package resolver

// ReferenceKind classifies a resolved dependency target.
type ReferenceKind string

const (
	// Internal references a file inside the project.
	Internal ReferenceKind = "internal"
	// External references a third-party package.
	External ReferenceKind = "external"
	// Builtin references a platform-provided module.
	Builtin ReferenceKind = "builtin"
)

// Usage classifies when a dependency is needed.
type Usage string

const (
	UsageRuntime   Usage = "runtime"
	UsageDevTime   Usage = "dev_time"
	UsageBuildTime Usage = "build_time"
)

// ResolvedDependency is a dependency declaration after classification and,
// for Internal references, path resolution.
//
// Invariants: Builtin implies ResolvedPath == "" and Confidence == 1.0;
// External implies ResolvedPath == ""; Internal implies ResolvedPath is
// populated when Exists is true.
type ResolvedDependency struct {
	Source          string        `json:"source"`
	DeclaringFile   string        `json:"declaring_file"`
	ResolvedPath    string        `json:"resolved_path,omitempty"`
	Kind            ReferenceKind `json:"kind"`
	Exists          bool          `json:"exists"`
	Confidence      float64       `json:"confidence"`
	ImportedMembers []string      `json:"imported_members,omitempty"`
	Usage           Usage         `json:"usage"`
	Line            int           `json:"line"`
}
