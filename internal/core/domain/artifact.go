package domain

// Artifact identifies a single build output by its root-relative path.
// The path is interned, so an Artifact is a cheap comparable value and two
// artifacts for the same path compare equal regardless of where they were
// constructed.
type Artifact struct {
	path InternedString
}

// NewArtifact creates an Artifact for the given root-relative path.
func NewArtifact(path string) Artifact {
	return Artifact{path: NewInternedString(path)}
}

// Path returns the root-relative path of the artifact.
func (a Artifact) Path() string {
	return a.path.String()
}

// String implements fmt.Stringer.
func (a Artifact) String() string {
	return a.path.String()
}

// MarshalText implements encoding.TextMarshaler so artifacts can be used
// as JSON map keys.
func (a Artifact) MarshalText() ([]byte, error) {
	return a.path.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Artifact) UnmarshalText(text []byte) error {
	return a.path.UnmarshalText(text)
}
