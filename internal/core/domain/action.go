package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sort"
	"strings"
)

// Action describes a single unit of build work: the command that consumes
// input artifacts and produces output artifacts. The execution semantics
// (sandboxing, dispatch) live elsewhere; this type only carries the
// identity and metadata the value cache needs.
type Action struct {
	// Mnemonic is a short machine-readable kind, e.g. "CppLink".
	Mnemonic string `json:"mnemonic"`
	// Progress is the human-readable progress message. Helper actions that
	// should not appear in user-facing progress output leave it empty.
	Progress string `json:"progress,omitzero"`
	// Command is the argv of the action.
	Command []string `json:"command"`
	// Outputs are the artifacts the action produces.
	Outputs []Artifact `json:"outputs"`
	// Environment holds the environment variables the command runs with.
	Environment map[string]string `json:"environment,omitzero"`
}

// ActionIDLength is the length of a hex-encoded action ID.
const ActionIDLength = 2 * sha256.Size

// ID returns the stable identity of the action, derived from its mnemonic,
// command, environment and output paths. It is reproducible across process
// restarts, which is what keeps a persisted memoization cache valid across
// runs of the tool.
func (a *Action) ID() string {
	hash := sha256.Sum256([]byte(a.identityString()))
	return hex.EncodeToString(hash[:])
}

// identityString builds a deterministic serialization of the identity
// fields. NUL separators keep adjacent fields from colliding.
func (a *Action) identityString() string {
	var b strings.Builder
	b.WriteString(a.Mnemonic)
	b.WriteByte(0)
	for _, arg := range a.Command {
		b.WriteString(arg)
		b.WriteByte(0)
	}
	b.WriteByte(0)
	for _, k := range sortedKeys(a.Environment) {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(a.Environment[k])
		b.WriteByte(0)
	}
	b.WriteByte(0)
	for _, out := range a.Outputs {
		b.WriteString(out.Path())
		b.WriteByte(0)
	}
	return b.String()
}

// sortedKeys returns the keys of m in sorted order, for deterministic
// serialization of maps.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortArtifacts sorts artifacts by path, for deterministic output listings.
func SortArtifacts(artifacts []Artifact) {
	slices.SortFunc(artifacts, func(a, b Artifact) int {
		return strings.Compare(a.Path(), b.Path())
	})
}
