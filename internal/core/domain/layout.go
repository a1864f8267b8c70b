// Package domain contains the core value types of the incremental-build
// cache: artifacts, fingerprints, action records and their memoization keys.
package domain

import "path/filepath"

const (
	// DirPerm is the permission used for store directories.
	DirPerm = 0o755
	// FilePerm is the permission used for store files.
	FilePerm = 0o644
)

// DefaultStorePath returns the root-relative directory where action
// records are persisted.
func DefaultStorePath() string {
	return filepath.Join(".memo", "actions")
}

// Config holds the tool configuration loaded from memo.yaml.
type Config struct {
	// Root is the project root directory.
	Root string
	// StorePath is the root-relative directory of the record store.
	StorePath string
	// Digest enables content digests when fingerprinting outputs.
	Digest bool
	// Parallelism bounds concurrent fingerprint checks.
	Parallelism int
}
