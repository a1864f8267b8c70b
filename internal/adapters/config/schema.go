package config

// Memofile represents the structure of the memo.yaml configuration file.
type Memofile struct {
	Version string `yaml:"version"`
	Root    string `yaml:"root"`
	Store   string `yaml:"store"`
	Digest  *bool  `yaml:"digest"`
	// Parallelism bounds concurrent fingerprint checks; 0 means NumCPU.
	Parallelism int `yaml:"parallelism"`
}
