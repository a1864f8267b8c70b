package config

import (
	"errors"
	"os"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest represents the structure of an action manifest file: the list
// of actions whose outputs the record command snapshots.
type Manifest struct {
	Actions []ManifestAction `yaml:"actions"`
}

// ManifestAction is one action declaration in the manifest.
type ManifestAction struct {
	Mnemonic    string            `yaml:"mnemonic"`
	Progress    string            `yaml:"progress"`
	Command     []string          `yaml:"command"`
	Outputs     []string          `yaml:"outputs"`
	Environment map[string]string `yaml:"environment"`
}

// LoadManifest reads and parses an action manifest.
func LoadManifest(path string) ([]domain.Action, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrManifestReadFailed, err), "loading manifest"), "path", path)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrManifestParseFailed, err), "loading manifest"), "path", path)
	}

	actions := make([]domain.Action, 0, len(manifest.Actions))
	for _, ma := range manifest.Actions {
		outputs := make([]domain.Artifact, 0, len(ma.Outputs))
		for _, path := range ma.Outputs {
			outputs = append(outputs, domain.NewArtifact(path))
		}
		domain.SortArtifacts(outputs)

		actions = append(actions, domain.Action{
			Mnemonic:    ma.Mnemonic,
			Progress:    ma.Progress,
			Command:     ma.Command,
			Outputs:     outputs,
			Environment: ma.Environment,
		})
	}

	return actions, nil
}
