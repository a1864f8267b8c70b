package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/core/domain"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <action-id>",
		Short: "Print the stored record for one action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := c.app.Show(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("action:    %s\n", entry.Action.ID())
			cmd.Printf("mnemonic:  %s\n", entry.Action.Mnemonic)
			if entry.Action.Progress != "" {
				cmd.Printf("progress:  %s\n", entry.Action.Progress)
			}
			cmd.Printf("recorded:  %s\n", entry.RecordedAt.Format("2006-01-02 15:04:05"))

			plain := entry.Record.AllPlainFingerprints()
			for _, artifact := range sortedArtifacts(plain) {
				fp := plain[artifact]
				if !fp.Exists {
					cmd.Printf("  %s  absent\n", artifact.Path())
					continue
				}
				if fp.HasDigest {
					cmd.Printf("  %s  size=%d digest=%016x\n", artifact.Path(), fp.Size, fp.Digest)
					continue
				}
				cmd.Printf("  %s  size=%d mtime=%d\n", artifact.Path(), fp.Size, fp.MTimeNanos)
			}

			overrides := entry.Record.AllOverrideFingerprints()
			for _, artifact := range sortedArtifacts(overrides) {
				ofp := overrides[artifact]
				cmd.Printf("  %s  override digest=%s size=%d\n", artifact.Path(), ofp.Digest, ofp.Size)
			}

			return nil
		},
	}
}

// sortedArtifacts returns the keys of m ordered by path.
func sortedArtifacts[V any](m map[domain.Artifact]V) []domain.Artifact {
	artifacts := make([]domain.Artifact, 0, len(m))
	for a := range m {
		artifacts = append(artifacts, a)
	}
	domain.SortArtifacts(artifacts)
	return artifacts
}
