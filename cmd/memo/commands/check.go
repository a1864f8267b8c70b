package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify recorded output fingerprints against the filesystem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drifts, err := c.app.Check(cmd.Context())
			if err != nil {
				return err
			}

			if len(drifts) == 0 {
				cmd.Println("all recorded outputs match the filesystem")
				return nil
			}

			for _, d := range drifts {
				cmd.Printf("drift: %s (action %s)\n", d.Artifact.Path(), shortID(d.ActionID))
			}
			return zerr.With(zerr.Wrap(domain.ErrDriftDetected, "stale outputs found"), "artifacts", len(drifts))
		},
	}
}

// shortID abbreviates an action ID for display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
