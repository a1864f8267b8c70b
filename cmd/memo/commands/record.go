package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/adapters/config"
)

func (c *CLI) newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Fingerprint the outputs of every manifest action and store the records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, err := cmd.Flags().GetString("manifest")
			if err != nil {
				return err
			}

			actions, err := config.LoadManifest(manifest)
			if err != nil {
				return err
			}

			return c.app.Record(cmd.Context(), actions)
		},
	}

	cmd.Flags().StringP("manifest", "m", "actions.yaml", "Path to the action manifest")
	return cmd
}
