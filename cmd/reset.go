package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// resetCmd deletes the audit checkpoint so the next audit starts at the
// first record. The in-process workbook is left alone.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the audit checkpoint of the configured workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := newPipeline(cmd)
		if err != nil {
			return err
		}

		path, err := p.ResetCheckpoint()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Checkpoint cleared: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
