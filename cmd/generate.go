package cmd

import (
	"github.com/spf13/cobra"
)

// generateCmd publishes the HTML fragment from the audited workbook.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the HTML fragment from the audited workbook",
	Long: `The generate command reads the audited workbook and writes the HTML fragment.
It fails if the workbook has not been audited or if the HTML file already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := newPipeline(cmd)
		if err != nil {
			return err
		}

		res, err := p.Generate()
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
