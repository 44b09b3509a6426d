package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/loc-sal-tools/internal/pipeline"
)

// auditCmd runs only the interactive audit.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit PDF start pages without generating HTML",
	Long: `The audit command asks you to confirm the PDF start page of each record and
writes the audited workbook once every record is answered. It does not generate
HTML. A workbook that already has an audited file is refused.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := newPipeline(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		res, err := p.Audit()
		if errors.Is(err, pipeline.ErrAuditPaused) {
			printPaused(out, res)
			return nil
		}
		if err != nil {
			return err
		}

		printResult(out, res)
		fmt.Fprintln(out, "Run 'salaudit generate' to publish the HTML fragment.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
