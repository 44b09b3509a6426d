package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/loc-sal-tools/internal/pipeline"
)

// summaryCmd prints record counts of the most advanced workbook.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count records per session and statute type",
	Long: `The summary command reads the audited workbook if it exists, otherwise the
in-process workbook, otherwise the source, and prints record counts per session
and per statute type.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := newPipeline(cmd)
		if err != nil {
			return err
		}

		sheet, err := p.Load()
		if err != nil {
			return err
		}

		printSummary(cmd.OutOrStdout(), pipeline.Summarize(sheet))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printSummary(out io.Writer, sum pipeline.Summary) {
	fmt.Fprintf(out, "Workbook: %s\n\n", sum.SourceFile)

	sessions := table.NewWriter()
	sessions.SetStyle(table.StyleLight)
	sessions.AppendHeader(table.Row{"Session", "Records", "Types"})
	for _, s := range sum.Sessions {
		sessions.AppendRow(table.Row{s.Session, humanize.Comma(int64(s.Rows)), len(s.ByType)})
	}
	sessions.AppendFooter(table.Row{"Total", humanize.Comma(int64(sum.Rows - sum.Untyped)), ""})
	fmt.Fprintln(out, sessions.Render())
	fmt.Fprintln(out)

	types := table.NewWriter()
	types.SetStyle(table.StyleLight)
	types.AppendHeader(table.Row{"Statute Type", "Records"})
	for _, t := range sum.Types {
		types.AppendRow(table.Row{string(t.Type), humanize.Comma(int64(t.Rows))})
	}
	fmt.Fprintln(out, types.Render())

	if sum.Untyped > 0 {
		fmt.Fprintf(out, "\n%s record(s) have no statute type and will be skipped.\n", humanize.Comma(int64(sum.Untyped)))
	}
}
