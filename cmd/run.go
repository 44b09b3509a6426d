// =============================================================================
// Statutes at Large Tools - Run Command
// =============================================================================
//
// This file defines the 'run' command, the main command of the tool. It
// audits the configured workbook if it has not been audited yet and then
// publishes the HTML fragment.
//
// COMMAND USAGE:
//   salaudit run [flags]
//
// PROCESSING PIPELINE:
//   1. Load the user config and mapping tables
//   2. Audit (or resume) unless the audited workbook exists
//   3. On pause: save the in-process workbook and stop
//   4. On completion: save the audited workbook
//   5. Generate the HTML fragment (never overwriting an existing one)
//   6. Print a summary
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/loc-sal-tools/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Audit the workbook if needed, then generate the HTML fragment",
	Long: `The run command is the normal way to use the tool.

If the audited workbook does not exist yet, the audit starts (or resumes from
the last checkpoint). Type 'exit' at any prompt to stop; your progress is saved
to the in-process workbook and the checkpoint file.

Once every record is confirmed, the audited workbook is written and the HTML
fragment is generated. An existing HTML file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command) error {
	_, p, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Statutes at Large Tools ===")

	res, err := p.Run()
	if errors.Is(err, pipeline.ErrAuditPaused) {
		printPaused(out, res)
		return nil
	}
	if err != nil {
		return err
	}

	printResult(out, res)
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func printPaused(out io.Writer, res *pipeline.Result) {
	color.New(color.FgYellow).Fprintln(out, "\nAudit incomplete.")
	fmt.Fprintf(out, "Confirmed:       %s\n", humanize.Comma(int64(res.Audit.Confirmed)))
	fmt.Fprintf(out, "Corrected:       %s\n", humanize.Comma(int64(res.Audit.Corrected)))
	fmt.Fprintf(out, "Progress saved:  %s\n", res.InProcessFile)
	fmt.Fprintln(out, "Run the command again to resume.")
}

func printResult(out io.Writer, res *pipeline.Result) {
	if res.Audited {
		color.New(color.FgGreen).Fprintln(out, "\nAudit complete.")
		if res.Resumed {
			fmt.Fprintln(out, "Resumed from the in-process workbook.")
		}
		fmt.Fprintf(out, "Confirmed:       %s\n", humanize.Comma(int64(res.Audit.Confirmed)))
		fmt.Fprintf(out, "Corrected:       %s\n", humanize.Comma(int64(res.Audit.Corrected)))
	} else if res.AuditedFile != "" {
		fmt.Fprintf(out, "\nAudited file already exists, skipping audit: %s\n", res.AuditedFile)
	}

	if res.AuditedFile != "" {
		fmt.Fprintf(out, "Audited file:    %s\n", res.AuditedFile)
	}

	if res.HTMLFile != "" {
		size := ""
		if info, err := os.Stat(res.HTMLFile); err == nil {
			size = " (" + humanize.Bytes(uint64(info.Size())) + ")"
		}
		fmt.Fprintf(out, "HTML file:       %s%s\n", res.HTMLFile, size)
		fmt.Fprintf(out, "Sessions:        %s\n", humanize.Comma(int64(res.Generation.Tables)))
		fmt.Fprintf(out, "Records:         %s\n", humanize.Comma(int64(res.Generation.Rows)))
	}

	if n := len(res.Generation.Diagnostics); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "Diagnostics:     %s\n", humanize.Comma(int64(n)))
		if res.DiagnosticsLog != "" {
			fmt.Fprintf(out, "Diagnostics log: %s\n", res.DiagnosticsLog)
		}
	}

	fmt.Fprintf(out, "Time elapsed:    %s\n", res.Elapsed.Round(time.Millisecond))
}
