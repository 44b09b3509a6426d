// =============================================================================
// Statutes at Large Tools - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the user config and
// the mapping tables and, on request, the records of the workbook.
//
// CHECKS:
//   1. Every required setting is present
//   2. Header and statute maps are flat and idempotent
//   3. Every generator map entry names a known formatter
//   4. The source workbook exists (warning only)
//   5. With --workbook: every record of the most advanced workbook
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/loc-sal-tools/internal/htmlgen"
	"github.com/ginjaninja78/loc-sal-tools/internal/pipeline"
	"github.com/ginjaninja78/loc-sal-tools/internal/validation"
	"github.com/ginjaninja78/loc-sal-tools/pkg/utils"
)

// checkWorkbook also validates the records of the workbook.
var checkWorkbook bool

// strict treats record warnings as errors.
var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the user config and mapping tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ok := color.New(color.FgGreen)

		settings, mappings, err := loadConfig()
		if err != nil {
			return err
		}
		ok.Fprintf(out, "✓ Config %s\n", cfgFile)
		ok.Fprintf(out, "✓ Header map %s (%d aliases)\n", settings.HeaderMap, len(mappings.Headers))
		ok.Fprintf(out, "✓ Statute map %s (%d aliases)\n", settings.StatuteMap, len(mappings.Statutes))

		dispatch, err := htmlgen.NewDispatch(mappings.Generators)
		if err != nil {
			return fmt.Errorf("generator map %s: %w (known formatters: %s)",
				settings.GeneratorMap, err, strings.Join(htmlgen.Names(), ", "))
		}
		ok.Fprintf(out, "✓ Generator map %s\n\n", settings.GeneratorMap)

		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"Statute Type", "Formatter"})
		for _, b := range dispatch.Bindings() {
			tbl.AppendRow(table.Row{string(b.Type), b.Formatter})
		}
		fmt.Fprintln(out, tbl.Render())

		if !utils.FileExists(settings.SourcePath()) {
			color.New(color.FgYellow).Fprintf(out, "\n! Source workbook not found: %s\n", settings.SourcePath())
		}

		if !checkWorkbook {
			return nil
		}

		p, err := pipeline.New(settings, mappings, pipeline.Options{Logger: logger, RunID: runID})
		if err != nil {
			return err
		}

		sheet, err := p.Load()
		if err != nil {
			return err
		}

		v := validation.NewValidator(dispatch, validation.ValidationOptions{TreatWarningsAsErrors: strict})
		res := v.ValidateAll(sheet.Rows)

		fmt.Fprintf(out, "\nWorkbook %s (%d records)\n", sheet.SourceFile, res.RowsValidated)
		fmt.Fprint(out, validation.FormatErrors(res.Errors))
		fmt.Fprintln(out)

		if !res.IsValid {
			return fmt.Errorf("workbook validation failed: %d error(s), %d warning(s)", res.ErrorCount, res.WarningCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&checkWorkbook,
		"workbook",
		false,
		"Also validate the records of the workbook",
	)

	validateCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Treat record warnings as errors (with --workbook)",
	)
}
