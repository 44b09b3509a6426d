// =============================================================================
// Statutes at Large Tools - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand
// shares the config flag, the logger and the run identifier set up here.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salaudit)
//   ├── runCmd      (salaudit run)       audit if needed, then generate
//   ├── auditCmd    (salaudit audit)     audit only
//   ├── generateCmd (salaudit generate)  generate from the audited file
//   ├── validateCmd (salaudit validate)  check config and mapping tables
//   ├── summaryCmd  (salaudit summary)   count records per session and type
//   ├── resetCmd    (salaudit reset)     delete the audit checkpoint
//   └── versionCmd  (salaudit version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/loc-sal-tools/internal/config"
	"github.com/ginjaninja78/loc-sal-tools/internal/pipeline"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the user configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// noColor disables colored prompts.
var noColor bool

// noClear keeps the terminal from being cleared between audit questions.
var noClear bool

// logger is built in PersistentPreRunE and tagged with runID.
var logger = zap.NewNop()

// runID identifies one invocation in logs and diagnostics file names.
var runID string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "salaudit",
	Short: "Statutes at Large Tools - Audit PDF start pages and publish HTML tables",
	Long: `salaudit walks a Statutes at Large index spreadsheet one record at a time,
asks you to confirm or correct the PDF page where each statute begins, and then
publishes the audited records as an HTML fragment grouped by session.

An audit can be stopped at any prompt by typing 'exit'. The next run resumes at
the same record.

Example Usage:
  salaudit run                             # Audit (or resume), then generate HTML
  salaudit run --config ./congress-2.yaml  # Use another user config
  salaudit generate                        # Regenerate HTML from the audited file
  salaudit validate                        # Check config and mapping tables`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		runID = uuid.New().String()[:8]

		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		l, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.With(zap.String("run_id", runID))
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	// Without a subcommand, run the full pipeline.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"user-config.yaml",
		"Path to the user configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable colored output",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noClear,
		"no-clear",
		false,
		"Do not clear the terminal between audit questions",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the user config and the mapping tables it points to.
func loadConfig() (*config.Settings, *config.Mappings, error) {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	mappings, err := config.LoadMappings(settings)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("configuration loaded",
		zap.String("config", cfgFile),
		zap.String("workbook", settings.ExcelFile),
		zap.Int("header_aliases", len(mappings.Headers)),
		zap.Int("statute_aliases", len(mappings.Statutes)),
		zap.Int("generators", len(mappings.Generators)))

	return settings, mappings, nil
}

// newPipeline wires a pipeline to the command's standard streams.
func newPipeline(cmd *cobra.Command) (*config.Settings, *pipeline.Pipeline, error) {
	settings, mappings, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.New(settings, mappings, pipeline.Options{
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Logger:      logger,
		RunID:       runID,
		ClearScreen: !noClear,
	})
	if err != nil {
		return nil, nil, err
	}

	return settings, p, nil
}
