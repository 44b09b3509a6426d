// =============================================================================
// Statutes at Large Tools - Configuration Module
// =============================================================================
//
// This module is responsible for loading the user settings and the three
// mapping tables that drive normalization and HTML dispatch.
//
// CONFIGURATION FILES:
//   1. User config (user-config.yaml): paths, prefixes, congress metadata
//   2. Mapping tables (maps/*.yaml): header, statute-type and generator maps
//
// Settings are resolved once at startup into an immutable Settings value
// that is passed explicitly to every component. Every key can be overridden
// through a LOCSAL_-prefixed environment variable.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for settings.
const envPrefix = "LOCSAL"

// configType is the user config file format.
const configType = "yaml"

// Defaults.
const (
	DefaultExcelDir        = "excel"
	DefaultHTMLDir         = "html"
	DefaultTmpDir          = "tmp"
	DefaultStartRow        = 2
	DefaultInProcessPrefix = "in-process-"
	DefaultAuditedPrefix   = "audited-"
	DefaultHeaderMap       = "maps/header-map.yaml"
	DefaultStatuteMap      = "maps/statute-map.yaml"
	DefaultGeneratorMap    = "maps/html-generators-map.yaml"
)

// Validation errors.
var (
	ErrMissingSetting  = errors.New("missing required setting")
	ErrInvalidStartRow = errors.New("START_ROW must be at least 2")
	ErrInvalidSkipRow  = errors.New("SKIP_ROWS entries must be positive")
)

// =============================================================================
// SETTINGS STRUCTURE
// =============================================================================

// Settings holds the user configuration.
type Settings struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// ExcelDir holds the source, audited and in-process spreadsheets.
	ExcelDir string `mapstructure:"EXCEL_DIR"`

	// HTMLDir receives the generated HTML fragment.
	HTMLDir string `mapstructure:"HTML_DIR"`

	// TmpDir holds audit checkpoints and diagnostics logs.
	TmpDir string `mapstructure:"TMP_DIR"`

	// =========================================================================
	// INPUT / OUTPUT FILES
	// =========================================================================

	// ExcelFile is the source spreadsheet name inside ExcelDir.
	ExcelFile string `mapstructure:"EXCEL_FILE"`

	// StartRow is the 1-based spreadsheet row where data begins. Row 1 is
	// always the header; rows 2..StartRow-1 are skipped.
	StartRow int `mapstructure:"START_ROW"`

	// SkipRows lists the skipped rows. Only its length is used, to compute
	// the row number shown to the auditor.
	SkipRows []int `mapstructure:"SKIP_ROWS"`

	// OutputFile is the HTML fragment name inside HTMLDir.
	OutputFile string `mapstructure:"OUTPUT_FILE"`

	InProcessPrefix string `mapstructure:"IN_PROCESS_PREFIX"`
	AuditedPrefix   string `mapstructure:"AUDITED_PREFIX"`

	// =========================================================================
	// PUBLICATION METADATA
	// =========================================================================

	Congress          string `mapstructure:"CONGRESS"`
	CongressStartDate string `mapstructure:"CONGRESS_START_DATE"`
	CongressEndDate   string `mapstructure:"CONGRESS_END_DATE"`
	PublicPDFURL      string `mapstructure:"PUBLIC_PDF_URL"`
	PrivatePDFURL     string `mapstructure:"PRIVATE_PDF_URL"`

	// =========================================================================
	// MAPPING TABLES AND DIAGNOSTICS
	// =========================================================================

	HeaderMap    string `mapstructure:"HEADER_MAP"`
	StatuteMap   string `mapstructure:"STATUTE_MAP"`
	GeneratorMap string `mapstructure:"GENERATOR_MAP"`

	// DiagnosticsLog writes row-level generation diagnostics to TmpDir.
	DiagnosticsLog bool `mapstructure:"DIAGNOSTICS_LOG"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the user configuration file, applies defaults and environment
// overrides, and validates the result. A missing file is an error: the tool
// has no usable defaults for the congress metadata or the PDF URLs.
func Load(configPath string) (*Settings, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &settings, nil
}

// applyDefaults registers every recognized key so AutomaticEnv can see
// keys that are absent from the file.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("EXCEL_DIR", DefaultExcelDir)
	v.SetDefault("HTML_DIR", DefaultHTMLDir)
	v.SetDefault("TMP_DIR", DefaultTmpDir)
	v.SetDefault("EXCEL_FILE", "")
	v.SetDefault("START_ROW", DefaultStartRow)
	v.SetDefault("SKIP_ROWS", []int{})
	v.SetDefault("OUTPUT_FILE", "")
	v.SetDefault("IN_PROCESS_PREFIX", DefaultInProcessPrefix)
	v.SetDefault("AUDITED_PREFIX", DefaultAuditedPrefix)
	v.SetDefault("CONGRESS", "")
	v.SetDefault("CONGRESS_START_DATE", "")
	v.SetDefault("CONGRESS_END_DATE", "")
	v.SetDefault("PUBLIC_PDF_URL", "")
	v.SetDefault("PRIVATE_PDF_URL", "")
	v.SetDefault("HEADER_MAP", DefaultHeaderMap)
	v.SetDefault("STATUTE_MAP", DefaultStatuteMap)
	v.SetDefault("GENERATOR_MAP", DefaultGeneratorMap)
	v.SetDefault("DIAGNOSTICS_LOG", true)
}

// Validate checks that every required setting is present.
func (s *Settings) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"EXCEL_DIR", s.ExcelDir},
		{"HTML_DIR", s.HTMLDir},
		{"TMP_DIR", s.TmpDir},
		{"EXCEL_FILE", s.ExcelFile},
		{"OUTPUT_FILE", s.OutputFile},
		{"IN_PROCESS_PREFIX", s.InProcessPrefix},
		{"AUDITED_PREFIX", s.AuditedPrefix},
		{"CONGRESS", s.Congress},
		{"CONGRESS_START_DATE", s.CongressStartDate},
		{"CONGRESS_END_DATE", s.CongressEndDate},
		{"PUBLIC_PDF_URL", s.PublicPDFURL},
		{"PRIVATE_PDF_URL", s.PrivatePDFURL},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingSetting, r.key)
		}
	}

	if s.StartRow < 2 {
		return fmt.Errorf("%w (got %d)", ErrInvalidStartRow, s.StartRow)
	}

	for _, row := range s.SkipRows {
		if row < 1 {
			return fmt.Errorf("%w (got %d)", ErrInvalidSkipRow, row)
		}
	}

	return nil
}

// =============================================================================
// DERIVED PATHS
// =============================================================================

// SourcePath is the spreadsheet to audit.
func (s *Settings) SourcePath() string {
	return filepath.Join(s.ExcelDir, s.ExcelFile)
}

// AuditedPath is where the completed audit is written.
func (s *Settings) AuditedPath() string {
	return filepath.Join(s.ExcelDir, s.AuditedPrefix+s.ExcelFile)
}

// InProcessPath is where a paused audit is written.
func (s *Settings) InProcessPath() string {
	return filepath.Join(s.ExcelDir, s.InProcessPrefix+s.ExcelFile)
}

// HTMLPath is the generated fragment.
func (s *Settings) HTMLPath() string {
	return filepath.Join(s.HTMLDir, s.OutputFile)
}

// DisplayOffset is added to a zero-based row index to get the row number
// shown to the auditor.
func (s *Settings) DisplayOffset() int {
	return 2 + len(s.SkipRows)
}
