package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/loc-sal-tools/internal/config"
	"github.com/ginjaninja78/loc-sal-tools/internal/htmlgen"
	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

const userConfig = `EXCEL_DIR: data/excel
HTML_DIR: data/html
TMP_DIR: data/tmp
EXCEL_FILE: LoC_1-50.xlsx
START_ROW: 4
SKIP_ROWS: [2, 3]
OUTPUT_FILE: congress-1.html
CONGRESS: 1st Congress
CONGRESS_START_DATE: "1789"
CONGRESS_END_DATE: "1791"
PUBLIC_PDF_URL: https://example.gov/llsl-c1.pdf
PRIVATE_PDF_URL: https://example.gov/llsl-c1-private.pdf
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func validSettings() config.Settings {
	return config.Settings{
		ExcelDir:          "excel",
		HTMLDir:           "html",
		TmpDir:            "tmp",
		ExcelFile:         "in.xlsx",
		StartRow:          2,
		OutputFile:        "out.html",
		InProcessPrefix:   "in-process-",
		AuditedPrefix:     "audited-",
		Congress:          "1st Congress",
		CongressStartDate: "1789",
		CongressEndDate:   "1791",
		PublicPDFURL:      "https://example.gov/pub.pdf",
		PrivatePDFURL:     "https://example.gov/priv.pdf",
	}
}

func TestLoad_ReadsFileAndDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "user-config.yaml", userConfig)

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/excel", s.ExcelDir)
	assert.Equal(t, "LoC_1-50.xlsx", s.ExcelFile)
	assert.Equal(t, 4, s.StartRow)
	assert.Equal(t, []int{2, 3}, s.SkipRows)
	assert.Equal(t, "1st Congress", s.Congress)
	assert.Equal(t, "1789", s.CongressStartDate)
	assert.Equal(t, config.DefaultInProcessPrefix, s.InProcessPrefix)
	assert.Equal(t, config.DefaultAuditedPrefix, s.AuditedPrefix)
	assert.Equal(t, config.DefaultGeneratorMap, s.GeneratorMap)
	assert.True(t, s.DiagnosticsLog)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "user-config.yaml", userConfig)
	t.Setenv("LOCSAL_EXCEL_FILE", "LoC_51-71.xlsx")

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "LoC_51-71.xlsx", s.ExcelFile)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MissingRequiredSetting(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "user-config.yaml", "EXCEL_FILE: a.xlsx\n")

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrMissingSetting)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	s := validSettings()
	require.NoError(t, s.Validate())

	s.StartRow = 1
	require.ErrorIs(t, s.Validate(), config.ErrInvalidStartRow)

	s = validSettings()
	s.SkipRows = []int{0}
	require.ErrorIs(t, s.Validate(), config.ErrInvalidSkipRow)

	s = validSettings()
	s.PrivatePDFURL = "  "
	err := s.Validate()
	require.ErrorIs(t, err, config.ErrMissingSetting)
	assert.Contains(t, err.Error(), "PRIVATE_PDF_URL")
}

func TestDerivedPaths(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.SkipRows = []int{2, 3, 4}

	assert.Equal(t, filepath.Join("excel", "in.xlsx"), s.SourcePath())
	assert.Equal(t, filepath.Join("excel", "audited-in.xlsx"), s.AuditedPath())
	assert.Equal(t, filepath.Join("excel", "in-process-in.xlsx"), s.InProcessPath())
	assert.Equal(t, filepath.Join("html", "out.html"), s.HTMLPath())
	assert.Equal(t, 5, s.DisplayOffset())
}

func TestLoadMappings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := validSettings()
	s.HeaderMap = writeFile(t, dir, "header.yaml", "\"Sess.\": Session\nPage: PDF Start\n")
	s.StatuteMap = writeFile(t, dir, "statute.yaml", "Public Law: Law\nLaw: Law\n")
	s.GeneratorMap = writeFile(t, dir, "gen.yaml", "Law: law\n")

	m, err := config.LoadMappings(&s)
	require.NoError(t, err)

	assert.Equal(t, "Session", m.Headers["Sess."])
	assert.Equal(t, "law", m.Generators["Law"])
	assert.Equal(t, statute.TypeLaw, m.Normalizer().Type("Public Law"))
}

func TestLoadMappings_NotIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := validSettings()
	s.HeaderMap = writeFile(t, dir, "header.yaml", "")
	s.StatuteMap = writeFile(t, dir, "statute.yaml", "Res.: Resolution\nResolution: Joint Resolution\n")
	s.GeneratorMap = writeFile(t, dir, "gen.yaml", "")

	_, err := config.LoadMappings(&s)
	require.ErrorIs(t, err, statute.ErrNotIdempotent)
}

func TestLoadMappings_Malformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := validSettings()
	s.HeaderMap = writeFile(t, dir, "header.yaml", "- a\n- b\n")
	s.StatuteMap = writeFile(t, dir, "statute.yaml", "")
	s.GeneratorMap = writeFile(t, dir, "gen.yaml", "")

	_, err := config.LoadMappings(&s)
	require.Error(t, err)
}

func TestShippedConfig(t *testing.T) {
	t.Parallel()

	s, err := config.Load(filepath.Join("..", "..", "user-config.yaml"))
	require.NoError(t, err)

	s.HeaderMap = filepath.Join("..", "..", s.HeaderMap)
	s.StatuteMap = filepath.Join("..", "..", s.StatuteMap)
	s.GeneratorMap = filepath.Join("..", "..", s.GeneratorMap)

	m, err := config.LoadMappings(s)
	require.NoError(t, err)

	d, err := htmlgen.NewDispatch(m.Generators)
	require.NoError(t, err)

	for _, typ := range []statute.Type{
		statute.TypeLaw, statute.TypeAct, statute.TypeResolution, statute.TypeAppendix,
		statute.TypeArticle, statute.TypeOrdinance, statute.TypeSpecial,
	} {
		_, ok := d.For(typ)
		assert.True(t, ok, "no formatter for %q", typ)
	}
	assert.Equal(t, statute.TypeLaw, m.Normalizer().Type("Private Law"))
}
