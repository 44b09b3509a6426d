package checkpoint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/loc-sal-tools/internal/checkpoint"
)

func TestPath_UsesWorkbookStem(t *testing.T) {
	t.Parallel()

	s := checkpoint.New("tmp")
	assert.Equal(t, filepath.Join("tmp", "audit-checkpoint-LoC_1-50.txt"), s.Path("excel/LoC_1-50.xlsx"))
	assert.Equal(t, filepath.Join("tmp", "audit-checkpoint-LoC_1-50.txt"), s.Path("LoC_1-50.xlsx"))
}

func TestLoad_MissingIsZero(t *testing.T) {
	t.Parallel()

	idx, err := checkpoint.New(t.TempDir()).Load("a.xlsx")
	require.NoError(t, err)
	assert.Zero(t, idx)
}

func TestSaveLoadClear(t *testing.T) {
	t.Parallel()

	s := checkpoint.New(filepath.Join(t.TempDir(), "nested"))

	require.NoError(t, s.Save("a.xlsx", 17))
	assert.True(t, s.Exists("a.xlsx"))

	idx, err := s.Load("a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 17, idx)

	require.NoError(t, s.Save("a.xlsx", 3))
	idx, err = s.Load("a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	require.NoError(t, s.Clear("a.xlsx"))
	assert.False(t, s.Exists("a.xlsx"))
	require.NoError(t, s.Clear("a.xlsx"))
}

func TestLoad_BlankAndCorrupt(t *testing.T) {
	t.Parallel()

	s := checkpoint.New(t.TempDir())

	require.NoError(t, os.WriteFile(s.Path("blank.xlsx"), []byte("  \n"), 0o644))
	idx, err := s.Load("blank.xlsx")
	require.NoError(t, err)
	assert.Zero(t, idx)

	require.NoError(t, os.WriteFile(s.Path("trimmed.xlsx"), []byte(" 12\n"), 0o644))
	idx, err = s.Load("trimmed.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 12, idx)

	require.NoError(t, os.WriteFile(s.Path("bad.xlsx"), []byte("twelve"), 0o644))
	_, err = s.Load("bad.xlsx")
	require.ErrorIs(t, err, checkpoint.ErrCorrupt)

	require.NoError(t, os.WriteFile(s.Path("neg.xlsx"), []byte("-1"), 0o644))
	_, err = s.Load("neg.xlsx")
	require.ErrorIs(t, err, checkpoint.ErrCorrupt)
}
