package reader

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

func TestReaderSplitsCells(t *testing.T) {
	r := NewReader(strings.NewReader("a\tb\t\t\r\n\n  \nc\td\n"))

	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", ""}, row, "trailing empty cells are kept")
	assert.Equal(t, 1, r.Line())

	row, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, row)
	assert.Equal(t, 4, r.Line())

	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadAll(t *testing.T) {
	rows, err := NewReader(strings.NewReader("1\t2\n3\t4")).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)

	rows, err = NewReader(strings.NewReader("")).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReaderLongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	rows, err := NewReader(strings.NewReader("a\t" + long + "\n")).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0][1], 1<<20)
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestOpenArchive(t *testing.T) {
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "20250322180000.export.CSV.zip")
	writeZip(t, zipPath, map[string]string{"20250322180000.export.CSV": "1\t2\n"})
	rc, name, err := OpenArchive(zipPath)
	require.NoError(t, err)
	assert.Equal(t, "20250322180000.export.CSV", name)
	rows, err := NewReader(rc).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, rows)
	require.NoError(t, rc.Close())

	plain := filepath.Join(dir, "rows.tsv")
	require.NoError(t, os.WriteFile(plain, []byte("x\ty\n"), 0o644))
	rc, name, err = OpenArchive(plain)
	require.NoError(t, err)
	assert.Equal(t, "rows.tsv", name)
	require.NoError(t, rc.Close())

	empty := filepath.Join(dir, "empty.zip")
	writeZip(t, empty, nil)
	_, _, err = OpenArchive(empty)
	assert.ErrorIs(t, err, ErrEmptyArchive)

	_, _, err = OpenArchive(filepath.Join(dir, "missing.zip"))
	assert.Error(t, err)
}

func TestDetectKind(t *testing.T) {
	cases := map[string]record.Kind{
		"20250322180000.export.CSV.zip":          record.KindEvent,
		"/data/20250322180000.mentions.CSV":      record.KindMention,
		"20250322180000.gkg.csv.zip":             record.KindGKG,
		"20250322180000.translation.gkg.csv.zip": record.KindGKG,
		"notes.txt":                              record.KindUnknown,
	}
	for name, want := range cases {
		assert.Equal(t, want, DetectKind(name), name)
	}
}
