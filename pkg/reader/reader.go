// Package reader splits GDELT tab-separated files into rows of cells.
package reader

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// MaxLineSize is the longest line accepted. GKG rows with large GCAM and
// quotation blocks run to a few hundred KiB.
const MaxLineSize = 16 << 20

// ErrEmptyArchive is returned when a zip archive holds no files.
var ErrEmptyArchive = errors.New("archive has no entries")

// Reader yields tab-separated rows.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Reader{sc: sc}
}

// Read returns the cells of the next non-blank line, or io.EOF. Trailing
// empty cells are kept, so a row's length is always its column count.
func (r *Reader) Read() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSuffix(r.sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		return strings.Split(text, "\t"), nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

// Line is the 1-based number of the line last returned by Read.
func (r *Reader) Line() int { return r.line }

// ReadAll reads every remaining row.
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

type archiveFile struct {
	io.ReadCloser
	zr *zip.ReadCloser
}

func (a *archiveFile) Close() error {
	err := a.ReadCloser.Close()
	if zerr := a.zr.Close(); err == nil {
		err = zerr
	}
	return err
}

// OpenArchive opens path for reading. A .zip archive is opened at its first
// entry, whose name is returned; any other file is read as is.
func OpenArchive(path string) (io.ReadCloser, string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", err
		}
		return f, filepath.Base(path), nil
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("open archive %s: %w", path, err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, "", fmt.Errorf("open %s in %s: %w", f.Name, path, err)
		}
		return &archiveFile{ReadCloser: rc, zr: zr}, f.Name, nil
	}
	zr.Close()
	return nil, "", fmt.Errorf("%s: %w", path, ErrEmptyArchive)
}

// DetectKind guesses the record kind from a GDELT file name such as
// 20250322180000.export.CSV.zip or 20250322180000.gkg.csv.
func DetectKind(name string) record.Kind {
	n := strings.ToLower(filepath.Base(name))
	switch {
	case strings.Contains(n, ".export.csv"):
		return record.KindEvent
	case strings.Contains(n, ".mentions.csv"):
		return record.KindMention
	case strings.Contains(n, ".gkg.csv"):
		return record.KindGKG
	}
	return record.KindUnknown
}
