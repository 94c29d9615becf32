// Package fetch downloads GDELT 2.0 update archives.
package fetch

import (
	"bufio"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/metrics"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/reader"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// DefaultBaseURL is the GDELT 2.0 update feed.
const DefaultBaseURL = "http://data.gdeltproject.org/gdeltv2/"

const userAgent = "gdelt-fetcher"

var (
	// ErrChecksum means a downloaded archive does not match its listed MD5.
	ErrChecksum = errors.New("checksum mismatch")
	// ErrUpdateList means lastupdate.txt or masterfilelist.txt could not be
	// parsed.
	ErrUpdateList = errors.New("malformed update list")
	// ErrArchiveName means an archive URL does not end in a usable file name.
	ErrArchiveName = errors.New("bad archive name")
)

// Archive is one entry of an update list.
type Archive struct {
	Size int64       `json:"size"`
	MD5  string      `json:"md5"`
	URL  string      `json:"url"`
	Kind record.Kind `json:"kind"`
}

// Name is the file name part of the URL.
func (a Archive) Name() string { return path.Base(a.URL) }

// Timestamp is the update slot encoded in the leading YYYYMMDDHHMMSS of the
// file name.
func (a Archive) Timestamp() (time.Time, bool) {
	name := a.Name()
	if len(name) < 14 {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102150405", name[:14])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (a Archive) fileName() (string, error) {
	name := a.Name()
	switch {
	case name == "." || name == ".." || name == "/":
		return "", fmt.Errorf("%w: %q", ErrArchiveName, a.URL)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%w: %q", ErrArchiveName, a.URL)
	}
	return name, nil
}

// Fetcher talks to the update feed. The zero value is not usable; build one
// with New.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
	// Translation selects the translated-stream update list.
	Translation bool
	Logger      *zap.Logger
	// Metrics counts download outcomes; nil records nothing.
	Metrics *metrics.Metrics
}

// New returns a Fetcher for baseURL, or DefaultBaseURL when empty.
func New(baseURL string, logger *zap.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		Client:  &http.Client{Timeout: 2 * time.Minute},
		BaseURL: baseURL,
		Logger:  logger,
	}
}

// listURL names lastupdate or masterfilelist, with the -translation
// suffix when the fetcher reads the translated stream.
func (f *Fetcher) listURL(list string) string {
	name := list + ".txt"
	if f.Translation {
		name = list + "-translation.txt"
	}
	return strings.TrimSuffix(f.BaseURL, "/") + "/" + name
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %s", url, resp.Status)
	}
	return resp, nil
}

// LatestUpdate fetches and parses the current update list.
func (f *Fetcher) LatestUpdate(ctx context.Context) ([]Archive, error) {
	return f.fetchList(ctx, "lastupdate")
}

// MasterList fetches the list of every archive published since the start of
// GDELT 2.0. It is large; callers usually narrow it with ByTimestamp.
func (f *Fetcher) MasterList(ctx context.Context) ([]Archive, error) {
	return f.fetchList(ctx, "masterfilelist")
}

func (f *Fetcher) fetchList(ctx context.Context, list string) ([]Archive, error) {
	url := f.listURL(list)
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", list, err)
	}
	defer resp.Body.Close()
	archives, err := ParseUpdateList(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", list, err)
	}
	f.Logger.Debug("update list fetched", zap.String("url", url), zap.Int("archives", len(archives)))
	return archives, nil
}

// ByTimestamp returns the archives of update slot t. KindUnknown matches
// every kind.
func ByTimestamp(archives []Archive, t time.Time, kind record.Kind) []Archive {
	var out []Archive
	for _, a := range archives {
		ts, ok := a.Timestamp()
		if !ok || !ts.Equal(t) {
			continue
		}
		if kind != record.KindUnknown && a.Kind != kind {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ParseUpdateList reads "<size> <md5> <url>" lines.
func ParseUpdateList(r io.Reader) ([]Archive, error) {
	var out []Archive
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrUpdateList, line, len(fields))
		}
		size, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("%w: line %d: bad size %q", ErrUpdateList, line, fields[0])
		}
		if _, err := hex.DecodeString(fields[1]); err != nil || len(fields[1]) != 2*md5.Size {
			return nil, fmt.Errorf("%w: line %d: bad md5 %q", ErrUpdateList, line, fields[1])
		}
		out = append(out, Archive{
			Size: size,
			MD5:  strings.ToLower(fields[1]),
			URL:  fields[2],
			Kind: reader.DetectKind(fields[2]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func fileMD5(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Download stores a in dir and returns its path. A file already present with
// the right checksum is not fetched again.
func (f *Fetcher) Download(ctx context.Context, a Archive, dir string) (string, error) {
	name, err := a.fileName()
	if err != nil {
		f.Metrics.IncrementDownload("error")
		return "", err
	}
	dest := filepath.Join(dir, name)
	if sum, err := fileMD5(dest); err == nil && sum == a.MD5 {
		f.Logger.Debug("archive cached", zap.String("path", dest))
		f.Metrics.IncrementDownload("cached")
		return dest, nil
	}
	if err := f.download(ctx, a, dir, dest); err != nil {
		f.Metrics.IncrementDownload("error")
		return "", err
	}
	f.Metrics.IncrementDownload("ok")
	return dest, nil
}

func (f *Fetcher) download(ctx context.Context, a Archive, dir, dest string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	resp, err := f.get(ctx, a.URL)
	if err != nil {
		return fmt.Errorf("download %s: %w", a.Name(), err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(dir, a.Name()+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	h := md5.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", a.Name(), err)
	}
	if sum := hex.EncodeToString(h.Sum(nil)); sum != a.MD5 {
		return fmt.Errorf("download %s: %w: got %s, want %s", a.Name(), ErrChecksum, sum, a.MD5)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}
	f.Logger.Info("archive downloaded", zap.String("path", dest), zap.Int64("bytes", n))
	return nil
}

// DownloadAll downloads archives with at most concurrency transfers in
// flight. Paths are returned in input order. The first failure cancels the
// rest.
func (f *Fetcher) DownloadAll(ctx context.Context, archives []Archive, dir string, concurrency int) ([]string, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	paths := make([]string, len(archives))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, a := range archives {
		g.Go(func() error {
			p, err := f.Download(ctx, a, dir)
			if err != nil {
				return err
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
