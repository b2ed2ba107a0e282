package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
)

// maxErrorBody bounds how much of a failed response is quoted in errors
const maxErrorBody = 64 << 10

// maxNumbered caps the search for a free "name (N).ext" file name
const maxNumbered = 10000

// HTTPDownloader streams artifacts to disk over HTTP
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewHTTPDownloader creates a downloader. A nil client selects http.DefaultClient.
func NewHTTPDownloader(client *http.Client, userAgent string, logger *slog.Logger) *HTTPDownloader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPDownloader{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Download implements ports.Downloader.
//
// The body is written to a temporary file next to the destination and renamed
// into place once complete, so an interrupted transfer never leaves a
// truncated file under the final name.
func (d *HTTPDownloader) Download(ctx context.Context, req ports.DownloadRequest) (*ports.DownloadResult, error) {
	if req.URL == "" {
		return nil, errors.New("download URL is empty")
	}

	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create download directory: %w", err)
	}

	filename := req.Filename
	if filename == "" {
		filename = domain.FilenameFromURL(req.URL)
	}

	dest, err := d.destination(dir, filename, req.Overwrite)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	if d.userAgent != "" {
		httpReq.Header.Set("User-Agent", d.userAgent)
	}

	d.logger.Debug("downloading", "url", req.URL, "dest", dest)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("download: status=%s body=%s", resp.Status, string(b))
	}

	total := resp.ContentLength
	if total < 0 {
		total = -1
	}

	hasher := sha256.New()
	var written int64
	err = writeFileAtomically(dir, dest, func(f *os.File) error {
		w := &progressWriter{total: total, onProgress: req.Progress}
		n, err := io.Copy(io.MultiWriter(f, hasher, w), resp.Body)
		written = n
		if err != nil {
			return fmt.Errorf("stream artifact: %w", err)
		}
		return verify(hasher, req.ExpectedSHA256)
	})
	if err != nil {
		return nil, err
	}

	sum := hex.EncodeToString(hasher.Sum(nil))
	d.logger.Debug("download complete", "dest", dest, "bytes", written, "sha256", sum)

	return &ports.DownloadResult{
		Path:   dest,
		Bytes:  written,
		SHA256: sum,
	}, nil
}

// destination joins filename onto dir without letting it escape dir, and
// picks "name (N).ext" when the file already exists and overwrite is false.
func (d *HTTPDownloader) destination(dir, filename string, overwrite bool) (string, error) {
	dest, err := securejoin.SecureJoin(dir, filename)
	if err != nil {
		return "", fmt.Errorf("resolve destination: %w", err)
	}
	if overwrite || !exists(dest) {
		return dest, nil
	}

	for n := 1; n < maxNumbered; n++ {
		candidate, err := securejoin.SecureJoin(dir, domain.NumberedFilename(filename, n))
		if err != nil {
			return "", fmt.Errorf("resolve destination: %w", err)
		}
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", filename, dir)
}

func verify(h hash.Hash, expected string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if expected == "" {
		return nil
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return fmt.Errorf("%w: expected %s, got %s", domain.ErrChecksumMismatch, expected, actual)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// writeFileAtomically writes to a temp file in dir and renames it to dest
func writeFileAtomically(dir, dest string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(dir, ".fetch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Removing after a successful rename is a no-op
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// progressWriter counts bytes and forwards them to a ports.ProgressFunc
type progressWriter struct {
	written    int64
	total      int64
	onProgress ports.ProgressFunc
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.onProgress != nil {
		w.onProgress(w.written, w.total)
	}
	return len(p), nil
}
