// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/slicebench/internal/httputil"
	"github.com/pdiddy/slicebench/pkg/types"
)

// CSVName is the dataset file name inside the data directory.
const CSVName = "slice_localization_data.csv"

// Path returns the expected CSV location for the configured data directory.
func Path(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.DataDir, CSVName)
}

// Fetch downloads the dataset into cfg.DataDir. If the CSV already exists
// the download is skipped. Zip archives are unpacked to their CSV member;
// plain CSV URLs are saved directly. The download goes to a temporary
// file and is renamed into place on success.
func Fetch(ctx context.Context, client *http.Client, cfg types.DatasetConfig, w io.Writer) (skipped bool, err error) {
	dest := Path(cfg)
	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", dest)
		return true, nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return false, fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	fmt.Fprintf(w, "downloading: %s\n", cfg.SourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.SourceURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return false, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HTTP %d from %s", resp.StatusCode, cfg.SourceURL)
	}

	tmpPath, err := saveTemp(resp.Body, cfg.DataDir)
	if err != nil {
		return false, err
	}
	defer os.Remove(tmpPath)

	if strings.HasSuffix(strings.ToLower(cfg.SourceURL), ".zip") ||
		strings.Contains(resp.Header.Get("Content-Type"), "zip") {
		if err := extractCSV(tmpPath, dest); err != nil {
			return false, err
		}
	} else {
		if err := os.Rename(tmpPath, dest); err != nil {
			return false, fmt.Errorf("renaming download: %w", err)
		}
	}

	fmt.Fprintf(w, "saved: %s\n", dest)
	return false, nil
}

// saveTemp copies r into a temporary file under dir and returns its path.
func saveTemp(r io.Reader, dir string) (string, error) {
	tmpFile, err := os.CreateTemp(dir, ".fetch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	return tmpPath, nil
}

// extractCSV unpacks the first .csv member of the zip archive at src to dest.
func extractCSV(src, dest string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening archive member %s: %w", f.Name, err)
		}

		tmpPath, err := saveTemp(rc, filepath.Dir(dest))
		rc.Close()
		if err != nil {
			return err
		}
		if err := os.Rename(tmpPath, dest); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("renaming extracted CSV: %w", err)
		}
		return nil
	}

	return fmt.Errorf("archive contains no CSV member")
}
