// Package dataset loads and prepares the 2D point clouds the lab fits.
package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FaithfulURL is the Old Faithful geyser dataset: eruption duration and
// waiting time in minutes, whitespace separated.
const FaithfulURL = "https://raw.githubusercontent.com/probml/probml-data/main/data/faithful.txt"

const faithfulCacheName = "faithful.txt"

var ErrEmptyDataset = errors.New("dataset: no observations")

// Parse reads whitespace-separated rows of two floats into an N x 2 matrix.
// Blank lines are skipped; a malformed row is an error.
func Parse(r io.Reader) (*mat.Dense, error) {
	var rows []float64
	n := 0

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("dataset: line %d: expected 2 columns, got %d", line, len(fields))
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: line %d: %w", line, err)
			}
			rows = append(rows, v)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyDataset
	}

	return mat.NewDense(n, 2, rows), nil
}

// LoadFile parses a local dataset file.
func LoadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// FetchFaithful downloads the Old Faithful data, caching the raw file under
// cacheDir. A cached copy short-circuits the download, and a stale cache is
// still used when the network fails.
func FetchFaithful(ctx context.Context, client *http.Client, cacheDir string) (*mat.Dense, error) {
	if client == nil {
		client = http.DefaultClient
	}
	cachePath := filepath.Join(cacheDir, faithfulCacheName)

	if x, err := LoadFile(cachePath); err == nil {
		return x, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, FaithfulURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset: fetch %s: %w", FaithfulURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset: fetch %s: status %s", FaithfulURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dataset: read body: %w", err)
	}

	x, err := Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0755); err == nil {
			_ = os.WriteFile(cachePath, body, 0644)
		}
	}

	return x, nil
}
