// Package storage persists run histories under a data directory, one
// directory per run: metadata.json plus history.csv with named columns.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Dir returns the base data directory, also used as the dataset cache.
func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run: metadata.json and history.csv with the given column
// names. Row lengths must match the header.
func (s *Store) Save(kind string, seed int64, params, metrics map[string]float64, columns []string, rows [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      kind,
		Timestamp: time.Now(),
		Seed:      seed,
		Params:    params,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return "", err
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return "", fmt.Errorf("storage: row %d has %d values, header has %d", i, len(row), len(columns))
		}
		record := make([]string, len(row))
		for j, val := range row {
			record[j] = strconv.FormatFloat(val, 'f', 6, 64)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory reads history.csv back as column names plus numeric rows.
func (s *Store) LoadHistory(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("storage: empty history for run %s", runID)
	}

	columns := records[0]
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		row := make([]float64, 0, len(record))
		ok := true
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row = append(row, val)
		}
		if ok {
			rows = append(rows, row)
		}
	}

	return columns, rows, nil
}

// Column extracts a single named column from history rows.
func Column(columns []string, rows [][]float64, name string) ([]float64, bool) {
	idx := -1
	for i, c := range columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out, true
}
