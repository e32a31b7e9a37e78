package storage

import (
	"encoding/json"
	"io"
	"os"
)

type runExport struct {
	Meta    RunMetadata `json:"meta"`
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// ExportJSON writes a run's metadata and full history as a single JSON
// document.
func ExportJSON(w io.Writer, meta *RunMetadata, columns []string, rows [][]float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: *meta, Columns: columns, Rows: rows})
}

// ExportJSONStdout is ExportJSON to standard output.
func ExportJSONStdout(meta *RunMetadata, columns []string, rows [][]float64) error {
	return ExportJSON(os.Stdout, meta, columns, rows)
}
