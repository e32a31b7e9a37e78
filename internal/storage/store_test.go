package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	params := map[string]float64{"sigma": 10, "alpha": 0.99}
	metrics := map[string]float64{"best_energy": 0.25}
	columns := []string{"iter", "temp", "energy"}
	rows := [][]float64{
		{1, 1.0, 2.5},
		{2, 0.99, 2.1},
		{3, 0.9801, 1.8},
	}

	runID, err := st.Save("anneal", 25, params, metrics, columns, rows)
	require.NoError(t, err)
	assert.Contains(t, runID, "anneal_")

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "anneal", meta.Kind)
	assert.Equal(t, int64(25), meta.Seed)
	assert.Equal(t, params, meta.Params)
	assert.Equal(t, metrics, meta.Metrics)

	gotColumns, gotRows, err := st.LoadHistory(runID)
	require.NoError(t, err)
	assert.Equal(t, columns, gotColumns)
	require.Len(t, gotRows, 3)
	for i := range rows {
		for j := range rows[i] {
			assert.InDelta(t, rows[i][j], gotRows[i][j], 1e-6)
		}
	}
}

func TestSaveRowLengthMismatch(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Save("anneal", 1, nil, nil,
		[]string{"a", "b"},
		[][]float64{{1, 2}, {3}},
	)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Save("fit", 442, nil, nil, []string{"iter"}, [][]float64{{0}})
	require.NoError(t, err)
	_, err = st.Save("anneal", 25, nil, nil, []string{"iter"}, [][]float64{{0}})
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/statlab-test")
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("fit_12345")
	assert.Error(t, err)

	_, _, err = st.LoadHistory("fit_12345")
	assert.Error(t, err)
}

func TestColumn(t *testing.T) {
	columns := []string{"iter", "temp", "energy"}
	rows := [][]float64{
		{1, 1.0, 2.5},
		{2, 0.99, 2.1},
	}

	temps, ok := Column(columns, rows, "temp")
	require.True(t, ok)
	assert.Equal(t, []float64{1.0, 0.99}, temps)

	_, ok = Column(columns, rows, "missing")
	assert.False(t, ok)
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save("anneal", 25,
		map[string]float64{"sigma": 10},
		map[string]float64{"best_energy": 0.5},
		[]string{"iter", "energy"},
		[][]float64{{1, 2.5}, {2, 2.0}},
	)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	columns, rows, err := st.LoadHistory(runID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, columns, rows))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "meta")
	assert.Contains(t, decoded, "columns")
	assert.Contains(t, decoded, "rows")
}
