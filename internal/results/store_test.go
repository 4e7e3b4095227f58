// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slicebench/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(types.ResultsConfig{ResultsDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func eval(stage, model string, testRMSE float64) types.Evaluation {
	return types.Evaluation{
		Stage:     stage,
		Model:     model,
		Params:    map[string]float64{"lambda": 0.1},
		TrainRMSE: testRMSE * 0.9,
		TestRMSE:  testRMSE,
	}
}

func TestRecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.Record(ctx, eval("linear", "ridge-closed-form", 9.5))
	require.NoError(t, err)
	id2, err := store.Record(ctx, eval("neural", "neural-warm-start", 7.2))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	records, err := store.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered by test RMSE, best first.
	assert.Equal(t, "neural-warm-start", records[0].Model)
	assert.Equal(t, 7.2, records[0].TestRMSE)
	assert.Equal(t, "ridge-closed-form", records[1].Model)

	assert.Equal(t, 0.1, records[0].Params["lambda"])
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestListStageFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, eval("linear", "ridge-closed-form", 9.5))
	require.NoError(t, err)
	_, err = store.Record(ctx, eval("neural", "neural-random", 8.1))
	require.NoError(t, err)

	records, err := store.List(ctx, QueryOptions{Stage: "linear"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "linear", records[0].Stage)
}

func TestListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, eval("boost", "gbt", float64(i)))
		require.NoError(t, err)
	}

	records, err := store.List(ctx, QueryOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 0.0, records[0].TestRMSE)
}

func TestRecordRejectsUnnamed(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Record(context.Background(), types.Evaluation{Model: "gbt"})
	assert.Error(t, err)

	_, err = store.Record(context.Background(), types.Evaluation{Stage: "boost"})
	assert.Error(t, err)
}

func TestExportYAML(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, eval("tune", "neural-tuned", 6.4))
	require.NoError(t, err)

	require.NoError(t, store.ExportYAML(ctx, QueryOptions{}))

	data, err := os.ReadFile(filepath.Join(store.resultsDir, "export.yaml"))
	require.NoError(t, err)

	var records []types.RunRecord
	require.NoError(t, yaml.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "neural-tuned", records[0].Model)
	assert.Equal(t, 6.4, records[0].TestRMSE)
}

func TestExportJSON(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, eval("tune", "neural-tuned", 6.4))
	require.NoError(t, err)

	require.NoError(t, store.ExportJSON(ctx, QueryOptions{}))

	_, err = os.Stat(filepath.Join(store.resultsDir, "export.json"))
	assert.NoError(t, err)
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(types.ResultsConfig{ResultsDir: dir})
	require.NoError(t, err)
	_, err = store.Record(ctx, eval("linear", "ridge-gd", 9.7))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(types.ResultsConfig{ResultsDir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
