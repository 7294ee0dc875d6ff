package ioingest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oceanobs/argodb/internal/iodb"
	"github.com/oceanobs/argodb/internal/ioschema"
	"github.com/oceanobs/argodb/internal/iotesting"
	"github.com/oceanobs/argodb/pkg/argo"
	"github.com/oceanobs/argodb/pkg/config"
	"github.com/oceanobs/argodb/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupIngestDB connects to the test database and recreates the
// schema from scratch.
func setupIngestDB(t *testing.T) (*config.Config, db.Operator) {
	t.Helper()

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Should connect to test database")
	t.Cleanup(func() { op.Close() })

	_ = op.DropAllTables(ctx)
	err = ioschema.New(cfg).Create(ctx)
	require.NoError(t, err, "Schema creation should succeed")

	return cfg, op
}

// fakeOpener serves pre-built fakeFiles by path.
func fakeOpener(files map[string]*fakeFile) func(string) (DataFile, error) {
	return func(path string) (DataFile, error) {
		f, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("cannot open %s", path)
		}
		return f, nil
	}
}

func metaFixture(id string) *fakeFile {
	return &fakeFile{vars: map[string]any{
		varPlatformNumber: id,
		varPIName:         "JOHN DOE  ",
		varProjectName:    "Argo AUSTRALIA",
		varLaunchDate:     "20230926091300",
	}}
}

func profFixture(id string) *fakeFile {
	return &fakeFile{
		vars: map[string]any{
			varPlatformNumber: id,
			varCycleNumber:    []int32{1, 2},
			varJuld:           []float64{26931.5, 26941.5},
			varLatitude:       []float64{-53.4, -53.2},
			varLongitude:      []float64{86.5, 86.9},
		},
		rows: map[string][][]float64{
			varPressure:    {{5.0, 10.0}, {5.2, 10.3}},
			varTemperature: {{20.1, 19.8}, {20.0, 19.5}},
			varSalinity:    {{35.0, 35.1}, {34.9, 35.0}},
		},
	}
}

func TestIngestOne_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupIngestDB(t)
	cfg.Ingest.DataDir = t.TempDir()

	id := "1902669"
	files := map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + metaSuffix: metaFixture(id),
		cfg.Ingest.DataDir + "/" + id + profSuffix: profFixture(id),
	}

	// fileExists guards the stages, so the fixtures need stand-ins on
	// disk.
	touch(t, cfg.Ingest.DataDir, id+metaSuffix)
	touch(t, cfg.Ingest.DataDir, id+profSuffix)

	ing := New(cfg, op, WithOpener(fakeOpener(files)))

	res, err := ing.IngestOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Profiles)
	assert.Equal(t, 4, res.Measurements)

	summaries, err := op.FloatSummaries(ctx, []int64{1902669})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1902669), summaries[0].PlatformNumber)
	assert.Equal(t, "JOHN DOE", summaries[0].PIName.String)
	assert.Equal(t, int64(2), summaries[0].Profiles)
	assert.Equal(t, int64(4), summaries[0].Measurements)
}

func TestIngestOne_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupIngestDB(t)
	cfg.Ingest.DataDir = t.TempDir()

	id := "1902669"
	touch(t, cfg.Ingest.DataDir, id+metaSuffix)
	touch(t, cfg.Ingest.DataDir, id+profSuffix)

	run := func() (argo.Result, error) {
		files := map[string]*fakeFile{
			cfg.Ingest.DataDir + "/" + id + metaSuffix: metaFixture(id),
			cfg.Ingest.DataDir + "/" + id + profSuffix: profFixture(id),
		}
		ing := New(cfg, op, WithOpener(fakeOpener(files)))
		return ing.IngestOne(ctx, id)
	}

	res1, err := run()
	require.NoError(t, err)
	assert.Equal(t, 2, res1.Profiles)
	assert.Equal(t, 4, res1.Measurements)

	// Second run without replace mode would collide on the measurement
	// primary key; replace mode makes it a clean no-op rewrite.
	cfg.Ingest.Replace = true
	res2, err := run()
	require.NoError(t, err)
	assert.Equal(t, 2, res2.Profiles)
	assert.Equal(t, 4, res2.Measurements)

	summaries, err := op.FloatSummaries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(2), summaries[0].Profiles)
	assert.Equal(t, int64(4), summaries[0].Measurements)
}

func TestIngestOne_ReplaceClearsStaleLevels(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupIngestDB(t)
	cfg.Ingest.DataDir = t.TempDir()
	cfg.Ingest.Replace = true

	id := "1902669"
	touch(t, cfg.Ingest.DataDir, id+profSuffix)

	ing := New(cfg, op, WithOpener(fakeOpener(map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + profSuffix: profFixture(id),
	})))
	res, err := ing.IngestOne(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 4, res.Measurements)

	// Re-download flagged every level bad: all sensor values are fill.
	// Replace mode must remove the previous run's rows, not keep them.
	gone := profFixture(id)
	gone.rows[varTemperature] = [][]float64{
		{math.NaN(), math.NaN()}, {math.NaN(), math.NaN()},
	}
	gone.rows[varSalinity] = [][]float64{
		{math.NaN(), math.NaN()}, {math.NaN(), math.NaN()},
	}
	ing = New(cfg, op, WithOpener(fakeOpener(map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + profSuffix: gone,
	})))
	res, err = ing.IngestOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Profiles)
	assert.Zero(t, res.Measurements)

	summaries, err := op.FloatSummaries(ctx, []int64{1902669})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(2), summaries[0].Profiles)
	assert.Zero(t, summaries[0].Measurements)
}

func TestIngestOne_MetadataMergePreservesKnownValues(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupIngestDB(t)
	cfg.Ingest.DataDir = t.TempDir()

	id := "1902669"
	touch(t, cfg.Ingest.DataDir, id+metaSuffix)

	full := metaFixture(id)
	ing := New(cfg, op, WithOpener(fakeOpener(map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + metaSuffix: full,
	})))
	_, err := ing.IngestOne(ctx, id)
	require.NoError(t, err)

	// Re-ingest a sparse record: PI name missing, project changed.
	sparse := &fakeFile{vars: map[string]any{
		varPlatformNumber: id,
		varProjectName:    "Argo RENAMED",
	}}
	ing = New(cfg, op, WithOpener(fakeOpener(map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + metaSuffix: sparse,
	})))
	_, err = ing.IngestOne(ctx, id)
	require.NoError(t, err)

	summaries, err := op.FloatSummaries(ctx, []int64{1902669})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	// NULL never overwrites, non-NULL does.
	assert.Equal(t, "JOHN DOE", summaries[0].PIName.String)
	assert.Equal(t, "Argo RENAMED", summaries[0].ProjectName.String)
}

func TestIngestOne_ProfileFirstSeenWins(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupIngestDB(t)
	cfg.Ingest.DataDir = t.TempDir()
	cfg.Ingest.Replace = true

	id := "1902669"
	touch(t, cfg.Ingest.DataDir, id+profSuffix)

	first := profFixture(id)
	ing := New(cfg, op, WithOpener(fakeOpener(map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + profSuffix: first,
	})))
	_, err := ing.IngestOne(ctx, id)
	require.NoError(t, err)

	// Same cycles, shifted dates: the stored dates must not move.
	moved := profFixture(id)
	moved.vars[varJuld] = []float64{27000.0, 27001.0}
	ing = New(cfg, op, WithOpener(fakeOpener(map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + id + profSuffix: moved,
	})))
	_, err = ing.IngestOne(ctx, id)
	require.NoError(t, err)

	summaries, err := op.FloatSummaries(ctx, []int64{1902669})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.True(t, summaries[0].LastProfile.Valid)
	assert.Equal(t,
		time.Date(2023, 10, 6, 12, 0, 0, 0, time.UTC),
		summaries[0].LastProfile.Time.UTC())
}

func TestIngestAll_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupIngestDB(t)
	cfg.Ingest.DataDir = t.TempDir()

	good, bad := "1902669", "1902670"
	touch(t, cfg.Ingest.DataDir, good+profSuffix)
	touch(t, cfg.Ingest.DataDir, bad+profSuffix)

	// The bad float's file lacks a platform number.
	broken := &fakeFile{vars: map[string]any{
		varCycleNumber: []int32{1},
	}}
	files := map[string]*fakeFile{
		cfg.Ingest.DataDir + "/" + good + profSuffix: profFixture(good),
		cfg.Ingest.DataDir + "/" + bad + profSuffix:  broken,
	}

	clock := clockwork.NewFakeClock()
	ing := New(cfg, op, WithOpener(fakeOpener(files)), WithClock(clock))

	results, err := ing.IngestAll(ctx)
	require.NoError(t, err, "One failure must not fail the run")
	require.Len(t, results, 2)

	assert.NoError(t, results[good].Err)
	assert.Equal(t, 2, results[good].Profiles)

	require.Error(t, results[bad].Err)
	var fe *argo.FloatError
	require.True(t, errors.As(results[bad].Err, &fe))
	assert.Equal(t, bad, fe.FloatID)
	assert.Equal(t, argo.StageProfiles, fe.Stage)
	assert.ErrorIs(t, results[bad].Err, argo.ErrMissingIdentity)
}
