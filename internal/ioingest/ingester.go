package ioingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
	"github.com/oceanobs/argodb/internal/ionetcdf"
	"github.com/oceanobs/argodb/pkg/argo"
	"github.com/oceanobs/argodb/pkg/config"
	"github.com/oceanobs/argodb/pkg/db"
	"github.com/oceanobs/argodb/pkg/schema"
)

// ingester implements the argo.Ingester interface.
type ingester struct {
	cfg      *config.Config
	operator db.Operator
	clock    clockwork.Clock
	open     func(path string) (DataFile, error)
}

// Option adjusts an ingester at construction time.
type Option func(*ingester)

// WithClock replaces the wall clock used for the missing-profile-date
// fallback. Tests use a fake clock to pin the substituted timestamp.
func WithClock(clock clockwork.Clock) Option {
	return func(ing *ingester) { ing.clock = clock }
}

// WithOpener replaces the file opener. Tests use in-memory fakes
// instead of real NetCDF files.
func WithOpener(open func(path string) (DataFile, error)) Option {
	return func(ing *ingester) { ing.open = open }
}

// New creates an Ingester writing through the given operator's pool.
func New(cfg *config.Config, op db.Operator, opts ...Option) argo.Ingester {
	ing := &ingester{
		cfg:      cfg,
		operator: op,
		clock:    clockwork.NewRealClock(),
		open:     openNetCDF,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

func openNetCDF(path string) (DataFile, error) {
	return ionetcdf.Open(path)
}

// IngestOne ingests the metadata and profile files of one float.
// The two files are independent: a missing file is logged and skipped,
// not an error. All writes for the float run on one connection
// acquired from the pool and released before returning.
func (ing *ingester) IngestOne(
	ctx context.Context, floatID string,
) (argo.Result, error) {
	res := argo.Result{FloatID: floatID}

	pool := ing.operator.Pool()
	if pool == nil {
		res.Err = &argo.FloatError{
			FloatID: floatID, Stage: argo.StageLocate,
			Err: fmt.Errorf("not connected to database"),
		}
		return res, res.Err
	}

	dataDir := ing.cfg.Ingest.DataDir
	metaPath := filepath.Join(dataDir, floatID+metaSuffix)
	profPath := filepath.Join(dataDir, floatID+profSuffix)

	conn, err := pool.Acquire(ctx)
	if err != nil {
		res.Err = &argo.FloatError{
			FloatID: floatID, Stage: argo.StageLocate,
			Err: fmt.Errorf("failed to acquire connection: %w", err),
		}
		return res, res.Err
	}
	defer conn.Release()

	w := &writer{
		conn:      conn,
		batchSize: ing.cfg.Database.BatchSize,
		replace:   ing.cfg.Ingest.Replace,
	}

	if fileExists(metaPath) {
		if err := ing.ingestMetadata(ctx, w, metaPath); err != nil {
			res.Err = &argo.FloatError{
				FloatID: floatID, Stage: argo.StageMetadata, Err: err,
			}
			return res, res.Err
		}
	} else {
		slog.Warn("Metadata file not found, skipping",
			"float_id", floatID, "path", metaPath)
	}

	if fileExists(profPath) {
		profiles, measurements, err := ing.ingestProfiles(ctx, w, profPath)
		res.Profiles = profiles
		res.Measurements = measurements
		if err != nil {
			// Profiles written before the failure stay committed.
			res.Err = &argo.FloatError{
				FloatID: floatID, Stage: argo.StageProfiles, Err: err,
			}
			return res, res.Err
		}
	} else {
		slog.Warn("Profile file not found, skipping",
			"float_id", floatID, "path", profPath)
	}

	slog.Info("Float ingested",
		"float_id", floatID,
		"profiles", res.Profiles,
		"measurements", res.Measurements,
	)
	return res, nil
}

// ingestMetadata runs the metadata stage: extract one record, merge it
// into float_metadata. The file handle is released on all exit paths.
func (ing *ingester) ingestMetadata(
	ctx context.Context, w *writer, path string,
) error {
	slog.Info("Reading metadata", "path", path)

	f, err := ing.open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := extractMetadata(f)
	if err != nil {
		return err
	}

	if err := w.writeMetadata(ctx, m); err != nil {
		return err
	}

	slog.Info("Metadata updated", "platform_number", m.PlatformNumber)
	return nil
}

// ingestProfiles runs the profile stage: stream profiles out of the
// file and write each one with its measurement batch before moving to
// the next, so memory stays bounded on large files.
func (ing *ingester) ingestProfiles(
	ctx context.Context, w *writer, path string,
) (int, int, error) {
	slog.Info("Reading profiles", "path", path)

	f, err := ing.open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	measurements := 0
	profiles, err := extractProfiles(f, ing.clock,
		func(p *schema.Profile, ms []*schema.Measurement) error {
			if err := w.writeProfile(ctx, p); err != nil {
				return err
			}
			n, err := w.writeMeasurements(ctx, p, ms)
			if err != nil {
				return err
			}
			measurements += n
			if n > 0 {
				slog.Debug("Inserted measurements",
					"cycle", p.CycleNumber, "rows", n)
			}
			return nil
		})

	return profiles, measurements, err
}

// IngestAll discovers floats in the data directory and ingests them
// sequentially in sorted order. One float's failure is recorded in its
// Result and the run moves on; only a run where every float failed
// returns an error.
func (ing *ingester) IngestAll(
	ctx context.Context,
) (map[string]argo.Result, error) {
	startTime := ing.clock.Now()

	ids, err := discoverFloatIDs(ing.cfg.Ingest.DataDir)
	if err != nil {
		return nil, err
	}

	slog.Info("Found floats to ingest",
		"count", len(ids), "data_dir", ing.cfg.Ingest.DataDir)

	results := make(map[string]argo.Result, len(ids))
	succeeded, failed := 0, 0
	totalProfiles, totalMeasurements := 0, 0

	bar := pb.Full.Start(len(ids))
	bar.Set("prefix", "Ingesting floats: ")
	bar.Set(pb.CleanOnFinish, true)

	for _, id := range ids {
		select {
		case <-ctx.Done():
			bar.Finish()
			return results, ctx.Err()
		default:
		}

		res, err := ing.IngestOne(ctx, id)
		results[id] = res
		bar.Increment()

		if err != nil {
			failed++
			slog.Error("Failed to ingest float", "float_id", id, "error", err)
			continue
		}
		succeeded++
		totalProfiles += res.Profiles
		totalMeasurements += res.Measurements
	}
	bar.Finish()

	slog.Info("Ingestion complete",
		"succeeded", succeeded,
		"failed", failed,
		"profiles", humanize.Comma(int64(totalProfiles)),
		"measurements", humanize.Comma(int64(totalMeasurements)),
		"duration", ing.clock.Now().Sub(startTime).Round(time.Millisecond).String(),
	)

	if failed > 0 && succeeded == 0 && len(ids) > 0 {
		return results, fmt.Errorf("all %d floats failed to ingest", failed)
	}
	return results, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
