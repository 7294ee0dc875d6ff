package ioingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oceanobs/argodb/pkg/schema"
)

// upsertMetadataSQL merges an incoming metadata record into the
// existing row. COALESCE keeps the stored value whenever the incoming
// one is NULL: ingestion may fill gaps but never erase what an earlier
// run captured.
const upsertMetadataSQL = `
INSERT INTO float_metadata (
	platform_number, float_serial_number, pi_name, project_name,
	deployment_platform, firmware_version, float_owner,
	operating_institute, launch_date, start_date, end_of_life,
	launch_latitude, launch_longitude
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (platform_number) DO UPDATE SET
	float_serial_number = COALESCE(EXCLUDED.float_serial_number, float_metadata.float_serial_number),
	pi_name = COALESCE(EXCLUDED.pi_name, float_metadata.pi_name),
	project_name = COALESCE(EXCLUDED.project_name, float_metadata.project_name),
	deployment_platform = COALESCE(EXCLUDED.deployment_platform, float_metadata.deployment_platform),
	firmware_version = COALESCE(EXCLUDED.firmware_version, float_metadata.firmware_version),
	float_owner = COALESCE(EXCLUDED.float_owner, float_metadata.float_owner),
	operating_institute = COALESCE(EXCLUDED.operating_institute, float_metadata.operating_institute),
	launch_date = COALESCE(EXCLUDED.launch_date, float_metadata.launch_date),
	start_date = COALESCE(EXCLUDED.start_date, float_metadata.start_date),
	end_of_life = COALESCE(EXCLUDED.end_of_life, float_metadata.end_of_life),
	launch_latitude = COALESCE(EXCLUDED.launch_latitude, float_metadata.launch_latitude),
	launch_longitude = COALESCE(EXCLUDED.launch_longitude, float_metadata.launch_longitude)
`

// insertProfileSQL records a cycle once. First-seen wins: a conflict
// means the cycle is already known and the stored location and time
// are kept, even when a re-downloaded file disagrees.
const insertProfileSQL = `
INSERT INTO profiles (
	float_id, cycle_number, profile_date, latitude, longitude
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (float_id, cycle_number) DO NOTHING
`

var measurementColumns = []string{
	"float_id", "cycle_number", "n_level",
	"pressure", "depth_m", "temperature", "salinity",
}

// writer performs the merge-write protocol for one float on a single
// connection acquired from the pool. Each write commits on its own;
// there is no transaction spanning a whole float.
type writer struct {
	conn      *pgxpool.Conn
	batchSize int
	replace   bool
}

// writeMetadata merges one metadata record, keyed by platform number.
// Repeated calls with the same record are no-ops after the first.
func (w *writer) writeMetadata(
	ctx context.Context, m *schema.FloatMetadata,
) error {
	_, err := w.conn.Exec(ctx, upsertMetadataSQL,
		m.PlatformNumber, m.FloatSerialNumber, m.PIName, m.ProjectName,
		m.DeploymentPlatform, m.FirmwareVersion, m.FloatOwner,
		m.OperatingInstitute, m.LaunchDate, m.StartDate, m.EndOfLife,
		m.LaunchLatitude, m.LaunchLongitude,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata for float %d: %w",
			m.PlatformNumber, err)
	}
	return nil
}

// writeProfile inserts one profile row, keeping an existing row
// untouched on key conflict.
func (w *writer) writeProfile(ctx context.Context, p *schema.Profile) error {
	_, err := w.conn.Exec(ctx, insertProfileSQL,
		p.FloatID, p.CycleNumber, p.ProfileDate, p.Latitude, p.Longitude,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile %d/%d: %w",
			p.FloatID, p.CycleNumber, err)
	}
	return nil
}

// writeMeasurements bulk-inserts the pre-filtered levels of one
// profile inside a single transaction, so the batch lands or fails as
// a unit. In replace mode the profile's existing rows are deleted in
// the same transaction, which makes re-ingestion of a mutated source
// file safe; the delete runs even when the new batch is empty, so a
// profile whose levels all became invalid loses its stale rows. The
// default insert-only mode fails on the primary key when a profile is
// re-presented with a different level count.
func (w *writer) writeMeasurements(
	ctx context.Context, p *schema.Profile, ms []*schema.Measurement,
) (int, error) {
	if len(ms) == 0 && !w.replace {
		return 0, nil
	}

	tx, err := w.conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin measurements batch: %w", err)
	}
	defer tx.Rollback(ctx)

	if w.replace {
		_, err = tx.Exec(ctx,
			"DELETE FROM measurements WHERE float_id = $1 AND cycle_number = $2",
			p.FloatID, p.CycleNumber,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to clear measurements %d/%d: %w",
				p.FloatID, p.CycleNumber, err)
		}
	}

	written := 0
	for start := 0; start < len(ms); start += w.chunkSize() {
		chunk := ms[start:min(start+w.chunkSize(), len(ms))]
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"measurements"},
			measurementColumns,
			pgx.CopyFromSlice(len(chunk), func(i int) ([]any, error) {
				m := chunk[i]
				return []any{
					m.FloatID, m.CycleNumber, m.NLevel,
					m.Pressure, m.DepthM, m.Temperature, m.Salinity,
				}, nil
			}),
		)
		if err != nil {
			return 0, fmt.Errorf(
				"failed to bulk insert measurements %d/%d: %w",
				p.FloatID, p.CycleNumber, err)
		}
		written += int(n)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit measurements %d/%d: %w",
			p.FloatID, p.CycleNumber, err)
	}

	return written, nil
}

func (w *writer) chunkSize() int {
	if w.batchSize > 0 {
		return w.batchSize
	}
	return 10_000
}
