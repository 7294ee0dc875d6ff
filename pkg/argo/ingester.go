// Package argo defines the contracts of the float ingestion pipeline.
// Implementations live in internal/ioingest; this package holds only
// pure types so that callers (CLI, services) depend on stable
// interfaces rather than on I/O code.
package argo

import (
	"context"
)

// Ingester loads float observation files from the data directory into
// the relational store. Implementations merge re-downloaded data
// without creating duplicates and without discarding previously known
// metadata.
type Ingester interface {
	// IngestOne ingests the metadata and profile files of a single
	// float. A missing file is not an error: a float may have only
	// profile data available. The returned Result carries counts even
	// when err is non-nil (work done before the failure stays
	// committed).
	IngestOne(ctx context.Context, floatID string) (Result, error)

	// IngestAll discovers float identifiers in the data directory by
	// profile-file name and ingests them one by one in sorted order.
	// A failure of one float never aborts the run; it is recorded in
	// that float's Result. The returned error is non-nil only when the
	// run as a whole failed (no float could be processed).
	IngestAll(ctx context.Context) (map[string]Result, error)
}

// Stage identifies the ingestion stage a result or failure belongs to.
type Stage string

const (
	// StageLocate resolves candidate file paths and the store
	// connection for one float.
	StageLocate Stage = "locate"
	// StageMetadata ingests the *_meta.nc file.
	StageMetadata Stage = "metadata"
	// StageProfiles ingests the *_prof.nc file.
	StageProfiles Stage = "profiles"
)

// Result is the per-float outcome of an ingestion run.
type Result struct {
	// FloatID is the float identifier derived from the file names.
	FloatID string

	// Profiles is the number of profiles processed.
	Profiles int

	// Measurements is the number of measurement rows written.
	Measurements int

	// Err is the failure that stopped this float's ingestion, or nil.
	// Work committed before the failure is not rolled back.
	Err error
}
