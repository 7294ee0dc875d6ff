// Package ioingest implements the float ingestion pipeline: the
// metadata and profile extractors, the merge-write protocol against
// PostgreSQL, and the per-float orchestration. This is an impure I/O
// package implementing the argo.Ingester contract from pkg/.
package ioingest

import (
	"github.com/oceanobs/argodb/internal/ionetcdf"
)

// DataFile is the slice of a NetCDF file the extractors consume.
// ionetcdf.File implements it; tests use an in-memory fake.
type DataFile interface {
	// Value returns the whole raw value of a named variable, or false
	// when the file lacks it.
	Value(name string) (any, bool)

	// ValueAt returns element i of a rank-1 variable; a rank-0 value
	// is returned whole for any index.
	ValueAt(name string, i int) (any, bool)

	// Row returns row i of a [profile, level] numeric variable with
	// fill values masked to NaN, or nil when missing.
	Row(name string, i int) []float64

	// Len returns the leading-dimension length of a variable.
	Len(name string) int

	// Close releases the file handle.
	Close()
}

var _ DataFile = (*ionetcdf.File)(nil)

// Variable names of the Argo file format.
const (
	varPlatformNumber = "PLATFORM_NUMBER"

	// Metadata file fields.
	varFloatSerialNo    = "FLOAT_SERIAL_NO"
	varPIName           = "PI_NAME"
	varProjectName      = "PROJECT_NAME"
	varDeployPlatform   = "DEPLOYMENT_PLATFORM"
	varFirmwareVersion  = "FIRMWARE_VERSION"
	varFloatOwner       = "FLOAT_OWNER"
	varOperatingInst    = "OPERATING_INSTITUTION"
	varLaunchDate       = "LAUNCH_DATE"
	varStartDate        = "START_DATE"
	varEndMissionDate   = "END_MISSION_DATE"
	varEndOfMissionDate = "END_OF_MISSION_DATE"
	varLaunchLatitude   = "LAUNCH_LATITUDE"
	varLaunchLongitude  = "LAUNCH_LONGITUDE"

	// Profile file fields.
	varCycleNumber = "CYCLE_NUMBER"
	varJuld        = "JULD"
	varLatitude    = "LATITUDE"
	varLongitude   = "LONGITUDE"
	varPressure    = "PRES"
	varTemperature = "TEMP"
	varSalinity    = "PSAL"
)
