// Package schema provides database schema models for argodb.
// Column types and names are aligned with the tables consumed by the
// float dashboard backend.
package schema

import (
	"database/sql"
	"time"
)

// FloatMetadata describes one physical float. There is exactly one row
// per platform number; ingestion merges into it and never deletes it.
type FloatMetadata struct {
	// PlatformNumber is the WMO platform number, the immutable identity
	// of the float.
	PlatformNumber int64 `db:"platform_number" gorm:"column:platform_number;primaryKey;autoIncrement:false"`

	// FloatSerialNumber is the manufacturer serial number.
	FloatSerialNumber sql.NullString `db:"float_serial_number" gorm:"column:float_serial_number"`

	// PIName is the principal investigator responsible for the float.
	PIName sql.NullString `db:"pi_name" gorm:"column:pi_name"`

	// ProjectName is the program the float was deployed under.
	ProjectName sql.NullString `db:"project_name" gorm:"column:project_name"`

	// DeploymentPlatform is the ship or platform used for deployment.
	DeploymentPlatform sql.NullString `db:"deployment_platform" gorm:"column:deployment_platform"`

	// FirmwareVersion is the float controller firmware version.
	FirmwareVersion sql.NullString `db:"firmware_version" gorm:"column:firmware_version"`

	// FloatOwner is the owning agency or person.
	FloatOwner sql.NullString `db:"float_owner" gorm:"column:float_owner"`

	// OperatingInstitute is the institute operating the float.
	OperatingInstitute sql.NullString `db:"operating_institute" gorm:"column:operating_institute"`

	// LaunchDate is when the float entered the water.
	LaunchDate sql.NullTime `db:"launch_date" gorm:"column:launch_date"`

	// StartDate is when the float started its mission.
	StartDate sql.NullTime `db:"start_date" gorm:"column:start_date"`

	// EndOfLife is the end-of-mission date, when known.
	EndOfLife sql.NullTime `db:"end_of_life" gorm:"column:end_of_life"`

	// LaunchLatitude is the deployment latitude in [-90, 90].
	LaunchLatitude sql.NullFloat64 `db:"launch_latitude" gorm:"column:launch_latitude"`

	// LaunchLongitude is the deployment longitude in [-180, 180].
	LaunchLongitude sql.NullFloat64 `db:"launch_longitude" gorm:"column:launch_longitude"`

	// CreatedAt records when the row first appeared.
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;default:now()"`
}

// TableName returns the PostgreSQL table name for FloatMetadata.
func (FloatMetadata) TableName() string { return "float_metadata" }

// Profile is one observation cycle of a float. First-seen wins: once a
// (float_id, cycle_number) row exists it is never altered by ingestion.
type Profile struct {
	// FloatID references FloatMetadata.PlatformNumber.
	FloatID int64 `db:"float_id" gorm:"column:float_id;primaryKey;autoIncrement:false"`

	// CycleNumber is the dive-and-surface sequence number.
	CycleNumber int32 `db:"cycle_number" gorm:"column:cycle_number;primaryKey;autoIncrement:false"`

	// ProfileDate is the observation timestamp. When the source file
	// omits it, ingestion substitutes the wall-clock time of the run.
	ProfileDate time.Time `db:"profile_date" gorm:"column:profile_date"`

	// Latitude of the surfacing position.
	Latitude sql.NullFloat64 `db:"latitude" gorm:"column:latitude"`

	// Longitude of the surfacing position.
	Longitude sql.NullFloat64 `db:"longitude" gorm:"column:longitude"`
}

// TableName returns the PostgreSQL table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Measurement is one vertical level of one profile. Levels keep their
// source index order in NLevel; the index is part of the identity.
type Measurement struct {
	// FloatID references FloatMetadata.PlatformNumber.
	FloatID int64 `db:"float_id" gorm:"column:float_id;primaryKey;autoIncrement:false"`

	// CycleNumber is the cycle this level belongs to.
	CycleNumber int32 `db:"cycle_number" gorm:"column:cycle_number;primaryKey;autoIncrement:false"`

	// NLevel is the source index of the level within the profile.
	NLevel int32 `db:"n_level" gorm:"column:n_level;primaryKey;autoIncrement:false"`

	// Pressure in decibar, the vertical ordering axis.
	Pressure float64 `db:"pressure" gorm:"column:pressure;not null"`

	// DepthM is stored equal to Pressure. A true depth needs a
	// latitude-dependent conversion that is not performed here.
	DepthM float64 `db:"depth_m" gorm:"column:depth_m"`

	// Temperature in degrees Celsius, when measured.
	Temperature sql.NullFloat64 `db:"temperature" gorm:"column:temperature"`

	// Salinity in PSU, when measured.
	Salinity sql.NullFloat64 `db:"salinity" gorm:"column:salinity"`
}

// TableName returns the PostgreSQL table name for Measurement.
func (Measurement) TableName() string { return "measurements" }
