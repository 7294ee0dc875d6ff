package ioingest

import (
	"fmt"

	"github.com/oceanobs/argodb/pkg/argo"
	"github.com/oceanobs/argodb/pkg/normalize"
	"github.com/oceanobs/argodb/pkg/schema"
)

// extractMetadata reads one FloatMetadata record from an opened
// metadata file. The platform number is the only required field; every
// other attribute degrades to NULL when its variable is missing or its
// value cannot be normalized.
func extractMetadata(f DataFile) (*schema.FloatMetadata, error) {
	id, err := platformNumber(f)
	if err != nil {
		return nil, err
	}

	m := &schema.FloatMetadata{PlatformNumber: id}

	if v, ok := f.Value(varFloatSerialNo); ok {
		m.FloatSerialNumber = normalize.Text(v)
	}
	if v, ok := f.Value(varPIName); ok {
		m.PIName = normalize.Text(v)
	}
	if v, ok := f.Value(varProjectName); ok {
		m.ProjectName = normalize.Text(v)
	}
	if v, ok := f.Value(varDeployPlatform); ok {
		m.DeploymentPlatform = normalize.Text(v)
	}
	if v, ok := f.Value(varFirmwareVersion); ok {
		m.FirmwareVersion = normalize.Text(v)
	}
	if v, ok := f.Value(varFloatOwner); ok {
		m.FloatOwner = normalize.Text(v)
	}
	if v, ok := f.Value(varOperatingInst); ok {
		m.OperatingInstitute = normalize.Text(v)
	}

	if v, ok := f.Value(varLaunchDate); ok {
		m.LaunchDate = normalize.Time(v)
	}
	if v, ok := f.Value(varStartDate); ok {
		m.StartDate = normalize.Time(v)
	}
	// Older files spell the end-of-mission field differently.
	if v, ok := f.Value(varEndMissionDate); ok {
		m.EndOfLife = normalize.Time(v)
	} else if v, ok := f.Value(varEndOfMissionDate); ok {
		m.EndOfLife = normalize.Time(v)
	}

	if v, ok := f.Value(varLaunchLatitude); ok {
		m.LaunchLatitude = coordValue(v, maxLatitude)
	}
	if v, ok := f.Value(varLaunchLongitude); ok {
		m.LaunchLongitude = coordValue(v, maxLongitude)
	}

	return m, nil
}

// platformNumber reads the required float identity from a file. Argo
// stores it as a blank-padded char field, repeated once per profile in
// profile files; normalization collapses both shapes.
func platformNumber(f DataFile) (int64, error) {
	v, ok := f.Value(varPlatformNumber)
	if !ok {
		return 0, fmt.Errorf("%s: %w", varPlatformNumber, argo.ErrMissingIdentity)
	}

	n := normalize.Integer(v)
	if !n.Valid || n.Int64 <= 0 {
		return 0, fmt.Errorf("%s %q: %w",
			varPlatformNumber, normalize.Text(v).String,
			argo.ErrMissingIdentity)
	}
	return n.Int64, nil
}
