package ioingest

import (
	"database/sql"
	"log/slog"
	"math"

	"github.com/jonboulle/clockwork"
	"github.com/oceanobs/argodb/pkg/normalize"
	"github.com/oceanobs/argodb/pkg/schema"
)

// visitFunc receives one extracted profile together with its filtered
// measurements. Returning an error stops the iteration; the error is
// fatal to the current float.
type visitFunc func(p *schema.Profile, ms []*schema.Measurement) error

// extractProfiles streams the profiles of an opened profile file, one
// at a time, to visit. It returns the number of profiles handed over.
//
// A profile with an unparsable cycle number is skipped with a warning;
// the rest of the file is still processed. A profile missing its date
// gets the clock's current time: the store requires some timestamp on
// every profile, and the caller controls the clock.
func extractProfiles(
	f DataFile,
	clock clockwork.Clock,
	visit visitFunc,
) (int, error) {
	floatID, err := platformNumber(f)
	if err != nil {
		return 0, err
	}

	nProfiles := f.Len(varCycleNumber)
	if nProfiles == 0 {
		// Cycle numbers are mandatory in profile files. A file carrying
		// level data without them is malformed, not empty.
		if _, ok := f.Value(varCycleNumber); !ok {
			slog.Warn("Profile file has no cycle number variable",
				"float_id", floatID)
		}
		return 0, nil
	}
	processed := 0

	for i := range nProfiles {
		rawCycle, _ := f.ValueAt(varCycleNumber, i)
		cycle := normalize.Integer(rawCycle)
		if !cycle.Valid {
			slog.Warn("Skipping profile with unparsable cycle number",
				"float_id", floatID, "index", i)
			continue
		}

		p := &schema.Profile{
			FloatID:     floatID,
			CycleNumber: int32(cycle.Int64),
		}

		rawDate, _ := f.ValueAt(varJuld, i)
		if ts := normalize.Time(rawDate); ts.Valid {
			p.ProfileDate = ts.Time
		} else {
			p.ProfileDate = clock.Now().UTC()
		}

		rawLat, _ := f.ValueAt(varLatitude, i)
		p.Latitude = coordValue(rawLat, maxLatitude)
		rawLon, _ := f.ValueAt(varLongitude, i)
		p.Longitude = coordValue(rawLon, maxLongitude)

		ms := extractLevels(f, p, i)

		if err := visit(p, ms); err != nil {
			return processed, err
		}
		processed++
	}

	return processed, nil
}

// extractLevels filters the vertical levels of profile index i.
// A level survives only when its pressure is a valid number and at
// least one of temperature and salinity is too; a pressure-only
// reading carries no scientific value and is dropped. Levels keep
// their source index as NLevel: the index is part of the row identity
// and must not shift when invalid neighbors are dropped.
func extractLevels(f DataFile, p *schema.Profile, i int) []*schema.Measurement {
	pres := f.Row(varPressure, i)
	temp := f.Row(varTemperature, i)
	psal := f.Row(varSalinity, i)

	var ms []*schema.Measurement
	for lvl, pVal := range pres {
		if math.IsNaN(pVal) {
			continue
		}

		t := realAt(temp, lvl)
		s := realAt(psal, lvl)
		if !t.Valid && !s.Valid {
			continue
		}

		ms = append(ms, &schema.Measurement{
			FloatID:     p.FloatID,
			CycleNumber: p.CycleNumber,
			NLevel:      int32(lvl),
			Pressure:    pVal,
			// Placeholder: a true depth needs a latitude-dependent
			// conversion from pressure.
			DepthM:      pVal,
			Temperature: t,
			Salinity:    s,
		})
	}
	return ms
}

const (
	maxLatitude  = 90.0
	maxLongitude = 180.0
)

// coordValue normalizes a coordinate and rejects values outside the
// physical range. Argo encodes an unknown position as fill 99999; the
// reader masks declared fills to NaN, but a file that omits the
// _FillValue attribute would otherwise store the sentinel as a
// position.
func coordValue(v any, limit float64) sql.NullFloat64 {
	res := normalize.Real(v)
	if res.Valid && math.Abs(res.Float64) > limit {
		return sql.NullFloat64{}
	}
	return res
}

func realAt(row []float64, i int) sql.NullFloat64 {
	if i < 0 || i >= len(row) || math.IsNaN(row[i]) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: row[i], Valid: true}
}
