package ionetcdf

import (
	"math"
	"reflect"
)

// maskedValue replaces a declared fill sentinel with NaN in scalar
// and rank-1 numeric values, the same treatment grid() gives 2-D
// data. Argo stores missing coordinates (LATITUDE, LAUNCH_LATITUDE)
// as fill 99999, which would otherwise read as a plausible number.
// Non-numeric and higher-rank values pass through untouched.
func maskedValue(v any, fill float64) any {
	if v == nil {
		return v
	}
	if reflect.ValueOf(v).Kind() == reflect.Slice {
		row, ok := toFloatRow(v)
		if !ok {
			return v
		}
		for i, val := range row {
			if val == fill {
				row[i] = math.NaN()
			}
		}
		return row
	}
	if val, ok := toFloat(v); ok && val == fill {
		return math.NaN()
	}
	return v
}

// elementAt indexes a rank-1 value. Scalars (including char fields the
// reader yields as a single string) are returned whole for any index.
func elementAt(v any, i int) (any, bool) {
	if v == nil {
		return nil, false
	}
	if _, isString := v.(string); isString {
		return v, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v, true
	}
	if i < 0 || i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}

// toFloatGrid coerces a 2-D numeric value of any float or integer
// width to [][]float64. A rank-1 numeric value becomes a single-row
// grid, tolerating single-profile files whose level arrays lost the
// profile dimension.
func toFloatGrid(v any) ([][]float64, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	if rv.Len() == 0 {
		return [][]float64{}, true
	}

	if rv.Index(0).Kind() == reflect.Slice {
		grid := make([][]float64, rv.Len())
		for i := range rv.Len() {
			row, ok := toFloatRow(rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			grid[i] = row
		}
		return grid, true
	}

	row, ok := toFloatRow(v)
	if !ok {
		return nil, false
	}
	return [][]float64{row}, true
}

// toFloatRow coerces a rank-1 numeric value to []float64.
func toFloatRow(v any) ([]float64, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	row := make([]float64, rv.Len())
	for i := range rv.Len() {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		row[i] = f
	}
	return row, true
}

// toFloat coerces a numeric scalar of any width to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	// Attribute values may arrive as length-1 slices.
	if rv.Kind() == reflect.Slice && rv.Len() == 1 {
		return toFloat(rv.Index(0).Interface())
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
