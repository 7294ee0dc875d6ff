// Package ionetcdf wraps the go-native-netcdf reader with the small
// access surface the extractors need. It resolves the source format's
// shape polymorphism (bare scalars vs length-1 arrays, float32 vs
// float64, char padding) once at this boundary and masks declared
// fill values to NaN, so everything downstream deals with plain Go
// values and the normalizer's NaN convention.
package ionetcdf

import (
	"fmt"
	"math"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// fillValueAttr is the conventional NetCDF attribute declaring the
// sentinel stored in never-measured array cells (99999 in Argo files).
const fillValueAttr = "_FillValue"

// File is an opened NetCDF file. Variables are read once and cached;
// Argo per-float files are small enough that this bounds memory fine,
// and profile rows are still handed out one profile at a time.
type File struct {
	group api.Group
	path  string
	vars  map[string]*api.Variable
	grids map[string][][]float64
}

// Open opens a NetCDF file for reading.
func Open(path string) (*File, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file %s: %w", path, err)
	}
	return &File{
		group: group,
		path:  path,
		vars:  make(map[string]*api.Variable),
		grids: make(map[string][][]float64),
	}, nil
}

// Path returns the file path this File was opened from.
func (f *File) Path() string { return f.path }

// Close releases the underlying reader.
func (f *File) Close() {
	f.group.Close()
}

// variable looks up a named variable, caching both hits and misses.
// A missing variable is not an error: most fields are optional.
func (f *File) variable(name string) (*api.Variable, bool) {
	if v, cached := f.vars[name]; cached {
		return v, v != nil
	}
	v, err := f.group.GetVariable(name)
	if err != nil {
		f.vars[name] = nil
		return nil, false
	}
	f.vars[name] = v
	return v, true
}

// Value returns the whole raw value of a named variable, with the
// variable's declared fill sentinel masked to NaN. The second return
// is false when the file lacks the variable.
func (f *File) Value(name string) (any, bool) {
	v, ok := f.variable(name)
	if !ok {
		return nil, false
	}
	if fill, hasFill := f.fillValue(v); hasFill {
		return maskedValue(v.Values, fill), true
	}
	return v.Values, true
}

// ValueAt returns element i of a rank-1 variable, with the variable's
// declared fill sentinel masked to NaN. A rank-0 value is returned
// whole for any index, tolerating files that store a per-profile
// field as a bare scalar.
func (f *File) ValueAt(name string, i int) (any, bool) {
	v, ok := f.variable(name)
	if !ok {
		return nil, false
	}
	el, ok := elementAt(v.Values, i)
	if !ok {
		return nil, false
	}
	if fill, hasFill := f.fillValue(v); hasFill {
		return maskedValue(el, fill), true
	}
	return el, true
}

// Len returns the leading-dimension length of a variable, or 0 when
// the variable is missing or scalar.
func (f *File) Len(name string) int {
	v, ok := f.variable(name)
	if !ok {
		return 0
	}
	rv := reflect.ValueOf(v.Values)
	if rv.Kind() != reflect.Slice {
		return 0
	}
	return rv.Len()
}

// Row returns row i of a [profile, level] numeric variable as float64,
// with declared fill values replaced by NaN. A missing variable or an
// out-of-range index yields nil.
func (f *File) Row(name string, i int) []float64 {
	grid, ok := f.grid(name)
	if !ok || i < 0 || i >= len(grid) {
		return nil
	}
	return grid[i]
}

func (f *File) grid(name string) ([][]float64, bool) {
	if g, cached := f.grids[name]; cached {
		return g, g != nil
	}

	v, ok := f.variable(name)
	if !ok {
		f.grids[name] = nil
		return nil, false
	}

	grid, ok := toFloatGrid(v.Values)
	if !ok {
		f.grids[name] = nil
		return nil, false
	}

	if fill, hasFill := f.fillValue(v); hasFill {
		maskFill(grid, fill)
	}

	f.grids[name] = grid
	return grid, true
}

// fillValue reads the variable's declared fill sentinel, when any.
func (f *File) fillValue(v *api.Variable) (float64, bool) {
	if v.Attributes == nil {
		return 0, false
	}
	raw, has := v.Attributes.Get(fillValueAttr)
	if !has {
		return 0, false
	}
	return toFloat(raw)
}

func maskFill(grid [][]float64, fill float64) {
	for _, row := range grid {
		for j, val := range row {
			if val == fill {
				row[j] = math.NaN()
			}
		}
	}
}
