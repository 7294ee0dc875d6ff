package ioingest

import "reflect"

// fakeFile is an in-memory DataFile for extractor tests. Scalar and
// rank-1 variables live in vars; [profile, level] grids live in rows.
type fakeFile struct {
	vars   map[string]any
	rows   map[string][][]float64
	closed bool
}

func (f *fakeFile) Value(name string) (any, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *fakeFile) ValueAt(name string, i int) (any, bool) {
	v, ok := f.vars[name]
	if !ok {
		return nil, false
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

func (f *fakeFile) Row(name string, i int) []float64 {
	grid, ok := f.rows[name]
	if !ok || i < 0 || i >= len(grid) {
		return nil
	}
	return grid[i]
}

func (f *fakeFile) Len(name string) int {
	if v, ok := f.vars[name]; ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			return rv.Len()
		}
		return 1
	}
	if grid, ok := f.rows[name]; ok {
		return len(grid)
	}
	return 0
}

func (f *fakeFile) Close() { f.closed = true }

var _ DataFile = (*fakeFile)(nil)
