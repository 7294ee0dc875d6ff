package ionetcdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskedValue(t *testing.T) {
	const fill = 99999.0

	t.Run("scalar fill becomes NaN", func(t *testing.T) {
		got := maskedValue(99999.0, fill)
		f, ok := got.(float64)
		require.True(t, ok)
		assert.True(t, math.IsNaN(f))
	})

	t.Run("scalar measurement passes through", func(t *testing.T) {
		assert.Equal(t, -53.373, maskedValue(-53.373, fill))
	})

	t.Run("rank-1 values are masked in place", func(t *testing.T) {
		got := maskedValue([]float32{-53.4, 99999.0}, fill)
		row, ok := got.([]float64)
		require.True(t, ok)
		require.Len(t, row, 2)
		assert.InDelta(t, -53.4, row[0], 1e-6)
		assert.True(t, math.IsNaN(row[1]))
	})

	t.Run("non-numeric passes through", func(t *testing.T) {
		assert.Equal(t, "1902669", maskedValue("1902669", fill))
	})

	t.Run("grids are left to the grid path", func(t *testing.T) {
		grid := [][]float64{{99999.0}}
		assert.Equal(t, grid, maskedValue(grid, fill))
	})
}

func TestElementAt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		index int
		want  any
		ok    bool
	}{
		{
			name:  "indexes a slice",
			value: []float32{1.5, 2.5},
			index: 1,
			want:  float32(2.5),
			ok:    true,
		},
		{
			name:  "string returned whole",
			value: "1902669 ",
			index: 5,
			want:  "1902669 ",
			ok:    true,
		},
		{
			name:  "scalar returned whole",
			value: 42,
			index: 3,
			want:  42,
			ok:    true,
		},
		{
			name:  "out of range",
			value: []int32{1},
			index: 1,
			ok:    false,
		},
		{
			name:  "negative index",
			value: []int32{1},
			index: -1,
			ok:    false,
		},
		{
			name:  "nil value",
			value: nil,
			index: 0,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := elementAt(tt.value, tt.index)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestToFloatGrid(t *testing.T) {
	t.Run("widens float32 grid", func(t *testing.T) {
		grid, ok := toFloatGrid([][]float32{{1.5, 2.5}, {3.5, 4.5}})
		require.True(t, ok)
		assert.Equal(t, [][]float64{{1.5, 2.5}, {3.5, 4.5}}, grid)
	})

	t.Run("rank-1 becomes single row", func(t *testing.T) {
		grid, ok := toFloatGrid([]float64{5.0, 10.0})
		require.True(t, ok)
		assert.Equal(t, [][]float64{{5.0, 10.0}}, grid)
	})

	t.Run("integer grid coerces", func(t *testing.T) {
		grid, ok := toFloatGrid([][]int16{{1, 2}})
		require.True(t, ok)
		assert.Equal(t, [][]float64{{1, 2}}, grid)
	})

	t.Run("empty grid", func(t *testing.T) {
		grid, ok := toFloatGrid([][]float64{})
		require.True(t, ok)
		assert.Empty(t, grid)
	})

	t.Run("non-numeric rejected", func(t *testing.T) {
		_, ok := toFloatGrid([][]string{{"a"}})
		assert.False(t, ok)
	})

	t.Run("scalar rejected", func(t *testing.T) {
		_, ok := toFloatGrid(5.0)
		assert.False(t, ok)
	})
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{name: "float64", value: 99999.0, want: 99999.0, ok: true},
		{name: "float32", value: float32(2.5), want: 2.5, ok: true},
		{name: "int16", value: int16(-7), want: -7, ok: true},
		{name: "uint8", value: uint8(200), want: 200, ok: true},
		{
			name:  "length-1 attribute slice",
			value: []float32{99999.0},
			want:  99999.0,
			ok:    true,
		},
		{name: "string rejected", value: "99999", ok: false},
		{name: "nil rejected", value: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat(tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
