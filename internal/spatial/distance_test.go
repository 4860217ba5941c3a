package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 42.2808, lon1: -83.7430,
			lat2: 42.2808, lon2: -83.7430,
			want: 0, tolerance: 0,
		},
		{
			name: "ann arbor to detroit",
			lat1: 42.2808, lon1: -83.7430,
			lat2: 42.3314, lon2: -83.0458,
			want: 57800, tolerance: 500,
		},
		{
			name: "short road segment",
			lat1: 42.225139, lon1: -8.670911,
			lat2: 42.225224, lon2: -8.670718,
			want: 18.5, tolerance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestPathLength(t *testing.T) {
	a := Point{Lat: 42.2808, Lon: -83.7430}
	b := Point{Lat: 42.2850, Lon: -83.7400}
	c := Point{Lat: 42.2900, Lon: -83.7350}

	t.Run("empty and single point", func(t *testing.T) {
		assert.Equal(t, 0.0, PathLength(nil))
		assert.Equal(t, 0.0, PathLength([]Point{a}))
	})

	t.Run("coincident points have zero length", func(t *testing.T) {
		assert.Equal(t, 0.0, PathLength([]Point{a, a, a}))
	})

	t.Run("length is sum of segments", func(t *testing.T) {
		ab := HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		bc := HaversineDistance(b.Lat, b.Lon, c.Lat, c.Lon)
		assert.InDelta(t, ab+bc, PathLength([]Point{a, b, c}), 1e-9)
	})

	t.Run("length is non-negative", func(t *testing.T) {
		assert.GreaterOrEqual(t, PathLength([]Point{c, a, b}), 0.0)
	})
}

func TestCellAt(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		first := CellAt(42.2808, -83.7430)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, CellAt(42.2808, -83.7430))
		}
	})

	t.Run("distinct locations get distinct cells", func(t *testing.T) {
		assert.NotEqual(t, CellAt(42.2808, -83.7430), CellAt(42.3314, -83.0458))
	})

	t.Run("cell is a valid H3 index", func(t *testing.T) {
		assert.NotZero(t, CellAt(0, 0))
		assert.NotZero(t, CellAt(-42.9, 147.3))
	})
}
