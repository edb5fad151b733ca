package retopo

import (
	"testing"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplineCaches(t *testing.T) {
	pts := []geom.Point{pt(0, 0, 0), pt(3, 4, 0), pt(3, 4, 2)}
	s, err := NewSpline(pts, 40)
	require.NoError(t, err)

	assert.InDelta(t, 7, s.Length, 1e-12)
	assert.False(t, s.Closed)
	assert.Equal(t, pt(0, 0, 0), s.Box.Min)
	assert.Equal(t, pt(3, 4, 2), s.Box.Max)
	assert.Equal(t, 2, s.Segments())

	pts[0] = pt(9, 9, 9)
	assert.Equal(t, pt(0, 0, 0), s.Start(), "points must be copied")
}

func TestNewSplineTooShort(t *testing.T) {
	_, err := NewSpline([]geom.Point{pt(0, 0, 0)}, 40)
	assert.Error(t, err)
	_, err = NewSpline(nil, 40)
	assert.Error(t, err)
}

func TestSplineClosure(t *testing.T) {
	tests := []struct {
		name      string
		points    []geom.Point
		precision float64
		want      bool
	}{
		{"loop with coincident ends", arc(0, 360, 16), 40, true},
		// Gap 0.017 against a length of about 6.2: closed at 40 (tolerance 0.16),
		// open at 1000 (tolerance 0.006).
		{"small gap loose", arc(0, 359, 16), 40, true},
		{"small gap strict", arc(0, 359, 16), 1000, false},
		{"half circle", arc(0, 180, 8), 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSpline(tt.points, tt.precision)
			assert.Equal(t, tt.want, s.Closed)
		})
	}
}

func TestStraightSplineNeverClosed(t *testing.T) {
	for _, precision := range []float64{1, 2, 40, 1e6} {
		s := mustSpline([]geom.Point{pt(0, 0, 0), pt(1, 2, 3)}, precision)
		assert.False(t, s.Closed, "precision %v", precision)
	}
}
