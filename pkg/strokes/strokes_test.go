package strokes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/retopo/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	s, err := Decode(strings.NewReader(`{"precision": 20, "strokes": [[[0,0,0],[1,2,3]], [[4,5,6]]]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Precision)
	require.Len(t, s.Strokes, 2)
	assert.Equal(t, []geom.Point{{}, {X: 1, Y: 2, Z: 3}}, s.Strokes[0].Points)
	assert.Len(t, s.Strokes[1].Points, 1)
}

func TestDecodeEmpty(t *testing.T) {
	s, err := Decode(strings.NewReader(`{}`), FormatJSON)
	require.NoError(t, err)
	assert.Zero(t, s.Precision)
	assert.NotNil(t, s.Strokes)
	assert.NotNil(t, s.Points())
	assert.Empty(t, s.Points())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		f     Format
		want  string
	}{
		{"not json", `strokes`, FormatJSON, ""},
		{"coordinate not a number", `{"strokes": [[["a",0,0]]]}`, FormatJSON, ""},
		{"stroke not a list", `{"strokes": [1]}`, FormatJSON, ""},
		{"json point too short", `{"strokes": [[[1,2],[3,4]]]}`, FormatJSON, "point 0 has 2 coordinates"},
		{"json point too long", `{"strokes": [[[0,0,0],[1,2,3,9]]]}`, FormatJSON, "point 1 has 4 coordinates"},
		{"yaml point too short", "strokes:\n  - [[1, 2], [3, 4]]\n", FormatYAML, "point 0 has 2 coordinates"},
		{"yaml point too long", "strokes:\n  - [[0, 0, 0], [1, 2, 3, 9]]\n", FormatYAML, "point 1 has 4 coordinates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "strokes: decoding")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFormats(t *testing.T) {
	js, err := Load("testdata/square.json")
	require.NoError(t, err)
	ym, err := Load("testdata/square.yaml")
	require.NoError(t, err)

	assert.Equal(t, js, ym)
	assert.Equal(t, 40.0, js.Precision)
	require.Len(t, js.Strokes, 4)
	assert.Equal(t, v3.Vec{X: -0.2}, js.Strokes[0].Points[0])
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("testdata/nope.json")
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	in := &Set{Precision: 10}
	in.Add(v3.Vec{X: 1}, v3.Vec{Y: 1.5, Z: -2})
	in.Add()

	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, in, f))
			out, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, in.Precision, out.Precision)
			require.Len(t, out.Strokes, 2)
			assert.Equal(t, in.Strokes[0].Points, out.Strokes[0].Points)
			assert.Empty(t, out.Strokes[1].Points)
		})
	}
}

func TestEncodeJSONShape(t *testing.T) {
	s := &Set{}
	s.Add(v3.Vec{X: 1, Y: 2, Z: 3})
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, s, FormatJSON))
	assert.JSONEq(t, `{"strokes": [[[1,2,3]]]}`, buf.String())
}

func TestUsable(t *testing.T) {
	s := &Set{}
	s.Add(v3.Vec{}, v3.Vec{X: 1})
	s.Add(v3.Vec{})
	s.Add()
	s.Add(v3.Vec{}, v3.Vec{Y: 1}, v3.Vec{Z: 1})

	usable, discarded := s.Usable()
	assert.Equal(t, 2, discarded)
	require.Len(t, usable, 2)
	assert.Len(t, usable[1].Points, 3)
	// Points keeps every stroke; the pipeline does its own filtering.
	assert.Len(t, s.Points(), 4)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a/b.YML"))
	assert.Equal(t, FormatYAML, FormatFor("b.yaml"))
	assert.Equal(t, FormatJSON, FormatFor("b.json"))
	assert.Equal(t, FormatJSON, FormatFor("b"))
	assert.Equal(t, "Format(7)", Format(7).String())
}
