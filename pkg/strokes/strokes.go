// Package strokes reads stroke collections: the drawn polylines the
// reconstruction runs on, plus the precision they were drawn for.
package strokes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/retopo/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gopkg.in/yaml.v3"
)

// Stroke is one drawn polyline.
type Stroke struct {
	Points []geom.Point
}

// Set is a stroke collection. A zero Precision means the caller's default.
type Set struct {
	Precision float64  `json:"precision,omitempty" yaml:"precision,omitempty"`
	Strokes   []Stroke `json:"strokes" yaml:"strokes"`
}

// Format selects the encoding of a stroke file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads one stroke set from r.
func Decode(r io.Reader, f Format) (*Set, error) {
	var s Set
	var err error
	switch f {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
	default:
		err = json.NewDecoder(r).Decode(&s)
	}
	if err != nil {
		return nil, fmt.Errorf("strokes: decoding %s: %w", f, err)
	}
	if s.Strokes == nil {
		s.Strokes = []Stroke{}
	}
	return &s, nil
}

// Load reads the stroke file at path, choosing the format by extension.
func Load(path string) (*Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("strokes: %w", err)
	}
	defer fh.Close()
	return Decode(fh, FormatFor(path))
}

// Encode writes s to w.
func Encode(w io.Writer, s *Set, f Format) error {
	var err error
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(s); err == nil {
			err = enc.Close()
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
	}
	if err != nil {
		return fmt.Errorf("strokes: encoding %s: %w", f, err)
	}
	return nil
}

// Usable returns the strokes with at least two points and the number that
// were left out.
func (s *Set) Usable() (usable []Stroke, discarded int) {
	usable = make([]Stroke, 0, len(s.Strokes))
	for _, st := range s.Strokes {
		if len(st.Points) < 2 {
			discarded++
			continue
		}
		usable = append(usable, st)
	}
	return usable, discarded
}

// Points returns the point lists of every stroke, short ones included.
// The result is never nil.
func (s *Set) Points() [][]geom.Point {
	out := make([][]geom.Point, len(s.Strokes))
	for i, st := range s.Strokes {
		out[i] = st.Points
	}
	return out
}

// Add appends a stroke through points.
func (s *Set) Add(points ...geom.Point) {
	s.Strokes = append(s.Strokes, Stroke{Points: points})
}

// ---------------------------------------------------------------------------
// Wire form
// ---------------------------------------------------------------------------

// A stroke is written as a bare list of [x, y, z] triples.

func toTriples(pts []geom.Point) [][3]float64 {
	out := make([][3]float64, len(pts))
	for i, p := range pts {
		out[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}

// fromTriples converts decoded coordinate lists. Each must hold exactly
// x, y and z.
func fromTriples(ts [][]float64) ([]geom.Point, error) {
	out := make([]geom.Point, len(ts))
	for i, t := range ts {
		if len(t) != 3 {
			return nil, fmt.Errorf("strokes: point %d has %d coordinates, want 3", i, len(t))
		}
		out[i] = v3.Vec{X: t[0], Y: t[1], Z: t[2]}
	}
	return out, nil
}

func (st Stroke) MarshalJSON() ([]byte, error) {
	return json.Marshal(toTriples(st.Points))
}

func (st *Stroke) UnmarshalJSON(data []byte) error {
	var ts [][]float64
	if err := json.Unmarshal(data, &ts); err != nil {
		return err
	}
	pts, err := fromTriples(ts)
	if err != nil {
		return err
	}
	st.Points = pts
	return nil
}

func (st Stroke) MarshalYAML() (any, error) {
	return toTriples(st.Points), nil
}

func (st *Stroke) UnmarshalYAML(n *yaml.Node) error {
	var ts [][]float64
	if err := n.Decode(&ts); err != nil {
		return err
	}
	pts, err := fromTriples(ts)
	if err != nil {
		return err
	}
	st.Points = pts
	return nil
}
