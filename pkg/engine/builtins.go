package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/strokes"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

const (
	// defaultLineSamples is the number of segments a line is split into.
	defaultLineSamples = 1
	// defaultCircleSamples is the number of segments around a circle.
	defaultCircleSamples = 32
	// maxSamples caps generated strokes so a typo cannot allocate forever.
	maxSamples = 100000
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites stroke script source into something zygomys
// accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols and cannot clash with user variables.
//  2. kebab-case identifiers become snake_case (zygomys reads the hyphen
//     as subtraction).
//  3. ; line comments become // comments.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"':
			i = copyQuoted(&out, b, i, '"', true)
		case c == '`':
			i = copyQuoted(&out, b, i, '`', false)
		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// copyQuoted copies the literal opening at b[i] up to and including its
// closing quote and returns the index after it.
func copyQuoted(out *[]byte, b []byte, i int, quote byte, escapes bool) int {
	*out = append(*out, b[i])
	i++
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			*out = append(*out, b[i], b[i+1])
			i += 2
			continue
		}
		*out = append(*out, b[i])
		i++
	}
	if i < len(b) {
		*out = append(*out, b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Script values
// ---------------------------------------------------------------------------

// sexpVec3 carries a point between builtins.
type sexpVec3 struct {
	p geom.Point
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.p.X, v.p.Y, v.p.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpStroke is what the stroke-producing builtins return: a handle to the
// stroke they appended.
type sexpStroke struct {
	index  int
	points int
}

func (s *sexpStroke) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(stroke #%d, %d points)", s.index, s.points)
}
func (s *sexpStroke) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument parsing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword names rewritten by preprocessSource.
const kwPrefix = "__kw_"

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs is a builtin's argument list split into keyword and positional
// arguments.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	pa := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			pa.kw[name] = args[i+1]
			i++
		} else {
			pa.kw[name] = zygo.SexpNull
		}
	}
	return pa
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (geom.Point, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.p, nil
	}
	return geom.Point{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a list or array to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func toPoints(items []zygo.Sexp) ([]geom.Point, error) {
	pts := make([]geom.Point, 0, len(items))
	for i, item := range items {
		p, err := toPoint(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// kwFloat reads keyword name as a number, or returns def when absent.
func (pa kwArgs) kwFloat(name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// kwSamples reads keyword samples as a segment count in [1, maxSamples].
func (pa kwArgs) kwSamples(def int) (int, error) {
	v, ok := pa.kw["samples"]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("samples: %w", err)
	}
	if n < 1 || n > maxSamples {
		return 0, fmt.Errorf("samples: %d outside [1, %d]", n, maxSamples)
	}
	return n, nil
}

// kwPoint reads keyword name as a vec3. It is an error for it to be absent.
func (pa kwArgs) kwPoint(name string) (geom.Point, error) {
	v, ok := pa.kw[name]
	if !ok {
		return geom.Point{}, fmt.Errorf("missing :%s", name)
	}
	p, err := toPoint(v)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Stroke generators
// ---------------------------------------------------------------------------

// linePoints samples the segment from a to b with n segments.
func linePoints(a, b geom.Point, n int) []geom.Point {
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = geom.Lerp(a, b, float64(i)/float64(n))
	}
	pts[n] = b
	return pts
}

// circlePoints samples a circle in the plane z = center.Z with n segments.
// The first point is repeated at the end so the stroke closes.
func circlePoints(center geom.Point, r float64, n int) []geom.Point {
	pts := make([]geom.Point, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = center.Add(v3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	pts[n] = pts[0]
	return pts
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the stroke builtins into env. Every stroke the
// script draws is appended to set.
//
// Source must go through preprocessSource first so :keyword tokens reach
// the builtins as recognizable strings.
func registerBuiltins(env *zygo.Zlisp, set *strokes.Set) {
	add := func(pts []geom.Point) zygo.Sexp {
		set.Add(pts...)
		return &sexpStroke{index: len(set.Strokes) - 1, points: len(pts)}
	}

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			c[i] = f
		}
		return &sexpVec3{p: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// (stroke p0 p1 ...) or (stroke :points (list p0 p1 ...))
	env.AddFunction("stroke", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		items := pa.positional
		if v, ok := pa.kw["points"]; ok {
			if len(items) > 0 {
				return zygo.SexpNull, fmt.Errorf("stroke: give points positionally or with :points, not both")
			}
			var err error
			if items, err = sexpListToSlice(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("stroke: points: %w", err)
			}
		}
		pts, err := toPoints(items)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("stroke: %w", err)
		}
		return add(pts), nil
	})

	// (line :from (vec3 0 0 0) :to (vec3 1 0 0) :samples 4)
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		from, err := pa.kwPoint("from")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		to, err := pa.kwPoint("to")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		n, err := pa.kwSamples(defaultLineSamples)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		return add(linePoints(from, to, n)), nil
	})

	// (circle :center (vec3 0 0 0) :radius 1 :samples 32)
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center := geom.Point{}
		if _, ok := pa.kw["center"]; ok {
			var err error
			if center, err = pa.kwPoint("center"); err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: %w", err)
			}
		}
		r, err := pa.kwFloat("radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		if !(r > 0) {
			return zygo.SexpNull, fmt.Errorf("circle: radius must be positive, got %g", r)
		}
		n, err := pa.kwSamples(defaultCircleSamples)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		if n < 3 {
			return zygo.SexpNull, fmt.Errorf("circle: needs at least 3 samples, got %d", n)
		}
		return add(circlePoints(center, r, n)), nil
	})

	// (precision 40)
	env.AddFunction("precision", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("precision requires exactly 1 argument, got %d", len(args))
		}
		p, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("precision: %w", err)
		}
		if !(p > 0) || math.IsInf(p, 0) {
			return zygo.SexpNull, fmt.Errorf("precision must be a positive finite number, got %g", p)
		}
		set.Precision = p
		return args[0], nil
	})
}
