// Package export writes reconstructed meshes in host file formats. Every
// format is a mesh.Sink.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/chazu/retopo/pkg/kernel/sdfx"
	"github.com/chazu/retopo/pkg/mesh"
	"github.com/chazu/retopo/pkg/tessellate"
)

// Compile-time interface checks.
var (
	_ mesh.Sink = OBJ{}
	_ mesh.Sink = STL{}
	_ mesh.Sink = JSON{}
)

// Default cage sizes used by ForFormat("cage").
const (
	DefaultCageRadius = 0.01
	DefaultCageCells  = 200
)

// ForFormat returns the sink for a format name: obj, stl, cage or json.
func ForFormat(name string) (mesh.Sink, error) {
	switch strings.ToLower(name) {
	case "obj":
		return OBJ{}, nil
	case "stl":
		return STL{}, nil
	case "cage":
		return STL{
			Kernel: sdfx.NewWithCells(DefaultCageCells),
			Cage:   tessellate.CageOptions{Radius: DefaultCageRadius},
		}, nil
	case "json":
		return JSON{Indent: "  "}, nil
	}
	return nil, fmt.Errorf("export: unknown format %q (want one of %s)", name, strings.Join(Formats(), ", "))
}

// Formats lists the names ForFormat accepts.
func Formats() []string {
	f := []string{"obj", "stl", "cage", "json"}
	slices.Sort(f)
	return f
}

// JSON writes the mesh as a JSON document.
type JSON struct {
	Indent string
}

func (j JSON) Write(w io.Writer, m *mesh.Mesh) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}
	return nil
}
