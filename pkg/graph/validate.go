package graph

import "fmt"

// ValidationSeverity indicates whether a finding breaks a graph invariant
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // invariant violated
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Index    int                // junction index, -1 if graph-level
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] junction %d: %s", e.Severity, e.Index, e.Message)
}

// Validate checks the structural invariants of g and returns every finding.
// An empty slice means the graph is valid. Orphans are reported as warnings
// since they are legal until Compact runs. Validate never mutates g.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIndices(g)...)
	errs = append(errs, validateLinks(g)...)
	errs = append(errs, validateOrphans(g)...)
	return errs
}

// validateIndices checks that every junction's Index is its position.
func validateIndices(g *Graph) []ValidationError {
	var errs []ValidationError
	for i, j := range g.junctions {
		if j.Index != i {
			errs = append(errs, ValidationError{
				Index:    i,
				Message:  fmt.Sprintf("index is %d, expected %d", j.Index, i),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateLinks checks that links are mutual, never point at the junction
// itself, never repeat, and only reference junctions owned by g.
func validateLinks(g *Graph) []ValidationError {
	var errs []ValidationError
	owned := make(map[*Junction]bool, len(g.junctions))
	for _, j := range g.junctions {
		owned[j] = true
	}

	total := 0
	for i, j := range g.junctions {
		seen := make(map[*Junction]bool, len(j.links))
		for _, n := range j.links {
			total++
			switch {
			case n == j:
				errs = append(errs, ValidationError{
					Index:    i,
					Message:  "linked to itself",
					Severity: SeverityError,
				})
			case seen[n]:
				errs = append(errs, ValidationError{
					Index:    i,
					Message:  fmt.Sprintf("duplicate link to junction %d", n.Index),
					Severity: SeverityError,
				})
			case !owned[n]:
				errs = append(errs, ValidationError{
					Index:    i,
					Message:  fmt.Sprintf("linked to junction %d which is not in the graph", n.Index),
					Severity: SeverityError,
				})
			case !n.LinkedTo(j):
				errs = append(errs, ValidationError{
					Index:    i,
					Message:  fmt.Sprintf("link to junction %d is not mutual", n.Index),
					Severity: SeverityError,
				})
			}
			seen[n] = true
		}
	}

	if total != 2*g.edges {
		errs = append(errs, ValidationError{
			Index:    -1,
			Message:  fmt.Sprintf("edge count %d does not match %d link endpoints", g.edges, total),
			Severity: SeverityError,
		})
	}
	return errs
}

// validateOrphans reports junctions without links.
func validateOrphans(g *Graph) []ValidationError {
	var errs []ValidationError
	for i, j := range g.junctions {
		if j.IsOrphan() {
			errs = append(errs, ValidationError{
				Index:    i,
				Message:  "orphan junction has no links",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
