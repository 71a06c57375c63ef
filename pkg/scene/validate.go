package scene

import "fmt"

// ValidationSeverity indicates whether a finding blocks display or is
// merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks display
	SeverityWarning                           // advisory
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError is a blocking structural problem in a part's mesh.
type ValidationError struct {
	Part     string
	Message  string
	Severity ValidationSeverity
}

// ValidationWarning is an advisory finding.
type ValidationWarning struct {
	Part    string
	Message string
}

// Validate runs structural checks over every part in the scene.
// Errors (blocking) and warnings (advisory) are returned separately.
func Validate(s *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, p := range s.Parts() {
		if p.Mesh == nil || p.Mesh.IsEmpty() {
			warnings = append(warnings, ValidationWarning{
				Part:    p.Name,
				Message: "part has no geometry",
			})
			continue
		}
		errs = append(errs, validateIndices(p)...)
		errs = append(errs, validateNormals(p)...)
		warnings = append(warnings, validateDegenerate(p)...)
	}

	return errs, warnings
}

// validateIndices checks that every index buffer entry references an
// existing vertex.
func validateIndices(p *Part) []ValidationError {
	var errs []ValidationError
	if p.Mesh.Indices == nil {
		return nil
	}
	limit := uint32(p.Mesh.VertexCount())
	for i, ix := range p.Mesh.Indices {
		if ix >= limit {
			errs = append(errs, ValidationError{
				Part:     p.Name,
				Message:  fmt.Sprintf("index entry %d references vertex %d, mesh has %d", i, ix, limit),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateNormals checks that the normal cache matches the triangle
// count. A mismatch means RecomputeNormals was skipped after a
// geometry change.
func validateNormals(p *Part) []ValidationError {
	if len(p.Mesh.Normals) == p.Mesh.TriangleCount() {
		return nil
	}
	return []ValidationError{{
		Part: p.Name,
		Message: fmt.Sprintf("normal cache has %d entries for %d triangles",
			len(p.Mesh.Normals), p.Mesh.TriangleCount()),
		Severity: SeverityError,
	}}
}

// validateDegenerate warns about zero-area triangles, which project
// and extrude badly even though the mesh remains usable.
func validateDegenerate(p *Part) []ValidationWarning {
	degenerate := 0
	for _, n := range p.Mesh.Normals {
		if n[0] == 0 && n[1] == 0 && n[2] == 0 {
			degenerate++
		}
	}
	if degenerate == 0 {
		return nil
	}
	return []ValidationWarning{{
		Part:    p.Name,
		Message: fmt.Sprintf("%d degenerate (zero-area) triangles", degenerate),
	}}
}
