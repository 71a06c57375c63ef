// Package scene holds the evaluated model state: the named parts
// produced by one script evaluation, consumed by the app bindings and
// the CLI. A scene is never mutated by the kernel; each evaluation
// produces a fresh one.
package scene

import "github.com/mkessy/whittle/pkg/mesh"

// Part is one named mesh in the scene.
type Part struct {
	Name  string     `json:"name"`
	Color string     `json:"color,omitempty"`
	Mesh  *mesh.Mesh `json:"-"`
}

// Scene is an ordered collection of parts with a name index.
type Scene struct {
	parts []*Part
	names map[string]int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{names: make(map[string]int)}
}

// Add appends a part. Adding a part with an existing name replaces
// the earlier one in place, which is what repeated (emit ...) calls
// under the same name mean.
func (s *Scene) Add(p *Part) {
	if i, ok := s.names[p.Name]; ok {
		s.parts[i] = p
		return
	}
	s.names[p.Name] = len(s.parts)
	s.parts = append(s.parts, p)
}

// Lookup returns the part with the given name, or nil.
func (s *Scene) Lookup(name string) *Part {
	i, ok := s.names[name]
	if !ok {
		return nil
	}
	return s.parts[i]
}

// Parts returns the parts in emission order.
func (s *Scene) Parts() []*Part {
	return s.parts
}

// PartCount returns the number of parts.
func (s *Scene) PartCount() int {
	return len(s.parts)
}
