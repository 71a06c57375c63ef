package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mkessy/whittle/pkg/engine"
	"github.com/mkessy/whittle/pkg/kernel"
	"github.com/mkessy/whittle/pkg/scene"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via
// bindings. The last evaluated scene is kept so that interactive face
// operations (select, extrude, offset, shell) can address parts by
// name without re-running the script.
type App struct {
	ctx    context.Context
	engine *engine.Engine

	mu    sync.Mutex
	scene *scene.Scene
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// FaceData describes a selected planar face for the frontend: the
// triangles to highlight plus the face plane.
type FaceData struct {
	PartName  string     `json:"partName"`
	Triangles []int      `json:"triangles"`
	Normal    [3]float64 `json:"normal"`
	Centroid  [3]float64 `json:"centroid"`
	Area      float64    `json:"area"`
	Error     string     `json:"error,omitempty"`
}

// NewApp creates a new App with a modeling engine.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes Lisp source and returns mesh data + errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: err.Error(),
		})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Validation produces warnings for suspicious geometry and errors
	// for broken geometry; neither blocks rendering of the good parts.
	valErrs, valWarns := scene.Validate(sc)
	for _, e := range valErrs {
		result.Errors = append(result.Errors, EvalErrorData{
			Message: fmt.Sprintf("%s: %s", e.Part, e.Message),
		})
	}
	for _, w := range valWarns {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Message: fmt.Sprintf("%s: %s", w.Part, w.Message),
		})
	}

	a.mu.Lock()
	a.scene = sc
	a.mu.Unlock()

	for i, part := range sc.Parts() {
		color := part.Color
		if color == "" {
			color = colorPalette[i%len(colorPalette)]
		}
		rm := part.Mesh.Flatten()
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: rm.Vertices,
			Normals:  rm.Normals,
			Indices:  rm.Indices,
			PartName: part.Name,
			Color:    color,
		})
	}

	return result
}

// SelectFace aggregates the logical planar face containing the given
// triangle of a part from the last evaluation. Called when the user
// clicks a triangle in the viewport.
func (a *App) SelectFace(partName string, triangle int) FaceData {
	data := FaceData{PartName: partName}

	part, err := a.lookupPart(partName)
	if err != nil {
		data.Error = err.Error()
		return data
	}

	face, err := kernel.AggregateFace(part.Mesh, triangle)
	if err != nil {
		data.Error = err.Error()
		return data
	}

	data.Triangles = face.Triangles
	data.Normal = face.Normal
	data.Centroid = face.Centroid
	data.Area = face.Area
	return data
}

// ExtrudeFace extrudes the planar face containing the given triangle
// and adds the result to the scene as a new part. Returns the updated
// scene.
func (a *App) ExtrudeFace(partName string, triangle int, depth float64) EvalResult {
	return a.mutate(func(sc *scene.Scene) error {
		part := sc.Lookup(partName)
		if part == nil {
			return fmt.Errorf("unknown part %q", partName)
		}
		face, err := kernel.AggregateFace(part.Mesh, triangle)
		if err != nil {
			return err
		}
		profile, frame, err := kernel.ProjectFace(face)
		if err != nil {
			return err
		}
		m, err := kernel.ExtrudeProfile(profile, frame, depth, nil)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s-extrusion", partName)
		m.Name = name
		sc.Add(&scene.Part{Name: name, Mesh: m})
		return nil
	})
}

// OffsetPart offsets every vertex of a part along its vertex normal
// and replaces the part in the scene.
func (a *App) OffsetPart(partName string, distance float64) EvalResult {
	return a.mutate(func(sc *scene.Scene) error {
		part := sc.Lookup(partName)
		if part == nil {
			return fmt.Errorf("unknown part %q", partName)
		}
		m := kernel.OffsetWhole(part.Mesh, distance)
		m.Name = partName
		sc.Add(&scene.Part{Name: partName, Color: part.Color, Mesh: m})
		return nil
	})
}

// ShellPart hollows a part into a shell of the given thickness and
// replaces the part in the scene.
func (a *App) ShellPart(partName string, thickness float64) EvalResult {
	return a.mutate(func(sc *scene.Scene) error {
		part := sc.Lookup(partName)
		if part == nil {
			return fmt.Errorf("unknown part %q", partName)
		}
		m := kernel.Shell(part.Mesh, thickness)
		m.Name = partName
		sc.Add(&scene.Part{Name: partName, Color: part.Color, Mesh: m})
		return nil
	})
}

// lookupPart fetches a part from the last evaluated scene.
func (a *App) lookupPart(name string) (*scene.Part, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.scene == nil {
		return nil, fmt.Errorf("no scene; evaluate a script first")
	}
	part := a.scene.Lookup(name)
	if part == nil {
		return nil, fmt.Errorf("unknown part %q", name)
	}
	return part, nil
}

// mutate runs fn against the current scene under the lock, then
// rebuilds the frontend mesh list from the updated scene.
func (a *App) mutate(fn func(*scene.Scene) error) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.scene == nil {
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "no scene; evaluate a script first",
		})
		return result
	}

	if err := fn(a.scene); err != nil {
		log.Printf("scene mutation error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	for i, part := range a.scene.Parts() {
		color := part.Color
		if color == "" {
			color = colorPalette[i%len(colorPalette)]
		}
		rm := part.Mesh.Flatten()
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: rm.Vertices,
			Normals:  rm.Normals,
			Indices:  rm.Indices,
			PartName: part.Name,
			Color:    color,
		})
	}

	return result
}
