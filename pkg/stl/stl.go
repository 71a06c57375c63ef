// Package stl reads and writes STL files as whittle meshes. Both
// ASCII and binary formats are detected on read; writing always emits
// binary. STL carries no shared-vertex information, so parsed meshes
// use the soup layout and stored facet normals are discarded in favor
// of recomputed ones.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mkessy/whittle/pkg/mesh"
)

// Parse reads an STL file and returns a mesh. The format is detected
// automatically.
func Parse(filename string) (*mesh.Mesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader reads STL data from r, detecting ASCII vs binary from
// the leading bytes. ASCII files start with "solid"; binary files can
// too (in the 80-byte header), so a file that declares solid but has
// no "facet" token falls through to the binary path.
func ParseReader(r io.Reader) (*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) && bytes.Contains(data, []byte("facet")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

// parseASCII parses an ASCII STL stream. Stored facet normals are
// skipped; the mesh recomputes its own.
func parseASCII(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)

	name := ""
	var verts []vec3.T
	var facet []vec3.T

	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) >= 4 {
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				z, _ := strconv.ParseFloat(fields[3], 64)
				facet = append(facet, vec3.T{x, y, z})
			}

		case "endfacet":
			if len(facet) == 3 {
				verts = append(verts, facet...)
			}
			facet = facet[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return mesh.NewSoup(name, verts), nil
}

// parseBinary parses a binary STL stream.
func parseBinary(r io.Reader) (*mesh.Mesh, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	name := string(bytes.TrimRight(header, "\x00 "))

	var triangleCount uint32
	if err := binary.Read(r, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	verts := make([]vec3.T, 0, int(triangleCount)*3)
	for i := uint32(0); i < triangleCount; i++ {
		var rec struct {
			Normal     [3]float32
			V1, V2, V3 [3]float32
			Attribute  uint16
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		for _, v := range [3][3]float32{rec.V1, rec.V2, rec.V3} {
			verts = append(verts, vec3.T{float64(v[0]), float64(v[1]), float64(v[2])})
		}
	}

	return mesh.NewSoup(name, verts), nil
}

// Write writes a mesh to filename in binary STL format.
func Write(filename string, m *mesh.Mesh) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteTo(w, m); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTo writes a mesh to w in binary STL format. Triangle normals
// come from the mesh's normal cache.
func WriteTo(w io.Writer, m *mesh.Mesh) error {
	header := make([]byte, 80)
	copy(header, m.Name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	count := uint32(m.TriangleCount())
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i := 0; i < m.TriangleCount(); i++ {
		p0, p1, p2, err := m.TriangleVertices(i)
		if err != nil {
			return err
		}
		n, _ := m.TriangleNormal(i)

		var rec struct {
			Normal     [3]float32
			V1, V2, V3 [3]float32
			Attribute  uint16
		}
		rec.Normal = toF32(n)
		rec.V1, rec.V2, rec.V3 = toF32(p0), toF32(p1), toF32(p2)
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}

func toF32(v vec3.T) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
