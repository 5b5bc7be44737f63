// Package mesh builds the triangle meshes the model entity draws.
package mesh

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a position with its normal.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// FloatsPerVertex is the stride of Interleaved in floats.
const FloatsPerVertex = 6

// Interleaved packs positions and normals as x,y,z,nx,ny,nz per vertex.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
	}
	return out
}

// Bounds returns the axis-aligned box around all vertices.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			lo[i] = math32.Min(lo[i], v.Position[i])
			hi[i] = math32.Max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}

// Fit centres the mesh on the origin and scales it so its largest extent is size.
func (m *Mesh) Fit(size float32) {
	lo, hi := m.Bounds()
	ext := hi.Sub(lo)
	largest := math32.Max(ext.X(), math32.Max(ext.Y(), ext.Z()))
	if largest == 0 {
		return
	}
	centre := lo.Add(hi).Mul(0.5)
	scale := size / largest
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(centre).Mul(scale)
	}
}

// ComputeNormals replaces every normal with the area-weighted average of the
// faces sharing the vertex.
func (m *Mesh) ComputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl32.Vec3{}
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		m.Vertices[a].Normal = m.Vertices[a].Normal.Add(n)
		m.Vertices[b].Normal = m.Vertices[b].Normal.Add(n)
		m.Vertices[c].Normal = m.Vertices[c].Normal.Add(n)
	}
	for i := range m.Vertices {
		if m.Vertices[i].Normal.Len() > 0 {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
		}
	}
}

// Validate checks that every index refers to a vertex and triangles are complete.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh: %d indices is not a whole number of triangles", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh: index %d at %d out of range (%d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Torus lies in the XZ plane around the Y axis.
func Torus(major, minor float32, rings, sides int) *Mesh {
	m := &Mesh{}
	for r := 0; r <= rings; r++ {
		u := float32(r) / float32(rings) * 2 * math32.Pi
		su, cu := math32.Sincos(u)
		for s := 0; s <= sides; s++ {
			v := float32(s) / float32(sides) * 2 * math32.Pi
			sv, cv := math32.Sincos(v)
			normal := mgl32.Vec3{cv * cu, sv, cv * su}
			centre := mgl32.Vec3{major * cu, 0, major * su}
			m.Vertices = append(m.Vertices, Vertex{
				Position: centre.Add(normal.Mul(minor)),
				Normal:   normal,
			})
		}
	}
	m.Indices = grid(rings, sides)
	return m
}

// Sphere is centred on the origin.
func Sphere(radius float32, stacks, slices int) *Mesh {
	m := &Mesh{}
	for st := 0; st <= stacks; st++ {
		phi := float32(st) / float32(stacks) * math32.Pi
		sp, cp := math32.Sincos(phi)
		for sl := 0; sl <= slices; sl++ {
			theta := float32(sl) / float32(slices) * 2 * math32.Pi
			stt, ct := math32.Sincos(theta)
			normal := mgl32.Vec3{sp * ct, cp, sp * stt}
			m.Vertices = append(m.Vertices, Vertex{Position: normal.Mul(radius), Normal: normal})
		}
	}
	m.Indices = grid(stacks, slices)
	return m
}

// grid triangulates a (rows+1) x (cols+1) vertex lattice.
func grid(rows, cols int) []uint32 {
	idx := make([]uint32, 0, rows*cols*6)
	stride := uint32(cols + 1)
	for r := range uint32(rows) {
		for c := range uint32(cols) {
			a := r*stride + c
			b := a + stride
			idx = append(idx, a, a+1, b, b, a+1, b+1)
		}
	}
	return idx
}

// Shape builds a generated mesh by name.
func Shape(name string) (*Mesh, error) {
	switch strings.ToLower(name) {
	case "", "torus":
		return Torus(0.7, 0.3, 48, 24), nil
	case "sphere":
		return Sphere(0.8, 24, 48), nil
	}
	return nil, fmt.Errorf("mesh: unknown shape %q", name)
}
