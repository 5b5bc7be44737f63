package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF merges every triangle primitive reachable from the default scene
// into one mesh, with node transforms applied.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	out := &Mesh{}
	for _, root := range sceneRoots(doc) {
		if err := appendNode(doc, root, mgl32.Ident4(), out, 0); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", path, err)
		}
	}
	if len(out.Indices) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangles", path)
	}
	return out, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	// No scene: every parentless node is a root.
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// appendNode walks the hierarchy; depth guards against cyclic documents.
func appendNode(doc *gltf.Document, idx int, parent mgl32.Mat4, out *Mesh, depth int) error {
	if idx < 0 || idx >= len(doc.Nodes) || depth > len(doc.Nodes) {
		return fmt.Errorf("node %d: invalid reference", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		for pi, prim := range doc.Meshes[*node.Mesh].Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(doc, prim, world, out); err != nil {
				return fmt.Errorf("mesh %d prim %d: %w", *node.Mesh, pi, err)
			}
		}
	}
	for _, c := range node.Children {
		if err := appendNode(doc, c, world, out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, world mgl32.Mat4, out *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}
	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	normalMat := world.Mat3().Inv().Transpose()
	base := uint32(len(out.Vertices))
	part := &Mesh{Indices: indices}
	for i, p := range positions {
		v := Vertex{Position: world.Mul4x1(mgl32.Vec3(p).Vec4(1)).Vec3()}
		if i < len(normals) {
			v.Normal = normalMat.Mul3x1(mgl32.Vec3(normals[i])).Normalize()
		}
		part.Vertices = append(part.Vertices, v)
	}
	if err := part.Validate(); err != nil {
		return err
	}
	if len(normals) < len(positions) {
		part.ComputeNormals()
	}

	out.Vertices = append(out.Vertices, part.Vertices...)
	for _, idx := range part.Indices {
		out.Indices = append(out.Indices, base+idx)
	}
	return nil
}

// Load picks the glTF file when path is set and the generated shape otherwise.
// The result is fitted to a unit-sized box around the origin.
func Load(path, shape string) (*Mesh, error) {
	var (
		m   *Mesh
		err error
	)
	if path != "" {
		m, err = LoadGLTF(path)
	} else {
		m, err = Shape(shape)
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if path != "" {
		m.Fit(2)
	}
	return m, nil
}
