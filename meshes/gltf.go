package meshes

import (
	"github.com/bloeys/nscene/buffers"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// NewMeshGltf loads all triangle primitives of all meshes in a .gltf/.glb file into one Mesh,
// with one submesh per primitive. Node transforms are ignored.
//
// The vertex layout is the same as NewMesh without vertex colors. Tangents are left as zero.
func NewMeshGltf(name, modelPath string) (Mesh, error) {

	doc, err := gltf.Open(modelPath)
	if err != nil {
		return Mesh{}, errors.Wrapf(err, "failed to open gltf file '%s'", modelPath)
	}

	md, subMeshes, err := gltfToMeshData(doc)
	if err != nil {
		return Mesh{}, errors.Wrapf(err, "failed to read gltf file '%s'", modelPath)
	}

	layout := make([]buffers.Element, len(md.Layout))
	copy(layout, md.Layout)

	return Mesh{
		Name:      name,
		Vao:       uploadVertexArray(layout, md.Vertices, md.Indices),
		SubMeshes: subMeshes,
		Primitive: PrimitiveTriangles,
	}, nil
}

func gltfToMeshData(doc *gltf.Document) (MeshData, []SubMesh, error) {

	md := MeshData{
		Layout:    litLayout(),
		Primitive: PrimitiveTriangles,
	}

	const floatsPerVertex = 3 + 3 + 3 + 2

	subMeshes := make([]SubMesh, 0, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {

			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				return MeshData{}, nil, errors.Errorf("primitive %d of mesh %d has no POSITION attribute", pi, mi)
			}

			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return MeshData{}, nil, errors.Wrapf(err, "failed to read positions of primitive %d of mesh %d", pi, mi)
			}

			var normals [][3]float32
			if idx, ok := prim.Attributes["NORMAL"]; ok {
				normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
				if err != nil {
					return MeshData{}, nil, errors.Wrapf(err, "failed to read normals of primitive %d of mesh %d", pi, mi)
				}
			}

			var uvs [][2]float32
			if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
				uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
				if err != nil {
					return MeshData{}, nil, errors.Wrapf(err, "failed to read uvs of primitive %d of mesh %d", pi, mi)
				}
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return MeshData{}, nil, errors.Wrapf(err, "failed to read indices of primitive %d of mesh %d", pi, mi)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}

			subMeshes = append(subMeshes, SubMesh{
				BaseVertex: int32(len(md.Vertices) / floatsPerVertex),
				BaseIndex:  uint32(len(md.Indices)),
				IndexCount: int32(len(indices)),
			})

			md.Vertices = appendGltfVertices(md.Vertices, positions, normals, uvs)
			md.Indices = append(md.Indices, indices...)
		}
	}

	if len(subMeshes) == 0 {
		return MeshData{}, nil, errors.New("no triangle primitives found")
	}

	return md, subMeshes, nil
}

// appendGltfVertices interleaves vertex data. Missing normals and uvs are zero
func appendGltfVertices(out []float32, positions, normals [][3]float32, uvs [][2]float32) []float32 {

	for i, p := range positions {

		var n [3]float32
		if i < len(normals) {
			n = normals[i]
		}

		var uv [2]float32
		if i < len(uvs) {
			uv = uvs[i]
		}

		out = append(out,
			p[0], p[1], p[2],
			n[0], n[1], n[2],
			0, 0, 0,
			uv[0], uv[1],
		)
	}

	return out
}
