package models

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrEmptyModel is returned when exporting a model without triangles.
var ErrEmptyModel = errors.New("model has no triangles")

// BuildGLTF converts the model into a glTF document. All meshes share one
// set of vertex accessors; each Mesh becomes a primitive with its own index
// accessor and material, in draw order.
func BuildGLTF(m *Model) (*gltf.Document, error) {
	if m.NumberOfTriangles() == 0 {
		return nil, ErrEmptyModel
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "objmesh"

	positions := make([][3]float32, len(m.vertices))
	normals := make([][3]float32, len(m.vertices))
	uvs := make([][2]float32, len(m.vertices))
	tangents := make([][4]float32, len(m.vertices))
	for i, v := range m.vertices {
		positions[i] = [3]float32{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)}
		normals[i] = [3]float32{float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)}
		// glTF puts the texture origin top-left, OBJ bottom-left
		uvs[i] = [2]float32{float32(v.TexCoord.X), float32(1 - v.TexCoord.Y)}
		// glTF rebuilds the bitangent as cross(N, T) * w
		tangents[i] = [4]float32{float32(v.Tangent.X), float32(v.Tangent.Y), float32(v.Tangent.Z), float32(-v.Tangent.W)}
	}

	attributes := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}
	if m.hasNormals {
		attributes[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	if m.hasTextureCoords {
		attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
	}
	if m.hasTangents && m.hasNormals {
		attributes[gltf.TANGENT] = modeler.WriteTangent(doc, tangents)
	}

	textures := make(map[string]int)
	for _, mat := range m.materials {
		doc.Materials = append(doc.Materials, gltfMaterial(doc, mat, textures))
	}

	mesh := &gltf.Mesh{Name: meshName(m)}
	for _, dm := range m.meshes {
		indices := m.indices[dm.StartIndex : dm.StartIndex+dm.IndexCount()]
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Attributes: attributes,
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Material:   gltf.Index(dm.Material),
			Mode:       gltf.PrimitiveTriangles,
		})
	}
	doc.Meshes = []*gltf.Mesh{mesh}
	doc.Nodes = []*gltf.Node{{Name: mesh.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc, nil
}

// ExportGLTF writes the model to path, as GLB when binary is set and as
// .gltf JSON with an embedded buffer otherwise.
func ExportGLTF(m *Model, path string, binary bool) error {
	doc, err := BuildGLTF(m)
	if err != nil {
		return err
	}

	if binary {
		if err := gltf.SaveBinary(doc, path); err != nil {
			return fmt.Errorf("save glb: %w", err)
		}
		return nil
	}

	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}

// gltfMaterial maps an MTL material onto a PBR metallic-roughness material.
// Texture paths are referenced by URI, never embedded.
func gltfMaterial(doc *gltf.Document, mat Material, textures map[string]int) *gltf.Material {
	// Ns runs 0..1000, so the stored shininess is roughly 0..1.
	roughness := 1 - math.Min(math.Max(mat.Shininess, 0), 1)

	out := &gltf.Material{
		Name: mat.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Alpha},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(roughness),
		},
		AlphaMode: gltf.AlphaOpaque,
	}
	if mat.Alpha < 1 {
		out.AlphaMode = gltf.AlphaBlend
	}

	if mat.ColorMap != "" {
		out.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{
			Index: textureIndex(doc, mat.ColorMap, textures),
		}
	}
	if mat.BumpMap != "" {
		out.NormalTexture = &gltf.NormalTexture{
			Index: gltf.Index(textureIndex(doc, mat.BumpMap, textures)),
		}
	}
	return out
}

// textureIndex returns the texture for uri, adding image and texture entries
// the first time a path is seen.
func textureIndex(doc *gltf.Document, uri string, textures map[string]int) int {
	if idx, ok := textures[uri]; ok {
		return idx
	}
	doc.Images = append(doc.Images, &gltf.Image{
		Name: filepath.Base(filepath.FromSlash(uri)),
		URI:  strings.ReplaceAll(uri, `\`, "/"),
	})
	doc.Textures = append(doc.Textures, &gltf.Texture{
		Source: gltf.Index(len(doc.Images) - 1),
	})
	idx := len(doc.Textures) - 1
	textures[uri] = idx
	return idx
}

func meshName(m *Model) string {
	if m.name == "" {
		return "model"
	}
	return m.name
}
