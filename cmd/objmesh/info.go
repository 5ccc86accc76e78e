package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/objmesh/pkg/math3d"
	"github.com/taigrr/objmesh/pkg/models"
)

var infoCmd = &cobra.Command{
	Use:   "info <model.obj>",
	Short: "Display buffer, material and mesh information for an OBJ file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	model, err := newImporter(cfg).LoadFile(args[0])
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), args[0], model)
	return nil
}

func printInfo(w io.Writer, filename string, m *models.Model) {
	fmt.Fprintln(w, "OBJ File Information")
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Name: %s\n", m.Name())
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintln(w, "Buffers:")
	fmt.Fprintf(w, "  Vertices:  %d (%d bytes interleaved)\n", m.NumberOfVertices(), m.NumberOfVertices()*models.VertexStride)
	fmt.Fprintf(w, "  Indices:   %d\n", m.NumberOfIndices())
	fmt.Fprintf(w, "  Triangles: %d\n", m.NumberOfTriangles())
	fmt.Fprintf(w, "  Attributes: %s\n\n", attributeList(m))

	b := m.Bounds()
	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min:    %s\n", formatVector(b.Min))
	fmt.Fprintf(w, "  Max:    %s\n", formatVector(b.Max))
	fmt.Fprintf(w, "  Center: %s\n", formatVector(b.Center))
	fmt.Fprintf(w, "  Size:   %.6f x %.6f x %.6f\n", b.Width, b.Height, b.Length)
	fmt.Fprintf(w, "  Radius: %.6f\n\n", b.Radius)

	fmt.Fprintf(w, "Materials (%d):\n", m.NumberOfMaterials())
	for i, mat := range m.Materials() {
		fmt.Fprintf(w, "  [%d] %s  diffuse=(%.3f, %.3f, %.3f) alpha=%.3f", i, mat.Name,
			mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Alpha)
		if mat.ColorMap != "" {
			fmt.Fprintf(w, " map_Kd=%s", mat.ColorMap)
		}
		if mat.BumpMap != "" {
			fmt.Fprintf(w, " map_bump=%s", mat.BumpMap)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nMeshes (%d, draw order):\n", m.NumberOfMeshes())
	for i, mesh := range m.Meshes() {
		fmt.Fprintf(w, "  [%d] start=%d triangles=%d material=%s\n", i,
			mesh.StartIndex, mesh.TriangleCount, m.Material(mesh.Material).Name)
	}
}

func attributeList(m *models.Model) string {
	var attrs []string
	if m.HasPositions() {
		attrs = append(attrs, "position")
	}
	if m.HasTextureCoords() {
		attrs = append(attrs, "texcoord")
	}
	if m.HasNormals() {
		attrs = append(attrs, "normal")
	}
	if m.HasTangents() {
		attrs = append(attrs, "tangent")
	}
	if len(attrs) == 0 {
		return "none"
	}
	return strings.Join(attrs, ", ")
}

func formatVector(v math3d.Vec3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
