package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/objmesh/internal/config"
	"github.com/taigrr/objmesh/internal/logger"
	"github.com/taigrr/objmesh/pkg/math3d"
	"github.com/taigrr/objmesh/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export <model.obj> <out.glb|out.gltf>",
	Short: "Convert an OBJ file to glTF",
	Long: `Import an OBJ file, optionally reorient and normalize it, and write it as
binary GLB or as .gltf JSON with an embedded buffer. The output extension picks
the format unless --binary is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.Bool("rebuild-normals", false, "Generate normals even if the file has them")
	f.Bool("force-tangents", false, "Generate tangents even without bump maps")
	f.Bool("ignore-missing-materials", false, "Continue when a material library cannot be read")
	f.Bool("normalize", false, "Rescale the model to --radius")
	f.Float64("radius", 1, "Target radius for --normalize")
	f.Bool("center", true, "Move the bounding box center to the origin when normalizing")
	f.Bool("reverse-winding", false, "Flip triangle winding and normals")
	f.Float64("rotate-x", 0, "Rotate around X, in degrees")
	f.Float64("rotate-y", 0, "Rotate around Y, in degrees")
	f.Float64("rotate-z", 0, "Rotate around Z, in degrees")
	f.Bool("binary", true, "Write GLB")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	if err := applyExportFlags(cmd, cfg); err != nil {
		return err
	}

	binary := cfg.Export.Binary
	if !cmd.Flags().Changed("binary") {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".gltf":
			binary = false
		case ".glb":
			binary = true
		}
	}

	model, err := newImporter(cfg).LoadFile(in)
	if err != nil {
		return err
	}
	prepareModel(model, cfg)

	if err := models.ExportGLTF(model, out, binary); err != nil {
		return fmt.Errorf("export %s: %w", out, err)
	}

	logger.Log.Info("exported",
		zap.String("input", in),
		zap.String("output", out),
		zap.Bool("binary", binary),
		zap.Int("triangles", model.NumberOfTriangles()),
		zap.Int("primitives", model.NumberOfMeshes()),
	)
	return nil
}

// applyExportFlags copies explicitly set flags over the loaded config.
func applyExportFlags(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	var err error
	setBool := func(name string, dst *bool) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetBool(name)
		}
	}
	setFloat := func(name string, dst *float64) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetFloat64(name)
		}
	}

	setBool("rebuild-normals", &c.Import.RebuildNormals)
	setBool("force-tangents", &c.Import.ForceTangents)
	setBool("ignore-missing-materials", &c.Import.IgnoreMissingMaterials)
	setBool("normalize", &c.Normalize.Enabled)
	setFloat("radius", &c.Normalize.Radius)
	setBool("center", &c.Normalize.Center)
	setBool("reverse-winding", &c.Transform.ReverseWinding)
	setFloat("rotate-x", &c.Transform.RotateX)
	setFloat("rotate-y", &c.Transform.RotateY)
	setFloat("rotate-z", &c.Transform.RotateZ)
	setBool("binary", &c.Export.Binary)
	return err
}

// prepareModel applies the configured orientation fixes, then normalization.
func prepareModel(m *models.Model, c *config.Config) {
	t := c.Transform
	if t.RotateX != 0 || t.RotateY != 0 || t.RotateZ != 0 {
		m.Transform(rotation(t.RotateX, t.RotateY, t.RotateZ))
	}
	if t.ReverseWinding {
		m.ReverseWinding()
	}
	if c.Normalize.Enabled {
		m.Normalize(c.Normalize.Radius, c.Normalize.Center)
	}
}

// rotation composes rotations in degrees, applied X first, then Y, then Z.
func rotation(x, y, z float64) math3d.Mat4 {
	return math3d.RotateZ(math3d.Radians(z)).
		Mul(math3d.RotateY(math3d.Radians(y))).
		Mul(math3d.RotateX(math3d.Radians(x)))
}
