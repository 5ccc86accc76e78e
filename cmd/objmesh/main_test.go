package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/objmesh/internal/config"
	"github.com/taigrr/objmesh/pkg/math3d"
	"github.com/taigrr/objmesh/pkg/models"
)

const cubeMTL = `newmtl red
Kd 1 0 0

newmtl glass
Kd 0.8 0.9 1
d 0.4
`

const cubeOBJ = `mtllib cube.mtl
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
usemtl red
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
usemtl glass
f 4 8 7 3
f 1 5 8 4
f 2 3 7 6
`

func writeCube(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cube.mtl"), []byte(cubeMTL), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(path, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("objmesh %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestInfoCommand(t *testing.T) {
	out := execute(t, "info", writeCube(t))

	for _, want := range []string{
		"Name: cube",
		"Triangles: 12",
		"Vertices:  8",
		"Materials (2):",
		"[1] glass",
		"Radius: 2.000000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cube.gltf")
	execute(t, "export", writeCube(t), out, "--normalize", "--radius", "4")

	doc, err := gltf.Open(out)
	if err != nil {
		t.Fatalf("Failed to open exported file: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 2 {
		t.Fatalf("Expected one mesh with 2 primitives")
	}
	// Opaque red draws before translucent glass.
	if doc.Materials[*doc.Meshes[0].Primitives[0].Material].Name != "red" {
		t.Error("Expected the opaque primitive first")
	}
	pos := doc.Accessors[doc.Meshes[0].Primitives[0].Attributes[gltf.POSITION]]
	if len(pos.Max) != 3 || math.Abs(pos.Max[0]-2) > 1e-5 {
		t.Errorf("Expected normalized max x of 2, got %v", pos.Max)
	}
}

func TestPrepareModel(t *testing.T) {
	m, err := models.LoadOBJ(writeCube(t))
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	c := config.Default()
	c.Transform.RotateZ = 90
	c.Transform.ReverseWinding = true
	c.Normalize.Enabled = true
	c.Normalize.Radius = 10
	before := m.Indices()

	prepareModel(m, c)

	if math.Abs(m.Radius()-10) > 1e-9 {
		t.Errorf("Expected radius 10, got %f", m.Radius())
	}
	after := m.Indices()
	if after[1] != before[2] || after[2] != before[1] {
		t.Error("Expected winding to be reversed")
	}
}

func TestConfigInitDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)

	out := execute(t, "config", "init")

	path := config.DefaultPath()
	if !strings.Contains(out, path) {
		t.Errorf("Expected output to name %s, got %q", path, out)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if cfg.Normalize.Radius != config.Default().Normalize.Radius {
		t.Errorf("Expected default radius, got %f", cfg.Normalize.Radius)
	}
}

func TestRotationOrder(t *testing.T) {
	// X first takes +Y to +Z, then Y takes +Z to +X.
	p := rotation(90, 90, 0).MulVec3(math3d.V3(0, 1, 0))
	if math.Abs(p.X-1) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("Expected (1,0,0), got %v", p)
	}
}
