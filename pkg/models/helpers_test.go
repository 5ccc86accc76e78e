package models

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/objmesh/pkg/math3d"
)

// writeFile writes content to dir/name and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// loadString imports OBJ text with materials resolved against dir.
func loadString(t *testing.T, l *Importer, dir, obj string) *Model {
	t.Helper()
	m, err := l.Load(strings.NewReader(obj), dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return m
}

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func vecNearlyEqual(a, b math3d.Vec3, eps float64) bool {
	return nearlyEqual(a.X, b.X, eps) && nearlyEqual(a.Y, b.Y, eps) && nearlyEqual(a.Z, b.Z, eps)
}

// checkBufferInvariants verifies index/attribute buffer sizes and ranges.
func checkBufferInvariants(t *testing.T, m *Model) {
	t.Helper()
	if got, want := m.NumberOfIndices(), 3*m.NumberOfTriangles(); got != want {
		t.Errorf("Expected %d indices, got %d", want, got)
	}
	if got := len(m.Attributes()); got != m.NumberOfTriangles() {
		t.Errorf("Expected %d attributes, got %d", m.NumberOfTriangles(), got)
	}
	for i, idx := range m.Indices() {
		if int(idx) >= m.NumberOfVertices() {
			t.Errorf("Index %d = %d out of range (%d vertices)", i, idx, m.NumberOfVertices())
		}
	}
}
