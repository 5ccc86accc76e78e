// Package config handles objmesh configuration loading and saving.
package config

// Config holds all objmesh settings.
type Config struct {
	Import    ImportConfig    `yaml:"import"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Transform TransformConfig `yaml:"transform"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ImportConfig holds importer options.
type ImportConfig struct {
	RebuildNormals         bool `yaml:"rebuild_normals"`
	ForceTangents          bool `yaml:"force_tangents"`
	IgnoreMissingMaterials bool `yaml:"ignore_missing_materials"`
}

// NormalizeConfig controls rescaling after import.
type NormalizeConfig struct {
	Enabled bool    `yaml:"enabled"`
	Radius  float64 `yaml:"radius"`
	Center  bool    `yaml:"center"`
}

// TransformConfig holds the orientation fixes applied before export.
// Rotations are in degrees and applied X, then Y, then Z.
type TransformConfig struct {
	ReverseWinding bool    `yaml:"reverse_winding"`
	RotateX        float64 `yaml:"rotate_x"`
	RotateY        float64 `yaml:"rotate_y"`
	RotateZ        float64 `yaml:"rotate_z"`
}

// ExportConfig holds glTF output settings.
type ExportConfig struct {
	Binary bool `yaml:"binary"` // GLB instead of .gltf JSON
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Normalize: NormalizeConfig{
			Enabled: false,
			Radius:  1,
			Center:  true,
		},
		Export: ExportConfig{
			Binary: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
