// objmesh - Wavefront OBJ importer
// Inspect OBJ/MTL files and convert them to glTF or GLB.
//
// Usage:
//
//	objmesh info model.obj
//	objmesh export model.obj model.glb --normalize --rotate-x -90
//	objmesh config init
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/objmesh/internal/config"
	"github.com/taigrr/objmesh/internal/logger"
	"github.com/taigrr/objmesh/pkg/models"
)

var (
	configPath string
	logLevel   string
	logFile    string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "objmesh",
	Short: "Import Wavefront OBJ models into renderer-ready buffers",
	Long: `objmesh parses Wavefront OBJ geometry and MTL material libraries, welds
vertices, generates normals and tangents, groups triangles into per-material
draw ranges, and can write the result as glTF 2.0.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config file (default ./"+config.FileName+" or user config dir)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "Also write logs to this file (rotated)")
}

// setup loads the config, applies persistent flag overrides and starts the
// logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.LogFile = logFile
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	logger.Log.Debug("configuration loaded", zap.String("path", configPath), zap.Any("config", cfg))
	return nil
}

// newImporter builds an importer from the import section of the config.
func newImporter(c *config.Config) *models.Importer {
	return &models.Importer{
		RebuildNormals:         c.Import.RebuildNormals,
		ForceTangents:          c.Import.ForceTangents,
		IgnoreMissingMaterials: c.Import.IgnoreMissingMaterials,
		Logger:                 logger.Log.Named("import"),
	}
}

func main() {
	// fang prints the error itself.
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
