// lightsrad extracts lights.rad texture colors from compiled Source engine maps.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lightsrad/internal/catalog"
	"github.com/Faultbox/lightsrad/internal/config"
	"github.com/Faultbox/lightsrad/internal/extract"
	"github.com/Faultbox/lightsrad/internal/logger"
	"github.com/Faultbox/lightsrad/internal/radfile"
	"github.com/Faultbox/lightsrad/pkg/bsp"
)

const version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = printUsage
	config.ParseFlags()

	if config.ShowVersion() {
		fmt.Printf("lightsrad %s\n", version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Config written to %s\n", path)
		return 0
	}

	paths := config.Args()
	if len(paths) == 0 {
		printUsage()
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)
	start := time.Now()

	var cat *catalog.Catalog
	var runID string
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Open(cfg.Catalog.Path, logger.Log)
		if err != nil {
			logger.Error("Failed to open catalog", zap.Error(err))
			return 1
		}
		defer cat.Close()

		r, err := cat.StartRun()
		if err != nil {
			logger.Error("Failed to start catalog run", zap.Error(err))
			return 1
		}
		runID = r.ID
		logger.Info("Recording to catalog", zap.String("path", cfg.Catalog.Path), zap.String("run", runID))
	}

	ex := extract.New(cfg.ExtractOptions(), logger.Log)

	failed := 0
	for _, path := range paths {
		if err := processMap(path, cfg, ex, cat, runID); err != nil {
			logger.Error("Skipping map", zap.String("path", path), zap.Error(err))
			failed++
		}
	}

	fmt.Printf("Program finished in %.3f seconds.\n", time.Since(start).Seconds())

	if failed == len(paths) {
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `lightsrad - recover lights.rad entries from compiled Source maps

Usage:
  lightsrad [options] <map.bsp> [map.bsp...]

Options:`)
	flag.PrintDefaults()
}

// processMap extracts one map and writes its lights file.
func processMap(path string, cfg *config.Config, ex *extract.Extractor, cat *catalog.Catalog, runID string) error {
	logger.Info("Parsing map", zap.String("path", path))

	m, err := bsp.ParseFile(path)
	if err != nil {
		return err
	}
	for _, id := range m.RecoveredLumps() {
		logger.Warn("Lump had no length, estimated from the next lump",
			zap.Stringer("lump", id),
			zap.Uint32("length", m.Lumps[id].Length))
	}

	res, err := ex.Extract(m)
	if err != nil {
		return err
	}
	logger.Info("Extraction done",
		zap.Int("textures", len(res.Textures)),
		zap.Int("lightFaces", res.LightFaces),
		zap.Int("shapes", res.Shapes),
		zap.Int("failedFaces", res.FailedFaces),
		zap.Int("surfaceLights", res.Lights),
		zap.Bool("hdr", res.UsedHDR))

	if cat != nil {
		if _, err := cat.Record(runID, path, m.Header, res.Textures); err != nil {
			logger.Warn("Failed to record map in catalog", zap.Error(err))
		}
	}

	if len(res.Textures) == 0 {
		fmt.Println("No light.rad textures were found!")
		return nil
	}

	fmt.Printf("Found %d textures:\n", len(res.Textures))
	for _, t := range res.Textures {
		fmt.Println(radfile.Line(t))
	}

	out := radfile.OutputPath(path, cfg.Output.Dir, cfg.Output.Prefix)
	if _, err := radfile.WriteFile(out, res.Textures); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logger.Info("Wrote lights file", zap.String("path", out))
	return nil
}
