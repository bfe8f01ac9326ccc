package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Feilkin/blob-game/asset/archive"
	"github.com/Feilkin/blob-game/bvh"
	"github.com/Feilkin/blob-game/config"
	"github.com/Feilkin/blob-game/scene/reader"
	"github.com/urfave/cli"
)

// Compile scene files into BVH tree archives.
func CompileScene(ctx *cli.Context) error {
	cfg, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.IsSet("parallel-depth") {
		cfg.Build.ParallelDepth = ctx.Int("parallel-depth")
	}
	if ctx.IsSet("suffix") {
		cfg.Output.Suffix = ctx.String("suffix")
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return fmt.Errorf("compile: missing scene file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		zipFile, err := compileFile(sceneFile, cfg)
		if err != nil {
			return err
		}
		logger.Noticef("wrote %s", zipFile)
	}

	return nil
}

// Compile a single scene file and return the name of the written archive.
func compileFile(sceneFile string, cfg *config.Config) (string, error) {
	logger.Noticef("parsing and compiling scene: %s", sceneFile)
	sc, err := reader.ReadScene(sceneFile)
	if err != nil {
		return "", err
	}

	tree, err := sc.Compile(
		bvh.WithParallelism(cfg.Build.ParallelDepth),
		bvh.WithLogger(logger),
	)
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", sceneFile, err)
	}

	// Display compiled tree info
	logger.Noticef("BVH information:\n%s", bvh.Stats(tree).Table())

	zipFile := outputFilename(sceneFile, cfg.Output.Suffix)
	if err = archive.WriteTree(archive.NewCompiled(sc, tree), zipFile); err != nil {
		return "", err
	}
	return zipFile, nil
}

// Archives are written next to local scenes. Remote scenes are written to
// the working directory.
func outputFilename(sceneFile, suffix string) string {
	if strings.HasPrefix(sceneFile, "http://") || strings.HasPrefix(sceneFile, "https://") {
		sceneFile = filepath.Base(sceneFile)
	}
	return strings.TrimSuffix(sceneFile, filepath.Ext(sceneFile)) + suffix
}
