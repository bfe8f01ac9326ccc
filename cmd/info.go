package cmd

import (
	"fmt"

	"github.com/Feilkin/blob-game/asset/archive"
	"github.com/Feilkin/blob-game/bvh"
	"github.com/urfave/cli"
)

// Display information about compiled BVH tree archives.
func ShowTreeInfo(ctx *cli.Context) error {
	_, closer, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() == 0 {
		return fmt.Errorf("info: missing tree file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		treeFile := ctx.Args().Get(idx)
		stats, err := treeInfo(treeFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s\n%s", treeFile, stats.Table())
	}
	return nil
}

func treeInfo(treeFile string) (bvh.TreeStats, error) {
	compiled, err := archive.ReadTree(treeFile)
	if err != nil {
		return bvh.TreeStats{}, err
	}

	stats := bvh.Stats(compiled.Tree)
	if len(compiled.Objects) < stats.Leafs {
		logger.Warningf("%s: object table lists %d objects for %d leafs", treeFile, len(compiled.Objects), stats.Leafs)
	}
	return stats, nil
}
