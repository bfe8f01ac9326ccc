package main

import (
	"fmt"
	"os"

	"github.com/Feilkin/blob-game/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "blob-bvh"
	app.Usage = "compile blob scenes into GPU-friendly BVH trees"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a YAML config file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile scene definitions into BVH tree archives",
			Description: `
Parse a scene definition from a YAML file, build a BVH tree over the object
bounding boxes using the surface area heuristic and flatten it into the
pre-order node layout consumed by the GPU.

The flattened tree and its object table are written to a zip archive which
can be inspected with the info command.`,
			ArgsUsage: "scene_file1.yaml scene_file2.yaml ...",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "parallel-depth, p",
					Usage: "build subtrees above this depth concurrently",
				},
				cli.StringFlag{
					Name:  "suffix, s",
					Usage: "suffix replacing the scene file extension in the output name",
				},
			},
			Action: cmd.CompileScene,
		},
		{
			Name:      "info",
			Usage:     "validate compiled BVH tree archives and display their statistics",
			ArgsUsage: "tree_file1.zip tree_file2.zip ...",
			Action:    cmd.ShowTreeInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
