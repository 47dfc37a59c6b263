// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// The worldmerge CLI merges two Minecraft worlds into one: region
// files unique to the source world are copied into the target, and
// overlapping region files are merged chunk by chunk under the
// selected conflict rule. Chunks in the source world are never
// modified; chunks in the target world may be overwritten.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/minetools/worldmerge"
	"github.com/minetools/worldmerge/internal/region"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	app := &cli.App{
		Name:  "worldmerge",
		Usage: "merge two Minecraft worlds at the region-file level",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rule",
				Aliases: []string{"r"},
				Value:   "last-modified",
				Usage:   "how to merge overlapping chunks: last-modified, always or never",
			},
			&cli.StringFlag{
				Name:     "target-world",
				Required: true,
				Usage:    "world to merge into; chunks in this world may be overwritten",
			},
			&cli.StringFlag{
				Name:     "source-world",
				Required: true,
				Usage:    "world to merge from; read-only",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   1,
				Usage:   "number of region files to process concurrently per dimension",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	rule, err := region.ParseRule(c.String("rule"))
	if err != nil {
		return err
	}

	merger, err := worldmerge.NewMerger(
		c.String("target-world"),
		c.String("source-world"),
		rule,
		worldmerge.WithLogger(logrus.StandardLogger()),
		worldmerge.WithConfirm(promptConfirm(os.Stdin, os.Stdout)),
		worldmerge.WithJobs(c.Int("jobs")),
	)
	if err != nil {
		return err
	}

	if err := merger.Run(); err != nil {
		return err
	}
	logrus.Info("Done!")
	return nil
}

// promptConfirm asks on out and reads one line from in. Anything but
// an explicit y (or Y) declines, so an accidental enter is a no.
func promptConfirm(in io.Reader, out io.Writer) worldmerge.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(dimension string) bool {
		fmt.Fprintf(out, "Do you want to continue merging %s? [y/N]: ", filepath.Join(dimension, "region"))
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}
