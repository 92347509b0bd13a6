// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Chandrasekaran86/openlib-uat/internal/logging/alert"
	"github.com/Chandrasekaran86/openlib-uat/internal/logging/debug"
	"github.com/Chandrasekaran86/openlib-uat/uat"
	"github.com/Chandrasekaran86/openlib-uat/uat/harness"
)

var version string // Set by build environment

func main() {
	app := cli.NewApp()
	app.Name = "openlib-uat"
	app.Usage = "Run the OpenLibrary author API acceptance suite"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Display debug logging to console",
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: "Output format (pretty, progress, junit)",
			Value: "pretty",
		},
		cli.StringFlag{
			Name:  "tags, t",
			Usage: "Run only scenarios with matching tags",
		},
		cli.IntFlag{
			Name:  "concurrency, c",
			Usage: "Number of scenarios to run concurrently",
			Value: 1,
		},
		cli.StringSliceFlag{
			Name:  "features",
			Usage: "Feature file or directory (may be repeated)",
		},
	}
	app.Before = configureLogging
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func configureLogging(c *cli.Context) error {
	if c.Bool("debug") {
		debug.Enable()
	}

	return nil
}

func run(c *cli.Context) error {
	paths := c.StringSlice("features")
	if len(paths) == 0 {
		paths = []string{"uat/features"}
	}

	if c.Int("concurrency") > 1 {
		alert.Warn("concurrent scenarios need isolate_scenarios set in the harness config")
	}

	cfg, err := harness.LoadConfig()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to load test config: %s", err), 1)
	}
	cfg.SchemaPath = resolveSchemaPath(cfg.SchemaPath, paths)
	debug.Printf("schema path: %s", cfg.SchemaPath)

	opts := godog.Options{
		Output:      colors.Colored(os.Stdout),
		Format:      c.String("format"),
		Tags:        c.String("tags"),
		Concurrency: c.Int("concurrency"),
		Paths:       paths,
		Strict:      true,
	}

	status := godog.TestSuite{
		Name: "openlib-uat",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			uat.ConfigureSuiteWithConfig(sc, cfg)
		},
		Options: &opts,
	}.Run()

	if status != 0 {
		return cli.NewExitError("acceptance suite failed", status)
	}
	return nil
}

// resolveSchemaPath leaves a schema path that already resolves from
// the current directory alone. Otherwise it looks for the schema next
// to the feature directories, so that the packaged layout (features/
// and schemas/ as siblings under uat/) works from the repo root.
func resolveSchemaPath(schemaPath string, featurePaths []string) string {
	if _, err := os.Stat(schemaPath); err == nil {
		return schemaPath
	}

	for _, p := range featurePaths {
		candidate := filepath.Join(filepath.Dir(p), schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return schemaPath
}
