// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package uat

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/Chandrasekaran86/openlib-uat/internal/logging/alert"
	"github.com/Chandrasekaran86/openlib-uat/uat/harness"
)

// LiveEnvVar switches the suite from the built-in fixture server to
// the real OpenLibrary endpoint.
const LiveEnvVar = "OPENLIB_UAT_LIVE"

// testCfg is shared by the godog suite and the standalone tests so
// that both talk to the same endpoint.
var testCfg *harness.Config

func TestMain(m *testing.M) {
	cfg, err := harness.LoadConfig()
	if err != nil {
		alert.Fatalf("Failed to load test config: %s", err)
	}

	var closeFixture func()
	if os.Getenv(LiveEnvVar) == "" {
		server := newFixtureServer()
		closeFixture = server.Close
		cfg.BaseURL = server.URL
	}
	testCfg = cfg

	opts := godog.Options{
		Output: colors.Colored(os.Stdout),
		Format: "pretty",
		Paths:  []string{"features"},
		Strict: true,
	}

	status := godog.TestSuite{
		Name: "openlib-uat",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			ConfigureSuiteWithConfig(sc, cfg)
		},
		Options: &opts,
	}.Run()

	// The standalone tests run after the suite on purpose: on a
	// shared execution unit they observe the values the scenarios
	// recorded, falling back to constants otherwise.
	if st := m.Run(); st > status {
		status = st
	}

	if closeFixture != nil {
		closeFixture()
	}
	os.Exit(status)
}
