// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package steps

import (
	"context"

	"github.com/Chandrasekaran86/openlib-uat/uat/harness"
)

// Package-level suite collaborators, registered once by the suite
// wiring before any scenario runs. Per-scenario state never lives
// here; it is resolved from the registry via the execution-unit token
// carried on each step's context.Context.
var (
	cfg    *harness.Config
	client *harness.Client
)

// RegisterSuite installs the harness config and the HTTP client the
// step implementations use.
func RegisterSuite(c *harness.Config) {
	cfg = c
	client = harness.NewClient(c)
}

// current resolves the calling execution unit's ScenarioContext.
func current(ctx context.Context) *harness.ScenarioContext {
	return harness.Contexts.Context(harness.UnitFromContext(ctx))
}
