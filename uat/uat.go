package uat

import (
	"context"

	"github.com/cucumber/godog"
	"github.com/pkg/errors"

	"github.com/Chandrasekaran86/openlib-uat/internal/logging/alert"
	"github.com/Chandrasekaran86/openlib-uat/internal/logging/debug"
	"github.com/Chandrasekaran86/openlib-uat/uat/harness"
	"github.com/Chandrasekaran86/openlib-uat/uat/steps"
)

// This is the entry point for godog scenarios. The suite runner (the
// TestMain in this package, or cmd/openlib-uat) hands it to
// godog.TestSuite as the ScenarioInitializer.
//
// Implementation of the feature tests is done in the steps package.
//
// Scenarios should always be isolated from one another as much as
// possible. A scenario should NEVER depend on or be affected by the
// outcome of a prior scenario; each one gets a fresh ScenarioContext
// installed in the registry before its first step runs.
//
// Steps within a scenario may depend on each other, but this should
// be done very judiciously. Troubleshooting scenario failures gets
// complicated very quickly when there is a rat's nest of step
// interdependencies.
func ConfigureSuite(sc *godog.ScenarioContext) {
	cfg, err := harness.LoadConfig()
	if err != nil {
		alert.Abort(errors.Wrap(err, "Failed to load test config"))
	}
	ConfigureSuiteWithConfig(sc, cfg)
}

// ConfigureSuiteWithConfig wires hooks and steps using an
// already-loaded config. Test runners use this to point the suite at
// a fixture server.
func ConfigureSuiteWithConfig(sc *godog.ScenarioContext, cfg *harness.Config) {
	steps.RegisterSuite(cfg)

	// Install a fresh scenario context before each scenario and
	// thread the execution-unit token through the scenario's
	// context.Context so that steps can find it.
	sc.Before(func(ctx context.Context, scn *godog.Scenario) (context.Context, error) {
		unit := harness.DefaultUnit
		if cfg.IsolateScenarios {
			unit = harness.NewUnit()
		}
		harness.Contexts.SetContext(unit, harness.NewScenarioContext())

		debug.Printf("starting scenario %q on unit %s", scn.Name, unit)
		return harness.WithUnit(ctx, unit), nil
	})

	// If a step fails, mark the scenario context as failed so that
	// anything inspecting it later does the right thing.
	sc.StepContext().After(func(ctx context.Context, st *godog.Step, status godog.StepResultStatus, err error) (context.Context, error) {
		if err != nil {
			harness.Contexts.Context(harness.UnitFromContext(ctx)).Fail()
		}
		return ctx, nil
	})

	// Log a scenario summary, run registered cleanup handlers, and
	// optionally drop the registry association. Leaving the
	// association in place is deliberate: standalone tests running
	// later on the same unit read the scenario's recorded values.
	sc.After(func(ctx context.Context, scn *godog.Scenario, err error) (context.Context, error) {
		unit := harness.UnitFromContext(ctx)
		sctx := harness.Contexts.Context(unit)

		code, _ := sctx.ExpectedStatusCode()
		debug.Printf("Scenario completed. Test data: Author=%s, Status=%d", sctx.AuthorID(), code)

		if cleanupErr := sctx.Cleanup(); cleanupErr != nil {
			alert.Warnf("Error during post-scenario cleanup: %s", cleanupErr)
		}

		if cfg.ClearAfterScenario {
			harness.Contexts.ClearContext(unit)
		}
		return ctx, nil
	})

	// Register steps with the suite runner.
	for matcher, step := range steps.WithMatchers {
		sc.Step(matcher, step)
	}
}
