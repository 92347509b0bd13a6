package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/Chandrasekaran86/openlib-uat/internal/testhelpers"
	"github.com/Chandrasekaran86/openlib-uat/uat/harness"
)

const testAuthorBody = `{
  "key": "/authors/OL1A",
  "name": "Sachi Rautroy",
  "personal_name": "Sachi Rautroy",
  "alternate_names": ["Yugashrashta Sachi Routray"]
}`

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["key", "personal_name"]
}`

// setupSuite points the steps package at a canned author endpoint and
// installs a fresh scenario context on its own execution unit,
// returning the context.Context a step would receive from godog.
func setupSuite(t *testing.T) context.Context {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.URL.Path == "/authors/OL1A.json" {
			w.Write([]byte(testAuthorBody))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "notfound"}`))
	}))
	t.Cleanup(server.Close)

	schemaPath, cleanSchema := testhelpers.WriteTestFile(t, "author-schema.json", testSchema)
	t.Cleanup(cleanSchema)

	testCfg := harness.NewConfig()
	testCfg.BaseURL = server.URL
	testCfg.SchemaPath = schemaPath
	RegisterSuite(testCfg)

	unit := harness.NewUnit()
	harness.Contexts.SetContext(unit, harness.NewScenarioContext())
	t.Cleanup(func() { harness.Contexts.ClearContext(unit) })

	return harness.WithUnit(context.Background(), unit)
}

func TestFetchAuthorRecordsContext(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthor(ctx, "OL1A"); err != nil {
		t.Fatalf("err: %s", err)
	}

	sc := current(ctx)
	if sc.AuthorID() != "OL1A" {
		t.Fatalf("author id not recorded: %q", sc.AuthorID())
	}
	if sc.LastResponse() == nil {
		t.Fatal("response not captured")
	}
	if sc.PreviousResponse() != nil {
		t.Fatal("single request must leave no previous response")
	}
}

func TestStatusCodeStep(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthor(ctx, "OL1A"); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := checkStatusCode(ctx, 200); err != nil {
		t.Fatalf("err: %s", err)
	}

	if code, ok := current(ctx).ExpectedStatusCode(); !ok || code != 200 {
		t.Fatalf("expected status not recorded: (%d, %v)", code, ok)
	}

	if err := checkStatusCode(ctx, 404); err == nil {
		t.Fatal("mismatched status must fail the step")
	}
}

func TestStatusCodeStepWithoutRequest(t *testing.T) {
	ctx := setupSuite(t)

	if err := checkStatusCode(ctx, 200); err == nil {
		t.Fatal("step must fail when no request was made")
	}
}

func TestNameSteps(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthor(ctx, "OL1A"); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := checkPersonalName(ctx, "Sachi Rautroy"); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := checkAlternateNames(ctx, "Yugashrashta Sachi Routray"); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := checkContentType(ctx, "application/json"); err != nil {
		t.Fatalf("err: %s", err)
	}

	sc := current(ctx)
	if sc.ExpectedPersonalName() != "Sachi Rautroy" {
		t.Fatal("expected personal name not recorded")
	}
	if sc.ExpectedAlternateName() != "Yugashrashta Sachi Routray" {
		t.Fatal("expected alternate name not recorded")
	}
	if sc.ExpectedContentType() != "application/json" {
		t.Fatal("expected content type not recorded")
	}

	if err := checkPersonalName(ctx, "Somebody Else"); err == nil {
		t.Fatal("wrong name must fail the step")
	}
}

func TestSequentialRequestSteps(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthorTwice(ctx, "OL1A"); err != nil {
		t.Fatalf("err: %s", err)
	}

	sc := current(ctx)
	if sc.LastResponse() == nil || sc.PreviousResponse() == nil {
		t.Fatal("two requests must populate both response slots")
	}

	if err := checkBothStatusCodes(ctx, 200); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := checkBothPersonalNames(ctx); err != nil {
		t.Fatalf("err: %s", err)
	}
	if err := checkBothAlternateNames(ctx); err != nil {
		t.Fatalf("err: %s", err)
	}

	// The consistency step records the observed name for later
	// consumers.
	if sc.ExpectedPersonalName() != "Sachi Rautroy" {
		t.Fatal("personal name not recorded by consistency step")
	}
}

func TestSchemaStepLazyLoad(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthor(ctx, "OL1A"); err != nil {
		t.Fatalf("err: %s", err)
	}

	// No Given-with-schema ran, so the step loads from the config path.
	if err := checkSchema(ctx); err != nil {
		t.Fatalf("err: %s", err)
	}
	if current(ctx).Schema() == "" {
		t.Fatal("lazily-loaded schema must be stored in the context")
	}
}

func TestFieldTableStep(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthor(ctx, "OL1A"); err != nil {
		t.Fatalf("err: %s", err)
	}

	table := &godog.Table{
		Rows: []*messages.PickleTableRow{
			{Cells: []*messages.PickleTableCell{{Value: "key"}}},
			{Cells: []*messages.PickleTableCell{{Value: "name"}}},
			{Cells: []*messages.PickleTableCell{{Value: "personal_name"}}},
		},
	}
	if err := checkFieldTable(ctx, table); err != nil {
		t.Fatalf("err: %s", err)
	}

	fields := current(ctx).ExpectedFields()
	if len(fields) != 3 || fields[0] != "key" || fields[2] != "personal_name" {
		t.Fatalf("expected fields not recorded in order: %v", fields)
	}

	missing := &godog.Table{
		Rows: []*messages.PickleTableRow{
			{Cells: []*messages.PickleTableCell{{Value: "no_such_field"}}},
		},
	}
	if err := checkFieldTable(ctx, missing); err == nil {
		t.Fatal("missing field must fail the step")
	}
}

func TestFetchMissingAuthorCapturesStatus(t *testing.T) {
	ctx := setupSuite(t)

	if err := fetchAuthor(ctx, "OL0A"); err != nil {
		t.Fatalf("a 404 is a captured response, not a step failure: %s", err)
	}
	if err := checkStatusCode(ctx, 404); err != nil {
		t.Fatalf("err: %s", err)
	}
}
