// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/pkg/errors"

	"github.com/Chandrasekaran86/openlib-uat/internal/logging/debug"
	"github.com/Chandrasekaran86/openlib-uat/uat/harness"
)

func init() {
	addStep(`^the OpenLibrary API is available$`, apiIsAvailable)
	addStep(`^the OpenLibrary API is available with a defined schema$`, apiIsAvailableWithSchema)
	addStep(`^a GET request is made to fetch author "([^"]*)"$`, fetchAuthor)
	addStep(`^two sequential GET requests are made to fetch author "([^"]*)"$`, fetchAuthorTwice)
	addStep(`^the response status code should be (\d+)$`, checkStatusCode)
	addStep(`^the response should contain personal_name as "([^"]*)"$`, checkPersonalName)
	addStep(`^the response should contain alternate_names with "([^"]*)"$`, checkAlternateNames)
	addStep(`^the response content type should be "([^"]*)"$`, checkContentType)
	addStep(`^the response should validate against the author schema$`, checkSchema)
	addStep(`^the response should contain required fields "([^"]*)" and "([^"]*)"$`, checkRequiredFields)
	addStep(`^the response should contain the following fields:$`, checkFieldTable)
	addStep(`^both responses should return status code (\d+)$`, checkBothStatusCodes)
	addStep(`^both responses should have the same personal_name$`, checkBothPersonalNames)
	addStep(`^both responses should have the same alternate_names$`, checkBothAlternateNames)
}

// lastResponse fetches the most recent response from the current
// scenario's context, failing the step if no request was made yet.
func lastResponse(ctx context.Context) (*harness.Response, error) {
	resp := current(ctx).LastResponse()
	if resp == nil {
		return nil, fmt.Errorf("no response captured; did a request step run?")
	}
	return resp, nil
}

func bothResponses(ctx context.Context) (previous, last *harness.Response, err error) {
	sc := current(ctx)
	previous, last = sc.PreviousResponse(), sc.LastResponse()
	if previous == nil || last == nil {
		return nil, nil, fmt.Errorf("two responses required; did the sequential request step run?")
	}
	return previous, last, nil
}

func apiIsAvailable(ctx context.Context) error {
	debug.Printf("OpenLibrary API base URL configured: %s", cfg.BaseURL)
	return nil
}

func apiIsAvailableWithSchema(ctx context.Context) error {
	schema, err := harness.LoadSchema(cfg.SchemaPath)
	if err != nil {
		return errors.Wrap(err, "Unable to configure schema")
	}
	current(ctx).SetSchema(schema)
	debug.Printf("OpenLibrary API and schema configured")
	return nil
}

func fetchAuthor(ctx context.Context, authorID string) error {
	sc := current(ctx)
	sc.SetAuthorID(authorID)

	resp, err := client.GetAuthor(ctx, authorID)
	if err != nil {
		return errors.Wrapf(err, "Unable to fetch author %s", authorID)
	}
	sc.SetLastResponse(resp)

	debug.Printf("fetched author %s: %s", authorID, resp)
	return nil
}

func fetchAuthorTwice(ctx context.Context, authorID string) error {
	if err := fetchAuthor(ctx, authorID); err != nil {
		return err
	}
	return fetchAuthor(ctx, authorID)
}

func checkStatusCode(ctx context.Context, expected int) error {
	current(ctx).SetExpectedStatusCode(expected)

	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	if resp.StatusCode != expected {
		return fmt.Errorf("wanted status %d, got %d", expected, resp.StatusCode)
	}
	return nil
}

func checkPersonalName(ctx context.Context, expected string) error {
	current(ctx).SetExpectedPersonalName(expected)

	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	if actual := resp.Path("personal_name").String(); actual != expected {
		return fmt.Errorf("wanted personal_name %q, got %q", expected, actual)
	}
	return nil
}

func checkAlternateNames(ctx context.Context, expected string) error {
	current(ctx).SetExpectedAlternateName(expected)

	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	for _, name := range resp.StringList("alternate_names") {
		if name == expected {
			return nil
		}
	}
	return fmt.Errorf("alternate_names does not contain %q", expected)
}

func checkContentType(ctx context.Context, expected string) error {
	current(ctx).SetExpectedContentType(expected)

	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	// Servers commonly append a charset parameter.
	if !strings.HasPrefix(resp.ContentType, expected) {
		return fmt.Errorf("wanted content type %q, got %q", expected, resp.ContentType)
	}
	return nil
}

func checkSchema(ctx context.Context) error {
	sc := current(ctx)

	schema := sc.Schema()
	if schema == "" {
		loaded, err := harness.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return errors.Wrap(err, "Unable to load author schema")
		}
		schema = loaded
		sc.SetSchema(schema)
	}

	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	return harness.ValidateSchema(schema, resp.Body)
}

func checkRequiredFields(ctx context.Context, field1, field2 string) error {
	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	for _, field := range []string{field1, field2} {
		if !resp.Path(field).Exists() {
			return fmt.Errorf("required field %q missing from response", field)
		}
	}
	return nil
}

func checkFieldTable(ctx context.Context, table *godog.Table) error {
	var fields []string
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			fields = append(fields, cell.Value)
		}
	}
	current(ctx).SetExpectedFields(fields)

	resp, err := lastResponse(ctx)
	if err != nil {
		return err
	}
	for _, field := range fields {
		if !resp.Path(field).Exists() {
			return fmt.Errorf("field %q missing from response", field)
		}
		debug.Printf("field verified: %s", field)
	}
	return nil
}

func checkBothStatusCodes(ctx context.Context, expected int) error {
	current(ctx).SetExpectedStatusCode(expected)

	previous, last, err := bothResponses(ctx)
	if err != nil {
		return err
	}
	if previous.StatusCode != expected {
		return fmt.Errorf("first response: wanted status %d, got %d", expected, previous.StatusCode)
	}
	if last.StatusCode != expected {
		return fmt.Errorf("second response: wanted status %d, got %d", expected, last.StatusCode)
	}
	return nil
}

func checkBothPersonalNames(ctx context.Context) error {
	previous, last, err := bothResponses(ctx)
	if err != nil {
		return err
	}

	first := previous.Path("personal_name").String()
	second := last.Path("personal_name").String()
	if first != second {
		return fmt.Errorf("personal_name differs between responses: %q vs %q", first, second)
	}

	current(ctx).SetExpectedPersonalName(first)
	return nil
}

func checkBothAlternateNames(ctx context.Context) error {
	previous, last, err := bothResponses(ctx)
	if err != nil {
		return err
	}

	first := previous.StringList("alternate_names")
	second := last.StringList("alternate_names")
	if len(first) != len(second) {
		return fmt.Errorf("alternate_names differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			return fmt.Errorf("alternate_names differ at %d: %q vs %q", i, first[i], second[i])
		}
	}
	return nil
}
