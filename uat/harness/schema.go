package harness

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// LoadSchema reads schema text from path. The text is returned
// verbatim for the context to hold; validation of the schema itself
// happens when it is applied.
func LoadSchema(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to read schema from %s", path)
	}
	return string(data), nil
}

// ValidateSchema applies the given JSON Schema text to a raw response
// body. All violations are reported in a single error.
func ValidateSchema(schema string, body []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return errors.Wrap(err, "schema validation could not run")
	}

	if result.Valid() {
		return nil
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return fmt.Errorf("response does not conform to schema:\n  %s",
		strings.Join(violations, "\n  "))
}
