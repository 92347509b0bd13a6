package harness

import (
	"bytes"
	"fmt"
	"sync"
)

type (
	cleanupFn func() error

	// ScenarioContext holds per-scenario state shared between step
	// definitions and any standalone tests running on the same
	// execution unit. It should be unique for each scenario, in order
	// to avoid leaking state between scenarios.
	ScenarioContext struct {
		sync.Mutex

		lastResponse     *Response
		previousResponse *Response

		expectedStatusCode    int
		statusCodeSet         bool
		expectedPersonalName  string
		expectedAlternateName string
		expectedContentType   string
		authorID              string
		schema                string
		expectedFields        []string

		testData map[string]interface{}

		cleanupFunctions []cleanupFn
		failed           bool
	}

	multiError []error
)

func (m multiError) Error() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Error(s):\n")
	for _, err := range m {
		fmt.Fprintf(&buf, "  %s", err)
	}

	return buf.String()
}

// NewScenarioContext returns a freshly-initialized *ScenarioContext
func NewScenarioContext() *ScenarioContext {
	return &ScenarioContext{
		testData: make(map[string]interface{}),
	}
}

// SetLastResponse shifts the current last response into the previous
// slot, then stores response as the new last response. The handle is
// stored as-is; a response representing a transport-level failure is
// as acceptable as a 200.
func (s *ScenarioContext) SetLastResponse(response *Response) {
	s.Lock()
	defer s.Unlock()

	s.previousResponse = s.lastResponse
	s.lastResponse = response
}

// LastResponse returns the most recently stored response, or nil if
// none has been stored.
func (s *ScenarioContext) LastResponse() *Response {
	s.Lock()
	defer s.Unlock()

	return s.lastResponse
}

// PreviousResponse returns the response held immediately before the
// most recent SetLastResponse, or nil.
func (s *ScenarioContext) PreviousResponse() *Response {
	s.Lock()
	defer s.Unlock()

	return s.previousResponse
}

// SetExpectedStatusCode records the status code a scenario expects.
func (s *ScenarioContext) SetExpectedStatusCode(code int) {
	s.Lock()
	defer s.Unlock()

	s.expectedStatusCode = code
	s.statusCodeSet = true
}

// ExpectedStatusCode returns the recorded status code and whether one
// was ever recorded. The second value disambiguates "expecting 0"
// from "nothing expected".
func (s *ScenarioContext) ExpectedStatusCode() (int, bool) {
	s.Lock()
	defer s.Unlock()

	return s.expectedStatusCode, s.statusCodeSet
}

// SetExpectedPersonalName records the personal_name a scenario expects.
func (s *ScenarioContext) SetExpectedPersonalName(name string) {
	s.Lock()
	defer s.Unlock()
	s.expectedPersonalName = name
}

// ExpectedPersonalName returns the recorded personal_name, or "".
func (s *ScenarioContext) ExpectedPersonalName() string {
	s.Lock()
	defer s.Unlock()
	return s.expectedPersonalName
}

// SetExpectedAlternateName records the alternate name a scenario expects.
func (s *ScenarioContext) SetExpectedAlternateName(name string) {
	s.Lock()
	defer s.Unlock()
	s.expectedAlternateName = name
}

// ExpectedAlternateName returns the recorded alternate name, or "".
func (s *ScenarioContext) ExpectedAlternateName() string {
	s.Lock()
	defer s.Unlock()
	return s.expectedAlternateName
}

// SetExpectedContentType records the content type a scenario expects.
func (s *ScenarioContext) SetExpectedContentType(contentType string) {
	s.Lock()
	defer s.Unlock()
	s.expectedContentType = contentType
}

// ExpectedContentType returns the recorded content type, or "".
func (s *ScenarioContext) ExpectedContentType() string {
	s.Lock()
	defer s.Unlock()
	return s.expectedContentType
}

// SetAuthorID records the author identifier under test.
func (s *ScenarioContext) SetAuthorID(id string) {
	s.Lock()
	defer s.Unlock()
	s.authorID = id
}

// AuthorID returns the recorded author identifier, or "".
func (s *ScenarioContext) AuthorID() string {
	s.Lock()
	defer s.Unlock()
	return s.authorID
}

// SetSchema stores schema text for later validation. The text is held
// verbatim; nothing here checks that it is well-formed.
func (s *ScenarioContext) SetSchema(schema string) {
	s.Lock()
	defer s.Unlock()
	s.schema = schema
}

// Schema returns the stored schema text, or "".
func (s *ScenarioContext) Schema() string {
	s.Lock()
	defer s.Unlock()
	return s.schema
}

// SetExpectedFields records the ordered list of field names a scenario
// expects the response body to contain.
func (s *ScenarioContext) SetExpectedFields(fields []string) {
	s.Lock()
	defer s.Unlock()
	s.expectedFields = fields
}

// ExpectedFields returns the recorded field names, or nil.
func (s *ScenarioContext) ExpectedFields() []string {
	s.Lock()
	defer s.Unlock()
	return s.expectedFields
}

// Put inserts or updates a value for a given key
func (s *ScenarioContext) Put(key string, value interface{}) {
	s.Lock()
	defer s.Unlock()
	s.testData[key] = value
}

// Get returns the value associated with key and whether it was present
func (s *ScenarioContext) Get(key string) (interface{}, bool) {
	s.Lock()
	defer s.Unlock()
	val, ok := s.testData[key]
	return val, ok
}

// Clear resets every field to its default in place, including both
// response handles. The registry association, if any, is untouched.
func (s *ScenarioContext) Clear() {
	s.Lock()
	defer s.Unlock()

	s.lastResponse = nil
	s.previousResponse = nil
	s.expectedStatusCode = 0
	s.statusCodeSet = false
	s.expectedPersonalName = ""
	s.expectedAlternateName = ""
	s.expectedContentType = ""
	s.authorID = ""
	s.schema = ""
	s.expectedFields = nil
	s.testData = make(map[string]interface{})
	s.cleanupFunctions = nil
	s.failed = false
}

// Fail marks the scenario as failed
func (s *ScenarioContext) Fail() {
	s.Lock()
	defer s.Unlock()

	s.failed = true
}

// Failed returns the protected value
func (s *ScenarioContext) Failed() bool {
	s.Lock()
	defer s.Unlock()

	return s.failed
}

// AddCleanup registers a cleanup handler
func (s *ScenarioContext) AddCleanup(fn cleanupFn) {
	s.Lock()
	defer s.Unlock()

	s.cleanupFunctions = append(s.cleanupFunctions, fn)
}

// Cleanup runs all cleanup functions, and returns an error if any of them fail
func (s *ScenarioContext) Cleanup() error {
	s.Lock()
	fns := s.cleanupFunctions
	s.cleanupFunctions = nil
	s.Unlock()

	var errors multiError

	for _, fn := range fns {
		if err := fn(); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
