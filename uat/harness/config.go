// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"bytes"
	"encoding/json"
	"os"
	"os/user"
	"path"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"

	"github.com/Chandrasekaran86/openlib-uat/internal/logging/alert"
	"github.com/Chandrasekaran86/openlib-uat/internal/logging/debug"
)

const (
	// UATConfigFile is the name of the harness configuration file
	UATConfigFile = ".openlib-uat"

	// UATConfigEnvVar is the name of the optional environment variable that
	// may be set to specify config location
	UATConfigEnvVar = "OPENLIB_UAT_CONFIG_FILE"
)

// Config holds configuration for the test harness
type Config struct {
	BaseURL    string `hcl:"base_url" json:"base_url"`
	AuthorID   string `hcl:"author_id" json:"author_id"`
	SchemaPath string `hcl:"schema_path" json:"schema_path"`

	// RequestTimeout bounds each HTTP request, in seconds.
	RequestTimeout int `hcl:"request_timeout" json:"request_timeout"`

	// ClearAfterScenario removes the registry association when a
	// scenario finishes. Off by default so that a later consumer on
	// the same execution unit still sees the scenario's values.
	ClearAfterScenario bool `hcl:"clear_after_scenario" json:"clear_after_scenario"`

	// IsolateScenarios gives each scenario its own execution-unit
	// token instead of sharing DefaultUnit. Required for parallel
	// scenario execution.
	IsolateScenarios bool `hcl:"isolate_scenarios" json:"isolate_scenarios"`
}

// Merge combines this config's values with the other config's values
func (c *Config) Merge(other *Config) *Config {
	result := new(Config)

	result.BaseURL = c.BaseURL
	if other.BaseURL != "" {
		result.BaseURL = other.BaseURL
	}

	result.AuthorID = c.AuthorID
	if other.AuthorID != "" {
		result.AuthorID = other.AuthorID
	}

	result.SchemaPath = c.SchemaPath
	if other.SchemaPath != "" {
		result.SchemaPath = other.SchemaPath
	}

	result.RequestTimeout = c.RequestTimeout
	if other.RequestTimeout != 0 {
		result.RequestTimeout = other.RequestTimeout
	}

	result.ClearAfterScenario = other.ClearAfterScenario
	result.IsolateScenarios = other.IsolateScenarios

	return result
}

func (c *Config) String() string {
	data, err := json.Marshal(c)
	if err != nil {
		alert.Abort(errors.Wrap(err, "couldn't marshal test config to json"))
	}

	var out bytes.Buffer
	json.Indent(&out, data, "", "\t")
	return out.String()
}

// NewConfig initializes a new Config instance with default values
func NewConfig() *Config {
	return &Config{
		BaseURL:        "https://openlibrary.org",
		AuthorID:       "OL1A",
		SchemaPath:     "schemas/author-schema.json",
		RequestTimeout: 30,
	}
}

// LoadConfig attempts to load a config from one of the default locations
func LoadConfig() (*Config, error) {
	cfg := NewConfig()

	user, err := user.Current()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to get current user")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to get current directory")
	}
	// list of locations to try, in decreasing precedence
	locations := []string{
		os.Getenv(UATConfigEnvVar),
		path.Join(cwd, UATConfigFile),
		path.Join(user.HomeDir, UATConfigFile),
	}

	for _, location := range locations {
		debug.Printf("trying to load config from %s", location)
		if loaded, err := loadConfigFile(location); err == nil {
			cfg = cfg.Merge(loaded)
			break
		}
	}

	debug.Printf("Harness config: %s", cfg)
	return cfg, nil
}

func loadConfigFile(cfgPath string) (*Config, error) {
	cfg := new(Config)

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := hcl.Decode(cfg, string(data)); err != nil {
		alert.Warnf("config file error %s:%s", cfgPath, err)
		return nil, err
	}

	return cfg, nil
}
