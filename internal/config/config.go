// Package config reads the optional qcsv.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig mirrors the command line flags that may be set per project.
// Zero values mean "not set"; flags and environment variables take precedence.
type ProjectConfig struct {
	Outfile          string `yaml:"outfile"`
	Delimiter        string `yaml:"delimiter"`
	Comment          string `yaml:"comment"`
	LazyQuotes       bool   `yaml:"lazy_quotes"`
	TrimLeadingSpace bool   `yaml:"trim_leading_space"`
	Encoding         string `yaml:"encoding"`
	QuoteIdentifiers bool   `yaml:"quote_identifiers"`
	Overwrite        bool   `yaml:"overwrite"`
	Strict           bool   `yaml:"strict"`
	Timeout          string `yaml:"timeout"`

	// Managed PostgreSQL authentication. Secrets are never read from here.
	PgAuth        string `yaml:"pg_auth"`
	AWSRegion     string `yaml:"aws_region"`
	AzureTenantID string `yaml:"azure_tenant_id"`
	AzureClientID string `yaml:"azure_client_id"`
	GCPInstance   string `yaml:"gcp_instance"`
}

const ConfigFileName = "qcsv.yaml"

// Load reads qcsv.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project file from an explicit path. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		// A bare "-" value opens a YAML block sequence.
		if strings.Contains(err.Error(), "block sequence entries are not allowed") {
			return nil, fmt.Errorf("%s: %w (a lone dash must be quoted, e.g. outfile: \"-\")", path, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}
