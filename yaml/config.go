// Package yaml loads litcrawl configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/litcrawl"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path over litcrawl.DefaultConfig and
// validates the result. Keys absent from the file keep their defaults;
// unknown keys are rejected.
func LoadConfig(path string) (*litcrawl.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, litcrawl.Errorf(litcrawl.ENOTFOUND, "config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the default configuration and validates it.
func ParseConfig(data []byte) (*litcrawl.Config, error) {
	cfg := litcrawl.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, litcrawl.Errorf(litcrawl.EINVALID, "failed to parse YAML: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig encodes cfg as YAML.
func WriteConfig(w io.Writer, cfg *litcrawl.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return enc.Close()
}
