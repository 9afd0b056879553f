package config

import (
	"bytes"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up under the XDG config directories.
const DefaultFileName = "focuskeeper/config.yaml"

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values; unknown keys are rejected.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return nil
}

// FindFile returns the first config file found in the XDG config
// directories, or "" when there is none.
func FindFile() string {
	path, err := xdg.SearchConfigFile(DefaultFileName)
	if err != nil {
		return ""
	}
	return path
}

// Load builds the configuration: defaults, then the config file (path, or
// the XDG default when path is empty), then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = FindFile()
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	LoadFromEnv(cfg)
	return cfg, nil
}
