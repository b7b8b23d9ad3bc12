package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DumpConfig writes the effective configuration, defaults included, to filename as YAML.
func DumpConfig(filename string, configFileDirs ...string) error {
	v, err := newViper(configFileDirs...)
	if err != nil {
		return err
	}

	b, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filename, b, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write config to %s: %w", filename, err)
	}

	return nil
}
