package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir. An existing
// configuration is left untouched.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) error {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return err
	}
	if exists {
		logger.Printf("%s already exists, skipping\n", configPath)
		return nil
	}

	if err := afero.WriteFile(fs, configPath, defaultConfigData, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	logger.Printf("Wrote %s\n", configPath)
	return nil
}
