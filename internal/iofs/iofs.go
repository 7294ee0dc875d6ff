// Package iofs creates the directory layout argodb keeps under the
// user's home and embeds the default configuration file.
package iofs

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/oceanobs/argodb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates the config and log directories when missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}
